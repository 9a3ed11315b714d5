package core

import (
	"context"
	"log/slog"
	"slices"
)

type Logger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// WithAttrs returns a logger that adds args to every record written through it.
func WithAttrs(logger Logger, args ...any) Logger {
	if l, ok := logger.(*slog.Logger); ok {
		return l.With(args...)
	}
	return attrLogger{next: logger, args: args}
}

type attrLogger struct {
	next Logger
	args []any
}

func (l attrLogger) with(args []any) []any {
	return append(slices.Clone(l.args), args...)
}

func (l attrLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.next.DebugContext(ctx, msg, l.with(args)...)
}

func (l attrLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.next.InfoContext(ctx, msg, l.with(args)...)
}

func (l attrLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.next.WarnContext(ctx, msg, l.with(args)...)
}

func (l attrLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.next.ErrorContext(ctx, msg, l.with(args)...)
}
