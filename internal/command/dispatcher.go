package command

import (
	"context"
	"fmt"
	"time"

	"bulkconnector/internal/core"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeUnknown = "unknown"
)

// HandlerOptions carries the collaborators every step handler shares.
type HandlerOptions struct {
	Repository            core.BulkTransactionRepository
	Publisher             Publisher
	MaxItemsPerBatch      int
	CleanupOnResponseSent bool
}

type Handler func(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error

var handlers = map[CommandType]Handler{
	ProcessSDKOutboundBulkRequest:          handleBulkRequest,
	ProcessSDKOutboundBulkPartyInfoRequest: handlePartyInfoRequest,
	ProcessPartyInfoCallback:               handlePartyInfoCallback,
	ProcessSDKOutboundBulkAcceptPartyInfo:  handleAcceptPartyInfo,
	ProcessSDKOutboundBulkQuotesRequest:    handleBulkQuotesRequest,
	ProcessBulkQuotesCallback:              handleBulkQuotesCallback,
	ProcessSDKOutboundBulkAcceptQuote:      handleAcceptQuote,
	ProcessSDKOutboundBulkTransfersRequest: handleBulkTransfersRequest,
	ProcessBulkTransfersCallback:           handleBulkTransfersCallback,
	PrepareSDKOutboundBulkResponse:         handlePrepareResponse,
	ProcessSDKOutboundBulkResponseSent:     handleResponseSent,
}

// Dispatcher routes a step command to its handler. Failures are logged and
// returned to the transport; the dispatcher never retries.
type Dispatcher struct {
	options HandlerOptions
	metrics Metrics
	logger  core.Logger
}

func NewDispatcher(options HandlerOptions, metrics Metrics, logger core.Logger) *Dispatcher {
	return &Dispatcher{
		options: options,
		metrics: metrics,
		logger:  logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) error {
	start := time.Now()

	handler, ok := handlers[CommandType(msg.Name)]
	if !ok {
		d.logger.WarnContext(ctx, "unknown command, dropping",
			"command", msg.Name,
			"bulkTransactionId", msg.Key,
		)
		d.observe(msg.Name, outcomeUnknown, start)
		return nil
	}

	logger := core.WithAttrs(d.logger, "command", msg.Name, "bulkTransactionId", msg.Key)
	logger.DebugContext(ctx, "handling command")

	if err := handler(ctx, msg, d.options, logger); err != nil {
		logger.ErrorContext(ctx, "command failed", "error", err)
		d.observe(msg.Name, outcomeError, start)
		return fmt.Errorf("%s for bulk transaction %s: %w", msg.Name, msg.Key, err)
	}

	d.observe(msg.Name, outcomeSuccess, start)
	return nil
}

func (d *Dispatcher) observe(name, outcome string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.ObserveCommand(name, outcome, time.Since(start).Seconds())
}
