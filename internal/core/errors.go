package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicate              = errors.New("already exists")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrDataInvariant          = errors.New("data invariant violated")
	ErrBatchAlreadyAssigned   = errors.New("individual transfer already assigned to a batch")
)

type FieldError struct {
	Field string
	Tag   string
	Param string
	Value any
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s failed on '%s=%s'", f.Field, f.Tag, f.Param)
	}
	return fmt.Sprintf("%s failed on '%s'", f.Field, f.Tag)
}

// SchemaValidationError carries every failing field of a document, not just the first.
type SchemaValidationError struct {
	Document string
	Fields   []FieldError
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}

	return fmt.Sprintf("%s schema validation failed: %s", e.Document, strings.Join(parts, "; "))
}

func newSchemaValidationError(document string, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%s schema validation failed: %w", document, err)
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}

	return &SchemaValidationError{
		Document: document,
		Fields:   fields,
	}
}
