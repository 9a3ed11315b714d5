package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field names are reported as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("amount", validateAmount); err != nil {
		panic("core: amount validator registration failed: " + err.Error())
	}

	return v
}

// validateAmount accepts non-negative decimal strings with at most four fractional digits.
func validateAmount(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" || strings.TrimSpace(raw) != raw {
		return false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}

	return !amount.IsNegative() && amount.Exponent() >= -4
}

func validateDocument(document string, v any) error {
	if err := validate.Struct(v); err != nil {
		return newSchemaValidationError(document, err)
	}
	return nil
}

// ValidateBulkTransactionRequest checks a caller request against the same
// rules applied when the bulk transaction is created.
func ValidateBulkTransactionRequest(req BulkTransactionRequest) error {
	return validateDocument("bulkTransactionRequest", req)
}
