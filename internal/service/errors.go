package service

import (
	"errors"
	"fmt"

	"go-farm-ledger/pkg/validator"
)

var (
	ErrItemNotFound       = errors.New("stock item not found")
	ErrInsufficientStock  = errors.New("insufficient stock remaining")
	ErrNotFound           = errors.New("record not found")
	ErrMobileTaken        = errors.New("mobile number already registered")
	ErrInvalidCredentials = errors.New("invalid mobile or password")

	// ErrStoreUnavailable wraps infrastructure failures: the operation was
	// rolled back and must be treated as not applied.
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a single malformed input field. It is always
// detected before any store work starts, so a validation failure never has
// side effects.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on rule '%s'", e.Field, e.Rule)
}

// validateStruct runs tag validation and converts the first failure into a
// *ValidationError.
func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Rule: errs[0].Tag}
	}
	return nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
