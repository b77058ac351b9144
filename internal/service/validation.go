package service

import (
	"errors"
	"fmt"

	"go-restaurant-api/pkg/validator"
)

// ErrValidation wraps every input validation failure so handlers can map the
// whole family to one HTTP status.
var ErrValidation = errors.New("validation failed")

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
}
