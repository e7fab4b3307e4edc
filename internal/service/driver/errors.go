package driver

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation error")
	ErrInvalidLocation = fmt.Errorf("%w: coordinates out of range", ErrValidation)
)
