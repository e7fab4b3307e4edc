package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyAssigned   = errors.New("order already assigned")
	ErrPaymentGateway    = errors.New("payment gateway error")
	ErrValidation        = errors.New("validation error")

	ErrOrderNotFound      = fmt.Errorf("order %w", ErrNotFound)
	ErrRestaurantNotFound = fmt.Errorf("restaurant %w", ErrNotFound)

	ErrInvalidOrderID      = fmt.Errorf("%w: invalid order id", ErrValidation)
	ErrInvalidRestaurantID = fmt.Errorf("%w: invalid restaurant id", ErrValidation)
	ErrInvalidStatus       = fmt.Errorf("%w: unknown order status", ErrValidation)
	ErrEmptyAddress        = fmt.Errorf("%w: delivery address is required", ErrValidation)
	ErrInvalidLocation     = fmt.Errorf("%w: delivery coordinates out of range", ErrValidation)
	ErrNoItems             = fmt.Errorf("%w: order must contain between 1 and 100 items", ErrValidation)
	ErrInvalidQuantity     = fmt.Errorf("%w: item quantity must be between 1 and 1000", ErrValidation)
	ErrInvalidMenuItemID   = fmt.Errorf("%w: invalid menu item id", ErrValidation)
	ErrUnknownMenuItem     = fmt.Errorf("%w: menu item is not offered by the restaurant", ErrValidation)
)
