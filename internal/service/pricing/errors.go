package pricing

import "errors"

var (
	ErrNoItems             = errors.New("order has no items")
	ErrInvalidQuantity     = errors.New("item quantity must be at least 1")
	ErrNegativePrice       = errors.New("item price must not be negative")
	ErrNegativeDeliveryFee = errors.New("delivery fee must not be negative")
	ErrAmountOverflow      = errors.New("order amount exceeds the representable range")
)
