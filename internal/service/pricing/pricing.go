package pricing

import (
	"math"

	"orderflow/internal/entities"
)

const (
	DefaultTaxRate  = 0.08
	DefaultCurrency = "usd"
)

type Policy struct {
	TaxRate  float64
	Currency string
}

type Calculator struct {
	policy Policy
}

func New(policy Policy) *Calculator {
	if policy.Currency == "" {
		policy.Currency = DefaultCurrency
	}
	return &Calculator{policy: policy}
}

// Calculate считает стоимость заказа в минимальных единицах.
// Налог берётся только с subtotal и округляется до цента, поэтому
// Total всегда точно равен Subtotal + DeliveryFee + Tax.
func (c *Calculator) Calculate(items []entities.OrderItem, deliveryFee entities.Money) (entities.OrderPricing, error) {
	if len(items) == 0 {
		return entities.OrderPricing{}, ErrNoItems
	}
	if deliveryFee < 0 {
		return entities.OrderPricing{}, ErrNegativeDeliveryFee
	}

	var subtotal entities.Money
	for _, item := range items {
		if item.Quantity < 1 {
			return entities.OrderPricing{}, ErrInvalidQuantity
		}
		if item.UnitPrice < 0 {
			return entities.OrderPricing{}, ErrNegativePrice
		}

		line, ok := mulMoney(item.UnitPrice, item.Quantity)
		if !ok {
			return entities.OrderPricing{}, ErrAmountOverflow
		}
		if subtotal, ok = addMoney(subtotal, line); !ok {
			return entities.OrderPricing{}, ErrAmountOverflow
		}
	}

	// TaxRate < 1, поэтому tax <= subtotal и в float64 не уходит за предел int64
	tax := entities.Money(math.Round(float64(subtotal) * c.policy.TaxRate))

	total, ok := addMoney(subtotal, deliveryFee)
	if !ok {
		return entities.OrderPricing{}, ErrAmountOverflow
	}
	if total, ok = addMoney(total, tax); !ok {
		return entities.OrderPricing{}, ErrAmountOverflow
	}

	return entities.OrderPricing{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Tax:         tax,
		Total:       total,
		Currency:    c.policy.Currency,
	}, nil
}

// mulMoney и addMoney работают только с неотрицательными операндами.
func mulMoney(price entities.Money, quantity int) (entities.Money, bool) {
	if price == 0 {
		return 0, true
	}
	if int64(quantity) > math.MaxInt64/int64(price) {
		return 0, false
	}
	return price * entities.Money(quantity), true
}

func addMoney(a, b entities.Money) (entities.Money, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
