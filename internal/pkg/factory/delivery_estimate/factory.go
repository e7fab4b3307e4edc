package delivery_estimate

import (
	"time"
)

// DefaultPreparationMinutes используется, если ресторан не указал время приготовления.
const DefaultPreparationMinutes = 30

type DeliveryEstimateFactory struct{}

func New() *DeliveryEstimateFactory {
	return &DeliveryEstimateFactory{}
}

func (d *DeliveryEstimateFactory) EstimateDelivery(preparationMinutes int, baseTime time.Time) time.Time {
	if preparationMinutes <= 0 {
		preparationMinutes = DefaultPreparationMinutes
	}
	return baseTime.Add(time.Minute * time.Duration(preparationMinutes))
}
