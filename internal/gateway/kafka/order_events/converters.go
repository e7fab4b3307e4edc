package order_events

import (
	"orderflow/internal/entities"
)

func toMessage(event entities.OrderEvent) EventMessage {
	msg := EventMessage{
		Type:       event.Type.String(),
		OrderID:    event.OrderID,
		CustomerID: event.CustomerID,
		DriverID:   event.DriverID,
		Status:     event.Status.String(),
		OccurredAt: event.OccurredAt,
	}

	if event.Location != nil {
		location := toLocationMessage(*event.Location)
		msg.Location = &location
	}

	if event.Order != nil {
		order := toOrderMessage(*event.Order)
		msg.Order = &order
	}

	return msg
}

func toLocationMessage(location entities.Location) LocationMessage {
	return LocationMessage{
		Lat: location.Lat,
		Lng: location.Lng,
	}
}

func toOrderMessage(order entities.Order) OrderMessage {
	items := make([]OrderItemMessage, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemMessage{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.MinorUnits(),
			Note:       item.Note,
		})
	}

	return OrderMessage{
		ID:                  order.ID,
		CustomerID:          order.CustomerID,
		RestaurantID:        order.RestaurantID,
		DriverID:            order.DriverID,
		Items:               items,
		DeliveryAddress:     order.DeliveryAddress,
		DeliveryLocation:    toLocationMessage(order.DeliveryLocation),
		Subtotal:            order.Subtotal.MinorUnits(),
		DeliveryFee:         order.DeliveryFee.MinorUnits(),
		Tax:                 order.Tax.MinorUnits(),
		Total:               order.Total.MinorUnits(),
		Status:              order.Status.String(),
		CreatedAt:           order.CreatedAt,
		EstimatedDeliveryAt: order.EstimatedDeliveryAt,
	}
}
