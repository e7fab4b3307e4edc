package order

import "orderflow/internal/entities"

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	items := make([]entities.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, entities.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  entities.Money(item.UnitPrice),
			Note:       item.Note,
		})
	}

	return &entities.Order{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		RestaurantID:        o.RestaurantID,
		DriverID:            o.DriverID,
		Items:               items,
		DeliveryAddress:     o.DeliveryAddress,
		DeliveryLocation:    entities.Location{Lat: o.DeliveryLat, Lng: o.DeliveryLng},
		Subtotal:            entities.Money(o.Subtotal),
		DeliveryFee:         entities.Money(o.DeliveryFee),
		Tax:                 entities.Money(o.Tax),
		Total:               entities.Money(o.Total),
		Status:              entities.OrderStatusType(o.Status),
		PaymentReference:    o.PaymentReference,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		EstimatedDeliveryAt: o.EstimatedDeliveryAt,
		ActualDeliveryAt:    o.ActualDeliveryAt,
	}
}

func FromDomain(o *entities.Order) *OrderDB {
	if o == nil {
		return nil
	}

	items := make([]OrderItemDB, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDB{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.MinorUnits(),
			Note:       item.Note,
		})
	}

	return &OrderDB{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		RestaurantID:        o.RestaurantID,
		DriverID:            o.DriverID,
		Items:               items,
		DeliveryAddress:     o.DeliveryAddress,
		DeliveryLat:         o.DeliveryLocation.Lat,
		DeliveryLng:         o.DeliveryLocation.Lng,
		Subtotal:            o.Subtotal.MinorUnits(),
		DeliveryFee:         o.DeliveryFee.MinorUnits(),
		Tax:                 o.Tax.MinorUnits(),
		Total:               o.Total.MinorUnits(),
		Status:              o.Status.String(),
		PaymentReference:    o.PaymentReference,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		EstimatedDeliveryAt: o.EstimatedDeliveryAt,
		ActualDeliveryAt:    o.ActualDeliveryAt,
	}
}

func FromDomainStatusEvent(e entities.StatusEvent) StatusEventDB {
	event := StatusEventDB{
		OrderID:   e.OrderID,
		ToStatus:  e.To.String(),
		ActorID:   e.ActorID,
		ActorRole: e.ActorRole.String(),
		CreatedAt: e.At,
	}
	if e.From != nil {
		from := e.From.String()
		event.FromStatus = &from
	}
	return event
}
