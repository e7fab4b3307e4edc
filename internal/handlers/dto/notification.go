package dto

import "orderflow/internal/entities"

// Notification - кадр, отправляемый подписчику по websocket.
type Notification struct {
	Type     string    `json:"type"`
	OrderID  string    `json:"order_id"`
	Status   string    `json:"status,omitempty"`
	DriverID string    `json:"driver_id,omitempty"`
	Location *Location `json:"location,omitempty"`
	Order    *Order    `json:"order,omitempty"`
}

func FromNotification(n entities.Notification) Notification {
	msg := Notification{
		Type:     n.Type.String(),
		OrderID:  n.OrderID,
		Status:   n.Status.String(),
		DriverID: n.DriverID,
	}

	if n.Location != nil {
		location := FromLocation(*n.Location)
		msg.Location = &location
	}
	if n.Order != nil {
		order := FromOrder(*n.Order)
		msg.Order = &order
	}

	return msg
}
