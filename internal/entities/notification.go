package entities

import (
	"errors"
	"time"
)

// ErrSubscriberOffline - у получателя нет живого соединения.
var ErrSubscriberOffline = errors.New("subscriber is not connected")

type NotificationType string

const (
	NotificationNewOrder             NotificationType = "new_order"
	NotificationOrderStatusUpdate    NotificationType = "order_status_update"
	NotificationDriverAssigned       NotificationType = "driver_assigned"
	NotificationDriverLocationUpdate NotificationType = "driver_location_update"
)

func (t NotificationType) String() string {
	return string(t)
}

// Notification - сообщение для подписчика. Поля заполняются в зависимости от Type.
type Notification struct {
	Type     NotificationType
	OrderID  string
	Status   OrderStatusType
	DriverID string
	Location *Location
	Order    *Order
}

// OrderEvent - событие жизненного цикла заказа, публикуемое после фиксации в хранилище.
type OrderEvent struct {
	Type       NotificationType
	OrderID    string
	CustomerID string
	DriverID   *string
	Status     OrderStatusType
	Location   *Location
	Order      *Order
	OccurredAt time.Time
}
