package notification

import "orderflow/internal/entities"

// Delivery - одна адресная отправка или рассылка по роли.
// Если Role не пустая, Recipient игнорируется.
type Delivery struct {
	Recipient    entities.Subscriber
	Role         entities.Role
	Notification entities.Notification
}

func (d Delivery) IsBroadcast() bool {
	return d.Role != ""
}

func targeted(recipient entities.Subscriber, n entities.Notification) Delivery {
	return Delivery{Recipient: recipient, Notification: n}
}

// Route сопоставляет событию список доставок. Функция чистая: ни ввода-вывода, ни состояния.
func Route(event entities.OrderEvent) []Delivery {
	switch event.Type {
	case entities.NotificationNewOrder:
		return []Delivery{{
			Role: entities.RoleDriver,
			Notification: entities.Notification{
				Type:    entities.NotificationNewOrder,
				OrderID: event.OrderID,
				Order:   event.Order,
			},
		}}

	case entities.NotificationOrderStatusUpdate:
		n := entities.Notification{
			Type:    entities.NotificationOrderStatusUpdate,
			OrderID: event.OrderID,
			Status:  event.Status,
		}
		deliveries := []Delivery{targeted(entities.CustomerSubscriber(event.CustomerID), n)}
		if event.DriverID != nil {
			deliveries = append(deliveries, targeted(entities.DriverSubscriber(*event.DriverID), n))
		}
		return deliveries

	case entities.NotificationDriverAssigned:
		if event.DriverID == nil {
			return nil
		}
		return []Delivery{targeted(entities.CustomerSubscriber(event.CustomerID), entities.Notification{
			Type:     entities.NotificationDriverAssigned,
			OrderID:  event.OrderID,
			DriverID: *event.DriverID,
		})}

	case entities.NotificationDriverLocationUpdate:
		if event.Location == nil {
			return nil
		}
		return []Delivery{targeted(entities.CustomerSubscriber(event.CustomerID), entities.Notification{
			Type:     entities.NotificationDriverLocationUpdate,
			OrderID:  event.OrderID,
			Location: event.Location,
		})}

	default:
		return nil
	}
}
