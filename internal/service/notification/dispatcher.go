package notification

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

const (
	outcomeDelivered = "delivered"
	outcomeOffline   = "offline"
	outcomeFailed    = "failed"

	// журнал вызывается на пути запроса
	journalPublishTimeout = 200 * time.Millisecond
)

// Dispatcher доставляет события жизненного цикла подписчикам. Вызывается
// синхронно после коммита и никогда не возвращает ошибку вызывающему.
type Dispatcher struct {
	log      dispatcherLogger
	registry Registry
	journal  EventJournal
	now      func() time.Time
}

func New(log dispatcherLogger, registry Registry, journal EventJournal) *Dispatcher {
	return &Dispatcher{
		log:      log.With(logger.NewField("component", "notification_dispatcher")),
		registry: registry,
		journal:  journal,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (d *Dispatcher) OrderCreated(ctx context.Context, order entities.Order) {
	snapshot := order
	d.dispatch(ctx, entities.OrderEvent{
		Type:       entities.NotificationNewOrder,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Order:      &snapshot,
	})
}

func (d *Dispatcher) OrderStatusChanged(ctx context.Context, order entities.Order) {
	d.dispatch(ctx, entities.OrderEvent{
		Type:       entities.NotificationOrderStatusUpdate,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		DriverID:   order.DriverID,
		Status:     order.Status,
	})
}

func (d *Dispatcher) DriverAssigned(ctx context.Context, order entities.Order) {
	d.dispatch(ctx, entities.OrderEvent{
		Type:       entities.NotificationDriverAssigned,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		DriverID:   order.DriverID,
		Status:     order.Status,
	})
}

func (d *Dispatcher) DriverLocationChanged(ctx context.Context, order entities.Order, location entities.Location) {
	d.dispatch(ctx, entities.OrderEvent{
		Type:       entities.NotificationDriverLocationUpdate,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		DriverID:   order.DriverID,
		Status:     order.Status,
		Location:   &location,
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, event entities.OrderEvent) {
	event.OccurredAt = d.now()

	for _, delivery := range Route(event) {
		d.deliver(ctx, delivery)
	}

	d.publish(ctx, event)
}

func (d *Dispatcher) publish(ctx context.Context, event entities.OrderEvent) {
	ctx, cancel := context.WithTimeout(ctx, journalPublishTimeout)
	defer cancel()

	if err := d.journal.Publish(ctx, event); err != nil {
		JournalPublishFailuresTotal.WithLabelValues(event.Type.String()).Inc()
		d.log.Warn("failed to journal order event",
			logger.NewField("type", event.Type.String()),
			logger.NewField("order_id", event.OrderID),
			logger.NewField("error", err),
		)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, delivery Delivery) {
	messageType := delivery.Notification.Type.String()

	if delivery.IsBroadcast() {
		sent := d.registry.BroadcastByRole(ctx, delivery.Role, delivery.Notification)
		NotificationsDeliveredTotal.WithLabelValues(messageType, outcomeDelivered).Add(float64(sent))
		return
	}

	err := d.registry.Send(ctx, delivery.Recipient, delivery.Notification)
	switch {
	case err == nil:
		NotificationsDeliveredTotal.WithLabelValues(messageType, outcomeDelivered).Inc()
	case errors.Is(err, entities.ErrSubscriberOffline):
		NotificationsDeliveredTotal.WithLabelValues(messageType, outcomeOffline).Inc()
	default:
		NotificationsDeliveredTotal.WithLabelValues(messageType, outcomeFailed).Inc()
		d.log.Warn("notification delivery failed",
			logger.NewField("type", messageType),
			logger.NewField("order_id", delivery.Notification.OrderID),
			logger.NewField("subscriber_id", delivery.Recipient.ID),
			logger.NewField("subscriber_role", delivery.Recipient.Role.String()),
			logger.NewField("error", err),
		)
	}
}
