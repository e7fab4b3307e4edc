package driver

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type Service struct {
	log       serviceLogger
	locations LocationStore
	orders    OrderFinder
	notifier  Notifier
}

func New(log serviceLogger, locations LocationStore, orders OrderFinder, notifier Notifier) *Service {
	return &Service{
		log:       log.With(logger.NewField("component", "driver_service")),
		locations: locations,
		orders:    orders,
		notifier:  notifier,
	}
}

// UpdateLocation сохраняет позицию водителя и рассылает её клиентам заказов,
// которые водитель сейчас везёт. Ошибка хранилища возвращается, рассылка - нет.
func (s *Service) UpdateLocation(ctx context.Context, actor entities.Actor, location entities.Location) error {
	if actor.Role != entities.RoleDriver {
		return ErrForbidden
	}
	if !location.IsValid() {
		return ErrInvalidLocation
	}

	err := s.locations.SaveLocation(ctx, entities.DriverLocation{
		DriverID:  actor.ID,
		Location:  location,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save driver location: %w", err)
	}

	inTransit, err := s.orders.List(ctx, entities.OrderFilter{
		DriverID: &actor.ID,
		Statuses: []entities.OrderStatusType{entities.OrderPickedUp},
	})
	if err != nil {
		s.log.Warn("location saved, but in-transit orders lookup failed",
			logger.NewField("driver_id", actor.ID),
			logger.NewField("error", err),
		)
		return nil
	}

	for _, order := range inTransit {
		s.notifier.DriverLocationChanged(ctx, order, location)
	}
	return nil
}
