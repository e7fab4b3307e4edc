//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type Registry interface {
	Send(ctx context.Context, subscriber entities.Subscriber, notification entities.Notification) error
	BroadcastByRole(ctx context.Context, role entities.Role, notification entities.Notification) int
}

// EventJournal - долговечная копия событий для потребителей, пропустивших push.
type EventJournal interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}

type dispatcherLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
