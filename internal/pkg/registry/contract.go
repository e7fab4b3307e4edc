package registry

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

// Channel - живое двунаправленное соединение подписчика.
// Send - одна попытка записи, ограниченная дедлайном канала.
type Channel interface {
	Send(ctx context.Context, notification entities.Notification) error
	Ping(ctx context.Context) error
	Close() error
}

type registryLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
