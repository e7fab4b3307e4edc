package subscribe

import (
	"orderflow/internal/entities"
	"orderflow/internal/pkg/registry"
	"orderflow/pkg/logger"
)

type Registry interface {
	Register(subscriber entities.Subscriber, ch registry.Channel)
	Release(subscriber entities.Subscriber, ch registry.Channel) bool
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
