package auth

import (
	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type Verifier interface {
	Parse(token string) (entities.Actor, error)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
