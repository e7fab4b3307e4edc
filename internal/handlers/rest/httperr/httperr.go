package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"orderflow/internal/handlers/dto"
	"orderflow/internal/service/driver"
	"orderflow/internal/service/order"
	"orderflow/pkg/logger"
)

const (
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeInvalidTransition = "invalid_transition"
	CodeAlreadyAssigned   = "already_assigned"
	CodePaymentGateway    = "payment_gateway_error"
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeInternal          = "internal_error"
	CodeRateLimited       = "rate_limited"
	CodeShuttingDown      = "shutting_down"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

// Classify сопоставляет доменную ошибку со статусом и кодом ответа.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, driver.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, order.ErrAlreadyAssigned):
		return http.StatusConflict, CodeAlreadyAssigned
	case errors.Is(err, order.ErrPaymentGateway):
		return http.StatusBadGateway, CodePaymentGateway
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, driver.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func Write(w http.ResponseWriter, log errorLogger, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		log.Error("request failed",
			logger.NewField("status", status),
			logger.NewField("error", err),
		)
	}
	WriteCode(w, log, status, code)
}

func WriteCode(w http.ResponseWriter, log errorLogger, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.ErrorResponse{Error: code}); err != nil {
		log.Error("encode JSON error response",
			logger.NewField("error", err),
		)
	}
}

func BadRequest(w http.ResponseWriter, log errorLogger) {
	WriteCode(w, log, http.StatusBadRequest, CodeValidation)
}

func Unauthorized(w http.ResponseWriter, log errorLogger) {
	WriteCode(w, log, http.StatusUnauthorized, CodeUnauthorized)
}

// JSON пишет успешный ответ.
func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response",
			logger.NewField("error", err),
		)
	}
}
