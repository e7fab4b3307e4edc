package ping_get

import (
	"encoding/json"
	"net/http"

	"orderflow/internal/handlers/dto"
	"orderflow/pkg/logger"
)

type Handler struct {
	log         handlerLogger
	connections ConnectionCounter
}

func New(log handlerLogger, connections ConnectionCounter) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:         handlerLog,
		connections: connections,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := dto.PingResponse{
		Message:     "pong",
		Connections: h.connections.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
