package orders_post

import (
	"encoding/json"
	"net/http"

	"orderflow/internal/handlers/dto"
	"orderflow/internal/handlers/rest/httperr"
	"orderflow/internal/pkg/identity"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.ActorFromContext(r.Context())
	if !ok {
		httperr.Unauthorized(w, h.log)
		return
	}

	var request dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httperr.BadRequest(w, h.log)
		return
	}

	placed, err := h.service.CreateOrder(r.Context(), actor, request.ToDomain())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	httperr.JSON(w, h.log, http.StatusCreated, dto.CreateOrderResponse{
		Order:        dto.FromOrder(placed.Order),
		ClientSecret: placed.ClientSecret,
	})
}
