package order_status_put

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"orderflow/internal/entities"
	"orderflow/internal/handlers/dto"
	"orderflow/internal/handlers/rest/httperr"
	"orderflow/internal/pkg/identity"
	"orderflow/pkg/logger"
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

	var request dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Status == "" {
		httperr.BadRequest(w, h.log)
		return
	}

	orderID := mux.Vars(r)["id"]

	order, err := h.service.UpdateStatus(r.Context(), actor, orderID, entities.OrderStatusType(request.Status))
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order_id", orderID),
		logger.NewField("status", order.Status.String()),
		logger.NewField("actor_role", actor.Role.String()),
	).Info("order status updated")

	httperr.JSON(w, h.log, http.StatusOK, dto.FromOrder(*order))
}
