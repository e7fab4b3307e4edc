package order_assign_driver_post

import (
	"net/http"

	"github.com/gorilla/mux"
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

// ServeHTTP назначает водителем вызывающего.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.ActorFromContext(r.Context())
	if !ok {
		httperr.Unauthorized(w, h.log)
		return
	}

	orderID := mux.Vars(r)["id"]

	order, err := h.service.AssignDriver(r.Context(), actor, orderID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order_id", orderID),
		logger.NewField("driver_id", actor.ID),
	).Info("driver assigned")

	httperr.JSON(w, h.log, http.StatusOK, dto.FromOrder(*order))
}
