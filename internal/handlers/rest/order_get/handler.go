package order_get

import (
	"net/http"

	"github.com/gorilla/mux"
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

	order, err := h.service.GetOrder(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	httperr.JSON(w, h.log, http.StatusOK, dto.FromOrder(*order))
}
