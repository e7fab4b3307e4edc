package driver_location_post

import (
	"encoding/json"
	"net/http"

	"orderflow/internal/entities"
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

	var request dto.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Lat == nil || request.Lng == nil {
		httperr.BadRequest(w, h.log)
		return
	}

	location := entities.Location{Lat: *request.Lat, Lng: *request.Lng}
	if err := h.service.UpdateLocation(r.Context(), actor, location); err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
