package auth

import (
	"net/http"

	"orderflow/internal/pkg/identity"
	"orderflow/pkg/logger"
)

func Middleware(log handlerLogger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := verifier.Parse(identity.TokenFromRequest(r))
			if err != nil {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("remote_addr", r.RemoteAddr),
					logger.NewField("error", err),
				).Warn("unauthorized request")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if _, err := w.Write([]byte(`{"error":"unauthorized"}`)); err != nil {
					log.With(
						logger.NewField("error", err),
					).Error("failed to write unauthorized response")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), actor)))
		})
	}
}
