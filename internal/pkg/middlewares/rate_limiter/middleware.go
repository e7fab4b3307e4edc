package rate_limiter

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"orderflow/internal/handlers/rest/httperr"
	"orderflow/internal/pkg/identity"
	"orderflow/pkg/logger"
)

// Middleware отклоняет запрос с 429, если у limiter нет токена. Ставится после auth,
// чтобы в логе был актор.
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter) func(http.Handler) http.Handler {
	limit := strconv.Itoa(rateLimiterQPS)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlimiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			fields := []logger.Field{
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("remote_addr", r.RemoteAddr),
			}
			role := anonymousRole
			if actor, ok := identity.ActorFromContext(r.Context()); ok {
				role = actor.Role.String()
				fields = append(fields,
					logger.NewField("actor_id", actor.ID),
					logger.NewField("actor_role", actor.Role.String()),
				)
			}
			reqLog := log.With(fields...)
			reqLog.Warn("rate limit exceeded")

			HTTPRateLimitedTotal.WithLabelValues(r.Method, handlerPath, role).Inc()

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("Retry-After", "1")
			httperr.WriteCode(w, reqLog, http.StatusTooManyRequests, httperr.CodeRateLimited)
		})
	}
}
