package graceful_shutdown

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"orderflow/internal/handlers/rest/httperr"
	"orderflow/pkg/logger"
)

const retryAfter = 5 * time.Second

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
}

// Middleware отвечает 503, когда сервис уже останавливается и ongoingCtx отменён.
// Новые websocket подписки тоже отклоняются: CloseAll их больше не увидит.
func Middleware(log handlerLogger, isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	retryAfterSeconds := strconv.Itoa(int(retryAfter.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() && ongoingCtx.Err() != nil {
				w.Header().Set("Retry-After", retryAfterSeconds)
				httperr.WriteCode(w, log, http.StatusServiceUnavailable, httperr.CodeShuttingDown)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
