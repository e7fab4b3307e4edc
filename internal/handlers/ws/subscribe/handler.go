package subscribe

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"orderflow/internal/handlers/rest/httperr"
	"orderflow/internal/pkg/identity"
	"orderflow/pkg/logger"
)

const (
	maxMessageSize = 4096
	bufferSize     = 1024
)

type Config struct {
	// SendTimeout ограничивает одну запись в соединение.
	SendTimeout time.Duration
	// PongWait - сколько ждать любого кадра от клиента, прежде чем считать соединение мёртвым.
	PongWait time.Duration
}

type Handler struct {
	log      handlerLogger
	registry Registry
	config   Config
	upgrader websocket.Upgrader
}

func New(log handlerLogger, registry Registry, config Config) *Handler {
	handlerLog := log.With(logger.NewField("component", "ws_subscribe"))

	return &Handler{
		log:      handlerLog,
		registry: registry,
		config:   config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  bufferSize,
			WriteBufferSize: bufferSize,
			// Токен проверяется до апгрейда, Origin не ограничиваем.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP регистрирует соединение под идентичностью из токена и держит его до
// разрыва. Входящие сообщения клиента игнорируются, читаются только ради pong.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.ActorFromContext(r.Context())
	if !ok {
		httperr.Unauthorized(w, h.log)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		h.log.With(
			logger.NewField("error", err),
		).Warn("websocket upgrade failed")
		return
	}

	subscriber := actor.Subscriber()
	ch := NewChannel(conn, h.config.SendTimeout)
	h.registry.Register(subscriber, ch)

	defer func() {
		if h.registry.Release(subscriber, ch) {
			h.log.With(
				logger.NewField("subscriber_id", subscriber.ID),
				logger.NewField("subscriber_role", subscriber.Role.String()),
			).Info("subscriber disconnected")
		}
		_ = ch.Close()
	}()

	h.readLoop(conn)
}

func (h *Handler) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)

	extend := func() error {
		return conn.SetReadDeadline(time.Now().Add(h.config.PongWait))
	}
	if err := extend(); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return extend()
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.With(
					logger.NewField("error", err),
				).Warn("websocket closed unexpectedly")
			}
			return
		}
		if err := extend(); err != nil {
			return
		}
	}
}
