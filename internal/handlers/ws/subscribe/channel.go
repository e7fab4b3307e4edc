package subscribe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"orderflow/internal/entities"
	"orderflow/internal/handlers/dto"
)

const closeGracePeriod = time.Second

// Channel - websocket соединение подписчика. Запись сериализуется мьютексом,
// gorilla/websocket допускает только одного писателя.
type Channel struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	mu        sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func NewChannel(conn *websocket.Conn, writeTimeout time.Duration) *Channel {
	return &Channel{
		conn:         conn,
		writeTimeout: writeTimeout,
	}
}

// Send - одна попытка записи кадра. Повторов нет: упавший канал снимается реестром.
func (c *Channel) Send(ctx context.Context, notification entities.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(c.deadline(ctx)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.conn.WriteJSON(dto.FromNotification(notification)); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}

func (c *Channel) Ping(ctx context.Context) error {
	if err := c.conn.WriteControl(websocket.PingMessage, nil, c.deadline(ctx)); err != nil {
		return fmt.Errorf("write ping: %w", err)
	}
	return nil
}

// Close идемпотентен. Клиенту отправляется close-кадр, затем соединение рвётся.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGracePeriod),
		)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *Channel) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.writeTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}
