package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

const DefaultBroadcastConcurrency = 16

const (
	reasonSendFailed = "send_failed"
	reasonPingFailed = "ping_failed"
	reasonReplaced   = "replaced"
)

// Registry хранит по одному соединению на подписчика. Запись в соединение
// происходит вне мьютекса, поэтому медленный получатель не блокирует остальных.
type Registry struct {
	log         registryLogger
	concurrency int

	mu       sync.Mutex
	channels map[entities.Subscriber]Channel
}

func New(log registryLogger, concurrency int) *Registry {
	if concurrency <= 0 {
		concurrency = DefaultBroadcastConcurrency
	}
	return &Registry{
		log:         log,
		concurrency: concurrency,
		channels:    make(map[entities.Subscriber]Channel),
	}
}

// Register привязывает канал к подписчику. Предыдущий канал того же подписчика закрывается.
func (r *Registry) Register(subscriber entities.Subscriber, ch Channel) {
	r.mu.Lock()
	previous, replaced := r.channels[subscriber]
	r.channels[subscriber] = ch
	r.mu.Unlock()

	switch {
	case !replaced:
		ActiveConnections.WithLabelValues(subscriber.Role.String()).Inc()
	case previous != ch:
		DroppedConnectionsTotal.WithLabelValues(subscriber.Role.String(), reasonReplaced).Inc()
		r.closeChannel(subscriber, previous)
	}

	r.log.Info("subscriber registered",
		logger.NewField("subscriber_id", subscriber.ID),
		logger.NewField("subscriber_role", subscriber.Role.String()),
		logger.NewField("replaced", replaced),
	)
}

// Unregister идемпотентен.
func (r *Registry) Unregister(subscriber entities.Subscriber) {
	r.mu.Lock()
	ch, ok := r.channels[subscriber]
	if ok {
		delete(r.channels, subscriber)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	ActiveConnections.WithLabelValues(subscriber.Role.String()).Dec()
	r.closeChannel(subscriber, ch)
}

// Release снимает регистрацию, только если подписчик всё ещё привязан к ch.
// Обработчик соединения вызывает его при выходе, не трогая заменивший его канал.
func (r *Registry) Release(subscriber entities.Subscriber, ch Channel) bool {
	r.mu.Lock()
	current, ok := r.channels[subscriber]
	owned := ok && current == ch
	if owned {
		delete(r.channels, subscriber)
	}
	r.mu.Unlock()

	if owned {
		ActiveConnections.WithLabelValues(subscriber.Role.String()).Dec()
	}
	return owned
}

func (r *Registry) Send(ctx context.Context, subscriber entities.Subscriber, notification entities.Notification) error {
	r.mu.Lock()
	ch, ok := r.channels[subscriber]
	r.mu.Unlock()

	if !ok {
		return entities.ErrSubscriberOffline
	}

	if err := ch.Send(ctx, notification); err != nil {
		r.drop(subscriber, ch, reasonSendFailed, err)
		return fmt.Errorf("send to %s %s: %w", subscriber.Role, subscriber.ID, err)
	}
	return nil
}

// BroadcastByRole отправляет уведомление всем подписчикам роли и возвращает
// число успешных доставок. Сбой одного получателя не прерывает рассылку.
func (r *Registry) BroadcastByRole(ctx context.Context, role entities.Role, notification entities.Notification) int {
	recipients := r.snapshot(func(s entities.Subscriber) bool { return s.Role == role })

	var delivered atomic.Int64
	r.fanOut(ctx, recipients, func(ctx context.Context, subscriber entities.Subscriber, ch Channel) {
		if err := ch.Send(ctx, notification); err != nil {
			r.drop(subscriber, ch, reasonSendFailed, err)
			return
		}
		delivered.Add(1)
	})

	return int(delivered.Load())
}

// Ping проверяет все соединения и удаляет те, что не ответили.
func (r *Registry) Ping(ctx context.Context) int {
	recipients := r.snapshot(func(entities.Subscriber) bool { return true })

	var alive atomic.Int64
	r.fanOut(ctx, recipients, func(ctx context.Context, subscriber entities.Subscriber, ch Channel) {
		if err := ch.Ping(ctx); err != nil {
			r.drop(subscriber, ch, reasonPingFailed, err)
			return
		}
		alive.Add(1)
	})

	return int(alive.Load())
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.channels)
}

// CloseAll закрывает все соединения при остановке сервиса.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	channels := r.channels
	r.channels = make(map[entities.Subscriber]Channel)
	r.mu.Unlock()

	for subscriber, ch := range channels {
		ActiveConnections.WithLabelValues(subscriber.Role.String()).Dec()
		r.closeChannel(subscriber, ch)
	}
}

type target struct {
	subscriber entities.Subscriber
	ch         Channel
}

func (r *Registry) snapshot(match func(entities.Subscriber) bool) []target {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]target, 0, len(r.channels))
	for subscriber, ch := range r.channels {
		if match(subscriber) {
			out = append(out, target{subscriber: subscriber, ch: ch})
		}
	}
	return out
}

func (r *Registry) fanOut(ctx context.Context, targets []target, fn func(ctx context.Context, subscriber entities.Subscriber, ch Channel)) {
	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for _, t := range targets {
		g.Go(func() error {
			fn(ctx, t.subscriber, t.ch)
			return nil
		})
	}
	_ = g.Wait()
}

// drop удаляет неисправный канал, если его ещё не заменили новым.
func (r *Registry) drop(subscriber entities.Subscriber, ch Channel, reason string, cause error) {
	if !r.Release(subscriber, ch) {
		return
	}
	DroppedConnectionsTotal.WithLabelValues(subscriber.Role.String(), reason).Inc()
	r.closeChannel(subscriber, ch)

	r.log.Warn("subscriber channel dropped",
		logger.NewField("subscriber_id", subscriber.ID),
		logger.NewField("subscriber_role", subscriber.Role.String()),
		logger.NewField("reason", reason),
		logger.NewField("error", cause),
	)
}

func (r *Registry) closeChannel(subscriber entities.Subscriber, ch Channel) {
	if err := ch.Close(); err != nil {
		r.log.Warn("failed to close subscriber channel",
			logger.NewField("subscriber_id", subscriber.ID),
			logger.NewField("subscriber_role", subscriber.Role.String()),
			logger.NewField("error", err),
		)
	}
}
