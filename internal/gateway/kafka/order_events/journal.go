package order_events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

const (
	headerEventType = "event_type"

	resultOK          = "ok"
	resultError       = "error"
	resultDropped     = "dropped"
	resultEncodeError = "encode_error"
)

var (
	ErrJournalFull   = errors.New("journal buffer is full")
	ErrJournalClosed = errors.New("journal is closed")
)

// Journal публикует события через AsyncProducer: Publish только кладёт сообщение
// в буфер продюсера и никогда не ждёт брокер. Подтверждения и ошибки разбирает drain.
type Journal struct {
	log      journalLogger
	producer producer
	topic    string

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func New(log journalLogger, producer producer, topic string) *Journal {
	j := &Journal{
		log:      log,
		producer: producer,
		topic:    topic,
		done:     make(chan struct{}),
	}
	go j.drain()
	return j
}

// Publish пишет событие с ключом order_id, так что порядок событий заказа сохраняется в партиции.
// Если буфер продюсера заполнен (брокер недоступен), событие отбрасывается с ErrJournalFull.
func (j *Journal) Publish(ctx context.Context, event entities.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("journal publish %s: %w", event.OrderID, err)
	}

	value, err := json.Marshal(toMessage(event))
	if err != nil {
		JournalPublishedTotal.WithLabelValues(event.Type.String(), resultEncodeError).Inc()
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: j.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(event.Type.String())},
		},
		Timestamp: event.OccurredAt,
		Metadata:  event.Type.String(),
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		return fmt.Errorf("journal publish %s: %w", event.OrderID, ErrJournalClosed)
	}

	select {
	case j.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("journal publish %s: %w", event.OrderID, ctx.Err())
	default:
		JournalPublishedTotal.WithLabelValues(event.Type.String(), resultDropped).Inc()
		return fmt.Errorf("journal publish %s to %s: %w", event.OrderID, j.topic, ErrJournalFull)
	}
}

// Close досылает буфер и ждёт, пока drain разберёт все подтверждения.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		<-j.done
		return nil
	}
	j.closed = true
	j.mu.Unlock()

	j.producer.AsyncClose()
	<-j.done
	return nil
}

func (j *Journal) drain() {
	defer close(j.done)

	successes := j.producer.Successes()
	producerErrors := j.producer.Errors()

	for successes != nil || producerErrors != nil {
		select {
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			JournalPublishedTotal.WithLabelValues(eventType(msg), resultOK).Inc()

		case perr, ok := <-producerErrors:
			if !ok {
				producerErrors = nil
				continue
			}
			JournalPublishedTotal.WithLabelValues(eventType(perr.Msg), resultError).Inc()
			j.log.Warn("order event not journaled",
				logger.NewField("topic", j.topic),
				logger.NewField("type", eventType(perr.Msg)),
				logger.NewField("error", perr.Err),
			)
		}
	}
}

func eventType(msg *sarama.ProducerMessage) string {
	if msg == nil {
		return ""
	}
	if t, ok := msg.Metadata.(string); ok {
		return t
	}
	return ""
}

// NopJournal используется, когда брокеры не настроены.
type NopJournal struct{}

func (NopJournal) Publish(context.Context, entities.OrderEvent) error {
	return nil
}

func (NopJournal) Close() error {
	return nil
}
