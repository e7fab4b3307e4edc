package order_events

import (
	"github.com/IBM/sarama"
	"orderflow/pkg/logger"
)

// producer - подмножество sarama.AsyncProducer.
type producer interface {
	Input() chan<- *sarama.ProducerMessage
	Successes() <-chan *sarama.ProducerMessage
	Errors() <-chan *sarama.ProducerError
	AsyncClose()
}

type journalLogger interface {
	Warn(msg string, fields ...logger.Field)
}
