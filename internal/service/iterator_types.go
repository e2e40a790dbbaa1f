package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageIterator is the message source the Iterator reads from;
// *kafkaclient.KafkaConsumer implements it.
//
// Implementations own the consumer lifecycle and close the Messages channel
// when the consumer stops.
type MessageIterator interface {
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges a processed message.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// DecoderFunc turns a raw message value into T.
type DecoderFunc[T any] func(value []byte) (T, error)

// HandlerFunc consumes one decoded item. The message is committed only when
// it returns nil.
type HandlerFunc[T any] func(ctx context.Context, item T) error
