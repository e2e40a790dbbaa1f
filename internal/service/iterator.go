// Package service drives the search worker's input: it reads text-changed
// events from a message source, decodes them and hands them to a handler,
// committing each message once it has been handled.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"places/internal/models"
)

// ErrMalformed marks a message that could not be decoded.
var ErrMalformed = errors.New("service: malformed message")

// Iterator decodes messages from a MessageIterator into T. It does not
// manage the underlying consumer.
type Iterator[T any] struct {
	msgIterator MessageIterator
	decode      DecoderFunc[T]
	log         logrus.FieldLogger
}

// NewIterator reads from iterator and decodes each message with decode.
func NewIterator[T any](iterator MessageIterator, decode DecoderFunc[T], log logrus.FieldLogger) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		decode:      decode,
		log:         log,
	}
}

// Run handles messages until the source closes or ctx is done. Malformed
// messages are logged and committed so they are not redelivered; a handler
// error leaves the message uncommitted.
func (it *Iterator[T]) Run(ctx context.Context, handle HandlerFunc[T]) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-it.msgIterator.Messages():
			if !ok {
				return nil
			}
			it.handle(ctx, msg, handle)
		}
	}
}

func (it *Iterator[T]) handle(ctx context.Context, msg kafka.Message, handle HandlerFunc[T]) {
	fields := logrus.Fields{"topic": msg.Topic, "partition": msg.Partition, "offset": msg.Offset}

	item, err := it.decode(msg.Value)
	if err != nil {
		it.log.WithFields(fields).WithError(err).Warn("skipping malformed message")
	} else if err := handle(ctx, item); err != nil {
		it.log.WithFields(fields).WithError(err).Error("handler failed")
		return
	}

	if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
		it.log.WithFields(fields).WithError(err).Error("failed to commit offset")
	}
}

// DecodeTextEvent is the DecoderFunc for the worker input topic. An event
// without a session is malformed.
func DecodeTextEvent(value []byte) (models.TextEvent, error) {
	var ev models.TextEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return models.TextEvent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ev.Session == "" {
		return models.TextEvent{}, fmt.Errorf("%w: missing session", ErrMalformed)
	}
	return ev, nil
}
