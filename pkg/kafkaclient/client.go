package kafkaclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// readBackoff is the pause after a failed read.
const readBackoff = time.Second

// KafkaReader is the part of *kafka.Reader the consumer uses.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer reads a topic in a background loop and exposes the messages
// on a channel. Offsets are committed manually through CommitOffset.
type KafkaConsumer struct {
	reader      KafkaReader
	log         logrus.FieldLogger
	doneChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
	messageChan chan kafka.Message
}

// NewKafkaConsumer creates a consumer for topic in the given consumer group.
func NewKafkaConsumer(topic, groupID, broker string, log logrus.FieldLogger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// Zero disables auto-commit.
		CommitInterval: 0,
		// Text events are tiny; do not wait to fill large batches.
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  250 * time.Millisecond,
	})
	return newConsumer(reader, log.WithField("topic", topic))
}

func newConsumer(reader KafkaReader, log logrus.FieldLogger) *KafkaConsumer {
	return &KafkaConsumer{
		reader:      reader,
		log:         log,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}
}

func (kc *KafkaConsumer) Messages() <-chan kafka.Message {
	return kc.messageChan
}

func (kc *KafkaConsumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	kc.log.WithFields(logrus.Fields{"partition": msg.Partition, "offset": msg.Offset}).Debug("committing offset")
	return kc.reader.CommitMessages(ctx, msg)
}

// StartConsuming begins the read loop. The Messages channel is closed when
// the loop exits.
func (kc *KafkaConsumer) StartConsuming(ctx context.Context) {
	kc.wg.Add(1)
	go func() {
		defer kc.wg.Done()
		defer close(kc.messageChan)

		kc.log.Info("starting kafka consumer loop")
		for {
			msg, err := kc.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					kc.log.Info("kafka consumer loop stopped")
					return
				}
				kc.log.WithError(err).Error("error reading message")
				select {
				case <-time.After(readBackoff):
					continue
				case <-ctx.Done():
					return
				case <-kc.doneChan:
					return
				}
			}

			select {
			case kc.messageChan <- msg:
				kc.log.WithFields(logrus.Fields{"partition": msg.Partition, "offset": msg.Offset}).Debug("message received")
			case <-ctx.Done():
				return
			case <-kc.doneChan:
				return
			}
		}
	}()
}

// Stop shuts the consumer down and closes the reader. It is safe to call
// more than once.
func (kc *KafkaConsumer) Stop() {
	kc.stopOnce.Do(func() {
		close(kc.doneChan)
		// Closing the reader unblocks a pending ReadMessage.
		if err := kc.reader.Close(); err != nil {
			kc.log.WithError(err).Error("failed to close kafka reader")
		}
		kc.wg.Wait()
		kc.log.Info("kafka consumer stopped")
	})
}
