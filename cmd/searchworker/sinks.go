package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"places/internal/config"
	"places/internal/history"
	"places/internal/models"
	"places/internal/publish"
	"places/internal/storage"
	"places/pkg/kafkaclient"
)

// newSinks builds the export stage: the results topic always, the archive
// and history when they are configured. All sinks run in parallel.
func newSinks(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (publish.Stage[models.Outcome], func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	producer := kafkaclient.NewProducer(cfg.Kafka.ResultsTopic, cfg.Kafka.Broker)
	closers = append(closers, func() {
		if err := producer.Close(); err != nil {
			log.WithError(err).Error("failed to close kafka producer")
		}
	})
	stage := publish.NewStage[models.Outcome]().With("results-topic", func(ctx context.Context, o *models.Outcome) error {
		value, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("marshal outcome: %w", err)
		}
		return producer.Publish(ctx, o.Session, value)
	})

	if cfg.MinIO.Enabled() {
		archive, err := storage.NewArchive(cfg.MinIO, log)
		if err != nil {
			closeAll()
			return publish.Stage[models.Outcome]{}, nil, err
		}
		if err := archive.EnsureBucket(ctx, ""); err != nil {
			closeAll()
			return publish.Stage[models.Outcome]{}, nil, err
		}
		stage = stage.With("archive", archive.Store)
	}

	if cfg.HistoryEnabled() {
		store, err := history.New(ctx, cfg.DatabaseURL)
		if err != nil {
			closeAll()
			return publish.Stage[models.Outcome]{}, nil, err
		}
		closers = append(closers, store.Close)
		if err := store.Migrate(ctx); err != nil {
			closeAll()
			return publish.Stage[models.Outcome]{}, nil, err
		}
		stage = stage.With("history", store.Record)
	}

	log.WithField("sinks", stage.Len()).Info("publishing outcomes")
	return stage, closeAll, nil
}
