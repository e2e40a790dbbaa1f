package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"places/internal/config"
	"places/internal/logging"
	"places/internal/models"
	"places/internal/publish"
	"places/internal/service"
	"places/internal/worker"
	"places/pkg/geocode"
	"places/pkg/graceful"
	"places/pkg/kafkaclient"
)

const outcomeBuffer = 64

func main() {
	envLoaded := config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if !envLoaded {
		log.Info("no .env file found, assuming environment variables are set directly")
	}
	if err := cfg.Kafka.Validate(); err != nil {
		log.WithError(err).Fatal("invalid kafka configuration")
	}

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	sinks, closeSinks, err := newSinks(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up sinks")
	}
	defer closeSinks()

	log.WithFields(logrus.Fields{
		"broker":   cfg.Kafka.Broker,
		"topic":    cfg.Kafka.InputTopic,
		"group_id": cfg.Kafka.GroupID,
	}).Info("connecting to kafka")

	consumer := kafkaclient.NewKafkaConsumer(cfg.Kafka.InputTopic, cfg.Kafka.GroupID, cfg.Kafka.Broker, log)
	consumer.StartConsuming(ctx)

	client := geocode.NewClient(cfg.Geocode(), geocode.WithLogger(log))
	w := worker.New(ctx, client, cfg.Debounce, outcomeBuffer, log)

	pipeline := publish.NewPipeline[models.Outcome](log, sinks)
	published := make(chan struct{})
	go func() {
		defer close(published)
		// Outcomes already delivered are still exported during shutdown.
		items, failures := pipeline.Process(context.WithoutCancel(ctx), w.Outcomes())
		log.WithFields(logrus.Fields{"outcomes": items, "failed_steps": failures}).Info("publisher finished")
	}()

	iterator := service.NewIterator(consumer, service.DecodeTextEvent, log)
	if err := iterator.Run(ctx, w.Handle); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("iterator stopped")
	}

	consumer.Stop()
	w.Close()
	<-published
	log.Info("search worker exiting")
}
