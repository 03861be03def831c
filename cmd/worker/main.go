package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/kafka"
	"github.com/Domenick1991/tripmates/internal/logger"
	"github.com/Domenick1991/tripmates/internal/notify"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Setup(cfg.Log)

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("kafka brokers are not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := kafka.CheckConnection(ctx, cfg.Kafka.Brokers); err != nil {
		log.WithError(err).Warn("kafka unreachable at startup, consumer will keep retrying")
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TripsTopic)
	defer consumer.Close()

	sender := notify.NewSender(log.StandardLogger())

	log.WithField("topic", cfg.Kafka.TripsTopic).Info("notification worker started")
	err = consumer.Consume(ctx, kafka.TripEventHandler(func(ctx context.Context, event domain.TripEvent) error {
		sent, err := sender.Send(ctx, event)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"trip_id": event.TripID, "notified": sent}).Debug("trip event handled")
		return nil
	}))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("consumer stopped: %v", err)
	}
}
