package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/cache"
	"github.com/Domenick1991/tripmates/internal/function"
	"github.com/Domenick1991/tripmates/internal/kafka"
	"github.com/Domenick1991/tripmates/internal/repository"
	"github.com/Domenick1991/tripmates/internal/service/trips"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const kafkaCheckTimeout = 3 * time.Second

// App holds the process-wide dependencies shared by the binaries.
type App struct {
	Pool     *pgxpool.Pool
	Trips    *trips.TripService
	Function *function.Handler

	closers []func() error
}

// NewApp connects to Postgres and, when configured, Redis and Kafka. The
// store connection string is read once here and injected downstream.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	app := &App{Pool: pool}
	var opts []trips.TripServiceOption

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Trips.ListCacheTTL())
		app.closers = append(app.closers, redisCache.Close)
		opts = append(opts, trips.WithCache(redisCache))
	} else {
		log.Info("redis not configured, trips cache disabled")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		checkCtx, cancel := context.WithTimeout(ctx, kafkaCheckTimeout)
		if err := producer.CheckConnection(checkCtx); err != nil {
			log.WithError(err).Warn("kafka unreachable at startup, trip events may be lost")
		}
		cancel()
		app.closers = append(app.closers, producer.Close)
		opts = append(opts, trips.WithProducer(producer, cfg.Kafka.TripsTopic))
	} else {
		log.Info("kafka not configured, trip events disabled")
	}

	app.Trips = trips.NewTripService(repository.NewTripRepository(pool), opts...)
	app.Function = function.NewHandler(app.Trips)
	return app, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.WithError(err).Warn("close dependency")
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
