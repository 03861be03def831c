package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/bootstrap"
	"github.com/Domenick1991/tripmates/internal/logger"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer app.Close()

	if err := bootstrap.Run(ctx, cfg, app.Function, app.Pool); err != nil {
		log.Errorf("server error: %v", err)
	}
}
