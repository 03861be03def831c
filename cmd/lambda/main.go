package main

import (
	"context"
	"os"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/bootstrap"
	"github.com/Domenick1991/tripmates/internal/logger"
	"github.com/aws/aws-lambda-go/lambda"
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

	app, err := bootstrap.NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer app.Close()

	lambda.Start(app.Function.Handle)
}
