package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/shixiaoya/materials/internal/config"
	"github.com/shixiaoya/materials/internal/infra"
)

const connectTimeout = 5 * time.Second

func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf("failed to build config - %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pgPool, err := infra.Postgresql(ctx, cfg.PostgresCfg)
	if err != nil {
		logrus.Fatalf("failed to connect to postgresql - %s", err)
	}
	defer pgPool.Close()

	mongoClient, err := infra.Mongodb(ctx, cfg.MongoCfg)
	if err != nil {
		logrus.Fatalf("failed to connect to mongodb - %s", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logrus.Errorf("failed to disconnect from mongodb - %s", err)
		}
	}()

	redisClient := infra.Redis(ctx, cfg.RedisCfg)

	app, err := infra.Router(cfg, pgPool, mongoClient, redisClient)
	if err != nil {
		logrus.Fatalf("failed to build router - %s", err)
	}

	start(app, cfg.ServerCfg)
}

func start(app *echo.Echo, cfg config.ServerCfg) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logrus.Fatalf("failed to stop server gracefully - %s", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("shutting down the server, unexpected error occurred - %s", err)
		}
	}
}
