package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/server"
	"github.com/pageza/cookbook/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.WithError(err).Fatal("failed to configure logging")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if cfg.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			logrus.WithError(err).Fatal("failed to run migrations")
		}
	}

	// Redis only backs the AI rate limiter; run without it when unreachable.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable, AI endpoints will not be rate limited")
		redisClient = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.NewStorage(ctx, cfg)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialise image storage")
	}

	srv, err := server.New(cfg, db, redisClient, store)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create server")
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		logrus.WithField("signal", sig.String()).Info("received signal")
	}

	logrus.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown error")
		return
	}
	logrus.Info("server stopped")
}
