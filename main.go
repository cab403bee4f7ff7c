// @title Mohafiz API
// @version 1.0
// @description Child-protection platform backend.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fazeelit/mohafizbackend/bootstrap"
	"github.com/Fazeelit/mohafizbackend/config"
	"github.com/Fazeelit/mohafizbackend/database"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/metrics"
	"github.com/Fazeelit/mohafizbackend/internal/server"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		logger.Error(ctx, "mongodb connection failed", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "connected to mongodb", "db", cfg.MongoDB)

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		logger.Error(ctx, "ensure indexes failed", "error", err)
		os.Exit(1)
	}

	var media storage.Uploader = storage.Disabled{}
	if cfg.StorageEnabled() {
		s3, err := storage.NewS3Uploader(ctx, storage.S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			PublicURL:    cfg.S3PublicURL,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			logger.Error(ctx, "media storage setup failed", "error", err)
			os.Exit(1)
		}
		media = s3
	} else {
		logger.Warn(ctx, "S3 is not configured, upload routes will respond 503")
	}

	app, err := server.New(server.Options{
		Config:  cfg,
		Log:     logger,
		Metrics: metrics.New(),
		Stores:  server.MongoStores(db),
		Media:   media,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, client, cfg.MongoTimeout)
		},
		AccessLog: os.Stdout,
	})
	if err != nil {
		logger.Error(ctx, "app setup failed", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info(ctx, "server listening", "addr", cfg.Addr())
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Error(ctx, "server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info(ctx, "shutting down")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error(ctx, "server shutdown failed", "error", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error(ctx, "mongodb disconnect failed", "error", err)
	}
}
