package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/handler"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/config"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/coverage"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/export"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/library"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/observability"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/server"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/panorama"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Coverage stage, only with an API key
	var panoramas pipeline.PanoramaFilter
	if cfg.StreetView.Enabled() {
		client, err := coverage.NewClient(cfg.StreetView)
		if err != nil {
			logger.Fatal("failed to create coverage client", zap.Error(err))
		}
		panoramas = panorama.NewService(client, panorama.Config{
			MaxDistanceMeters:  cfg.Pipeline.PanoMaxDistance,
			SearchRadiusMeters: cfg.StreetView.SearchRadius,
			LookupTimeout:      cfg.StreetView.Timeout,
			Concurrency:        cfg.StreetView.Concurrency,
			RequestsPerSecond:  cfg.StreetView.RequestsPerSecond,
		}, logger)
	} else {
		logger.Warn("MAP_API_KEY not set, panorama filtering disabled")
	}

	// Use cases
	pipelineSvc := pipeline.NewService(panoramas, logger)

	// Handlers
	extractionHandler := handler.NewExtractionHandler(
		pipelineSvc,
		library.NewManifestReader(),
		export.NewCSVEncoder(),
		export.NewGeoJSONEncoder(),
		handler.ExtractionConfig{
			DedupeDistance:  cfg.Pipeline.DedupeDistance,
			PanoMaxDistance: cfg.Pipeline.PanoMaxDistance,
			MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		},
	)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ExtractionHandler: extractionHandler,
		RequestsPerSecond: cfg.Server.RequestsPerSec,
		Logger:            logger,
		Environment:       cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
