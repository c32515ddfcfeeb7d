package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/adapter/httpapi"
	natsAdapter "github.com/Abdurahmanit/GroupProject/homes-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/adapter/repository/cache"
	mongoRepo "github.com/Abdurahmanit/GroupProject/homes-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/usecase"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/tracer"

	"go.uber.org/zap"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Fatal("Failed to load configuration", zap.Error(err))
	}

	// 2. Logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Application starting...",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_set", cfg.MongoURI != ""),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
	)

	// 3. Tracing
	if cfg.OTExporterOTLPEndpoint != "" {
		tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	// 4. Metrics
	metricsManager := metrics.NewMetricsManager("homes")
	var metricsSrv *http.Server
	if cfg.PrometheusMetricsPort != "" {
		metricsSrv = metrics.NewMetricsServer(cfg.PrometheusMetricsPort, metricsManager.Registry, appLogger)
		go func() {
			appLogger.Info("Starting Prometheus metrics server", zap.String("port", cfg.PrometheusMetricsPort))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// 5. Object storage
	storage, err := s3.NewS3Storage(s3.Config{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
		PublicURL: cfg.StoragePublicURL,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create storage client", zap.Error(err))
	}
	if missing := cfg.MissingStorageSettings(); len(missing) > 0 {
		appLogger.Warn("Object storage not configured, image uploads will fail", zap.Strings("missing", missing))
	} else if cfg.StorageCreateBucket {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := storage.EnsureBucket(ctx); err != nil {
			appLogger.Error("Failed to ensure storage bucket", zap.String("bucket", cfg.StorageBucket), zap.Error(err))
		}
		cancel()
	}
	imageUsecase := usecase.NewImageUsecase(storage, cfg.StoragePathPrefix, metricsManager, appLogger)

	// 6. Listings: MongoDB, with optional Redis cache and NATS events
	var homeHandler *httpapi.HomeHandler
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoClient, err := mongoRepo.Connect(ctx, cfg.MongoURI)
		cancel()
		if err != nil {
			appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		}()
		repo := mongoRepo.NewHomeRepository(mongoClient.Database(cfg.MongoDatabase))

		var homeCache domain.HomeCache
		if cfg.RedisAddress != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			c, err := cache.NewHomeCache(ctx, cfg.RedisAddress)
			cancel()
			if err != nil {
				appLogger.Warn("Redis unavailable, serving homes without cache", zap.Error(err))
			} else {
				defer c.Close()
				homeCache = c
			}
		}

		var publisher domain.EventPublisher
		if cfg.NATSURL != "" {
			p, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
			if err != nil {
				appLogger.Warn("NATS unavailable, home events disabled", zap.Error(err))
			} else {
				defer p.Close()
				publisher = p
			}
		}

		homeUsecase := usecase.NewHomeUsecase(repo, homeCache, publisher, metricsManager, appLogger)
		homeHandler = httpapi.NewHomeHandler(homeUsecase, cfg.HomeMaxBodyBytes, appLogger)
	} else {
		appLogger.Info("MONGO_URI not set, /api/homes disabled")
	}

	// 7. HTTP server
	router := httpapi.NewRouter(
		httpapi.NewImageHandler(imageUsecase, cfg.UploadMaxBodyBytes, appLogger),
		homeHandler,
		metricsManager,
		appLogger,
	)
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(ctx)
	}
	appLogger.Info("Application shutting down...")
}
