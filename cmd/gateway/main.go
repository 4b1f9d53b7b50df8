package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/api"
	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/application/services"
	"github.com/DanielPopoola/vin-gateway/internal/config"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/decoder"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/vin-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/vin-gateway/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/vin-gateway/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting vin gateway",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"default_provider", cfg.Decoder.Provider,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	lookupRepo := postgres.NewLookupRepository(db.Pool)

	var decoders []application.Decoder
	for _, p := range []domain.Provider{domain.ProviderNinjas, domain.ProviderNHTSA} {
		d, err := decoder.New(p, cfg.Decoder, cfg.Retry)
		if err != nil {
			logger.Error("failed to build decoder", "provider", p, "error", err)
			os.Exit(1)
		}
		decoders = append(decoders, d)
	}

	decodeService := services.NewDecodeService(
		decoders,
		domain.Provider(cfg.Decoder.Provider),
		lookupRepo,
		cfg.Cache.TTL,
		logger,
	).WithCallTimeout(cfg.Retry.Budget(cfg.Decoder.ConnTimeout))
	queryService := services.NewQueryService(lookupRepo)

	h := handlers.NewHandlers(decodeService, queryService, db, logger)

	doc, err := api.GetSwagger()
	if err != nil {
		logger.Error("failed to load openapi document", "error", err)
		os.Exit(1)
	}
	validateRequests, err := middleware.RequestValidator(doc, logger)
	if err != nil {
		logger.Error("failed to build request validator", "error", err)
		os.Exit(1)
	}

	handler := validateRequests(handlers.Routes(h))
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	pruneWorker := worker.NewPruneWorker(
		lookupRepo,
		cfg.Worker.Interval,
		cfg.Worker.Retention,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go pruneWorker.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
