package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"bulkconnector/config"
	"bulkconnector/internal/bus"
	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
	"bulkconnector/internal/http"
	"bulkconnector/internal/leveldb"
	"bulkconnector/internal/loopback"
	"bulkconnector/internal/memory"
	"bulkconnector/internal/metrics"
	"bulkconnector/internal/scheduler"
	"bulkconnector/internal/sqlite"
)

type repository struct {
	core.BulkTransactionRepository
	health http.HealthCheck
	close  func() error
}

func openRepository(ctx context.Context, cfg config.Config) (repository, error) {
	switch cfg.Repository {
	case config.RepositorySQLite:
		client, err := sqlite.NewClient(cfg.SQLite)
		if err != nil {
			return repository{}, err
		}
		if cfg.SQLite.AutoMigrate {
			if err = client.Migrate(ctx); err != nil {
				client.Close()
				return repository{}, err
			}
		}
		return repository{
			BulkTransactionRepository: sqlite.NewBulkStore(client.DB()),
			health:                    client.Ping,
			close:                     client.Close,
		}, nil

	case config.RepositoryLevelDB:
		store, err := leveldb.Open(cfg.LevelDB)
		if err != nil {
			return repository{}, err
		}
		return repository{BulkTransactionRepository: store, close: store.Close}, nil

	default:
		return repository{
			BulkTransactionRepository: memory.NewStore(),
			close:                     func() error { return nil },
		}, nil
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, options))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, options))
}

func submit(ctx context.Context, publisher command.Publisher, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req core.BulkTransactionRequest
	if err = json.Unmarshal(data, &req); err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err = core.ValidateBulkTransactionRequest(req); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if req.BulkTransactionID == "" {
		req.BulkTransactionID = uuid.NewString()
	}

	msg, err := command.NewMessage(req.BulkTransactionID, command.ProcessSDKOutboundBulkRequest, req)
	if err != nil {
		return "", err
	}
	return req.BulkTransactionID, publisher.Publish(ctx, msg)
}

func main() {
	ctx := context.Background()

	requests := pflag.StringSliceP("submit", "s", nil, "bulk transaction request files to submit on start")
	once := pflag.Bool("once", false, "exit once the submitted requests are processed")
	waitTimeout := pflag.Duration("wait-timeout", time.Minute, "how long --once waits for processing")
	pflag.Parse()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	logger.InfoContext(ctx, "Starting application", "repository", cfg.Repository)

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "failed to open repository", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	connectorMetrics := metrics.New(registry)

	messageBus := bus.NewInMemoryBus(cfg.Bus, logger)

	dispatcher := command.NewDispatcher(command.HandlerOptions{
		Repository:            repo,
		Publisher:             messageBus,
		MaxItemsPerBatch:      cfg.MaxItemsPerBatch,
		CleanupOnResponseSent: cfg.CleanupOnResponseSent,
	}, connectorMetrics, logger)
	for _, name := range command.CommandTypes {
		messageBus.Subscribe(string(name), dispatcher.Dispatch)
	}

	saga, err := scheduler.New(
		cfg.Scheduler,
		messageBus,
		loopback.NewSwitch(cfg.Loopback, messageBus, logger),
		loopback.NewWriterSink(os.Stdout),
		connectorMetrics,
		logger,
	)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create scheduler", "error", err)
		os.Exit(1)
	}
	saga.Subscribe(messageBus)

	messageBus.Start(ctx)

	var httpServer *http.Server
	if cfg.HTTP.Enabled && !*once {
		httpServer = http.NewServer(messageBus, repo, registry, repo.health, logger, cfg.HTTP)
		if err = httpServer.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "failed to start http server", "error", err)
			os.Exit(1)
		}
	}

	for _, path := range *requests {
		bulkID, err := submit(ctx, messageBus, path)
		if err != nil {
			logger.ErrorContext(ctx, "failed to submit bulk transaction", "file", path, "error", err)
			continue
		}
		logger.InfoContext(ctx, "bulk transaction submitted", "file", path, "bulkTransactionId", bulkID)
	}

	if *once {
		waitCtx, cancel := context.WithTimeout(ctx, *waitTimeout)
		if err = messageBus.WaitIdle(waitCtx); err != nil {
			logger.ErrorContext(ctx, "bulk transactions still in flight", "error", err)
		}
		cancel()
	} else {
		<-stop
	}

	logger.InfoContext(ctx, "Shutting down...")

	if httpServer != nil {
		if err = httpServer.Stop(ctx); err != nil {
			logger.ErrorContext(ctx, "Error stopping HTTP server", "error", err)
		}
	}

	messageBus.Close()

	if err = repo.close(); err != nil {
		logger.ErrorContext(ctx, "Error closing repository", "error", err)
	}

	logger.InfoContext(ctx, "Application shutdown complete")
}
