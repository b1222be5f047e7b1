package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	pollactor "ballot/contexts/poll-network/poll-actor"
	actorpostgres "ballot/contexts/poll-network/poll-actor/adapters/postgres"
	pollfactory "ballot/contexts/poll-network/poll-factory"
	factorypostgres "ballot/contexts/poll-network/poll-factory/adapters/postgres"
	"ballot/contexts/poll-network/poll-factory/application/workers"
	"ballot/internal/platform/config"
	"ballot/internal/platform/db"
	"ballot/internal/platform/httpserver"
	"ballot/internal/platform/runtime"
	"ballot/internal/shared/protocol"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server       *httpserver.Server
	postgres     *db.Postgres
	relay        workers.MessageRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        workers.MessageRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	chains := runtime.New(logger)

	var (
		pg            *db.Postgres
		pollsModule   pollactor.Module
		factoryModule pollfactory.Module
	)

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("POSTGRES_DSN is empty, running on in-memory stores",
			"event", "bootstrap_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		pollsModule = pollactor.NewInMemoryModule(logger)
		factoryModule = pollfactory.NewInMemoryModule(chains, chains, logger)
	} else {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}

		actorRepo := actorpostgres.NewRepository(pg.DB, logger)
		factoryRepo := factorypostgres.NewRepository(pg.DB, logger)
		pollsModule = pollactor.NewModule(pollactor.Dependencies{
			States: actorRepo,
			Logger: logger,
		})
		factoryModule = pollfactory.NewModule(pollfactory.Dependencies{
			Spawner:       chains,
			Ledger:        factoryRepo,
			Outbox:        factoryRepo,
			OutboxRows:    factoryRepo,
			Publisher:     chains,
			Clock:         factorypostgres.SystemClock{},
			IDGen:         factorypostgres.UUIDGenerator{},
			FundingTokens: cfg.FundingTokens,
			RelayBatch:    cfg.RelayBatchSize,
			Logger:        logger,
		})
	}

	chains.RegisterHandler(messageExecutor(pollsModule))

	server := httpserver.New(pollsModule, factoryModule, chains, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:       server,
		postgres:     pg,
		relay:        factoryModule.Relay,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	chains := runtime.New(logger)
	actorRepo := actorpostgres.NewRepository(pg.DB, logger)
	factoryRepo := factorypostgres.NewRepository(pg.DB, logger)

	pollsModule := pollactor.NewModule(pollactor.Dependencies{
		States: actorRepo,
		Logger: logger,
	})
	chains.RegisterHandler(messageExecutor(pollsModule))

	return &WorkerApp{
		postgres: pg,
		relay: workers.MessageRelay{
			Outbox:    factoryRepo,
			Publisher: chains,
			Clock:     factorypostgres.SystemClock{},
			BatchSize: cfg.RelayBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

// messageExecutor turns raw envelope bytes handed over by the runtime into a
// typed message executed on the target chain's poll state.
func messageExecutor(module pollactor.Module) runtime.MessageHandler {
	return func(ctx context.Context, chainID string, payload []byte) error {
		envelope, err := protocol.Unmarshal(payload)
		if err != nil {
			return err
		}
		message, err := protocol.Decode(envelope)
		if err != nil {
			return err
		}
		return module.Polls.HandleMessage(ctx, chainID, message)
	}
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	go a.runRelay(ctx)
	return a.server.Start()
}

// runRelay drains the message outbox alongside the HTTP listener so a
// single api process delivers its own cross-chain messages.
func (a *APIApp) runRelay(ctx context.Context) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		if err := a.relay.RunOnce(ctx); err != nil {
			a.logger.Error("outbox relay cycle failed",
				"event", "bootstrap_relay_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
