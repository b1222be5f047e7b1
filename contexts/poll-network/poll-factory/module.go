package pollfactory

import (
	"log/slog"

	httpadapter "ballot/contexts/poll-network/poll-factory/adapters/http"
	"ballot/contexts/poll-network/poll-factory/adapters/memory"
	"ballot/contexts/poll-network/poll-factory/application/commands"
	"ballot/contexts/poll-network/poll-factory/application/queries"
	"ballot/contexts/poll-network/poll-factory/application/workers"
	"ballot/contexts/poll-network/poll-factory/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Factory commands.CreatePollUseCase
	Relay   workers.MessageRelay
	Store   *memory.Store
}

type Dependencies struct {
	Spawner       ports.ChainSpawner
	Ledger        ports.LedgerStore
	Outbox        ports.MessageOutbox
	OutboxRows    ports.OutboxRepository
	Publisher     ports.MessagePublisher
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	FundingTokens uint64
	RelayBatch    int
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createUseCase := commands.CreatePollUseCase{
		Spawner:       deps.Spawner,
		Ledger:        deps.Ledger,
		Outbox:        deps.Outbox,
		Clock:         deps.Clock,
		IDGen:         deps.IDGen,
		FundingTokens: deps.FundingTokens,
		Logger:        deps.Logger,
	}
	ledgerUseCase := queries.CreatedPollsUseCase{
		Ledger: deps.Ledger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Factory: createUseCase,
			Ledger:  ledgerUseCase,
			Logger:  deps.Logger,
		},
		Factory: createUseCase,
		Relay: workers.MessageRelay{
			Outbox:    deps.OutboxRows,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			BatchSize: deps.RelayBatch,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the factory against the in-process store; the
// spawner and publisher still come from the caller since they belong to the
// runtime substrate.
func NewInMemoryModule(spawner ports.ChainSpawner, publisher ports.MessagePublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Spawner:    spawner,
		Ledger:     store,
		Outbox:     store,
		OutboxRows: store,
		Publisher:  publisher,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
