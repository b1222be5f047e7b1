package pollactor

import (
	"log/slog"

	httpadapter "ballot/contexts/poll-network/poll-actor/adapters/http"
	"ballot/contexts/poll-network/poll-actor/adapters/memory"
	"ballot/contexts/poll-network/poll-actor/application/commands"
	"ballot/contexts/poll-network/poll-actor/application/queries"
	"ballot/contexts/poll-network/poll-actor/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Polls   commands.PollUseCase
	Queries queries.PollQueryUseCase
	Store   *memory.Store
}

type Dependencies struct {
	States ports.StateStore
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	pollUseCase := commands.PollUseCase{
		States: deps.States,
		Logger: deps.Logger,
	}
	queryUseCase := queries.PollQueryUseCase{
		States: deps.States,
	}
	return Module{
		Handler: httpadapter.Handler{
			Polls:   pollUseCase,
			Queries: queryUseCase,
			Logger:  deps.Logger,
		},
		Polls:   pollUseCase,
		Queries: queryUseCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		States: store,
		Logger: logger,
	})
	module.Store = store
	return module
}
