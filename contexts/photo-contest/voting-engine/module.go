package votingengine

import (
	"log/slog"

	httpadapter "photocontest/contexts/photo-contest/voting-engine/adapters/http"
	"photocontest/contexts/photo-contest/voting-engine/adapters/memory"
	"photocontest/contexts/photo-contest/voting-engine/application/commands"
	"photocontest/contexts/photo-contest/voting-engine/application/queries"
	"photocontest/contexts/photo-contest/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Votes     ports.VoteRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CastVote: commands.CastVoteUseCase{
				Votes:     deps.Votes,
				Publisher: deps.Publisher,
				Clock:     deps.Clock,
				IDGen:     deps.IDGen,
				Logger:    deps.Logger,
			},
			Queries: queries.VotingQueries{
				Votes: deps.Votes,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:  store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
