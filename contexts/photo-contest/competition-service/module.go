package competitionservice

import (
	"log/slog"

	httpadapter "photocontest/contexts/photo-contest/competition-service/adapters/http"
	"photocontest/contexts/photo-contest/competition-service/adapters/memory"
	"photocontest/contexts/photo-contest/competition-service/application"
	"photocontest/contexts/photo-contest/competition-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository              ports.Repository
	Clock                   ports.Clock
	IDGenerator             ports.IDGenerator
	DefaultMaxPhotosPerUser int
	Logger                  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:                    deps.Repository,
		Clock:                   deps.Clock,
		IDGen:                   deps.IDGenerator,
		DefaultMaxPhotosPerUser: deps.DefaultMaxPhotosPerUser,
		Logger:                  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
