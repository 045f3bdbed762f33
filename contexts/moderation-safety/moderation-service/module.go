package moderationservice

import (
	"log/slog"

	httpadapter "photocontest/contexts/moderation-safety/moderation-service/adapters/http"
	"photocontest/contexts/moderation-safety/moderation-service/adapters/memory"
	"photocontest/contexts/moderation-safety/moderation-service/application"
	"photocontest/contexts/moderation-safety/moderation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Files      ports.FileStorage
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:      deps.Repository,
		Files:     deps.Files,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
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
		Repository: store,
		Files:      store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
