package submissionservice

import (
	"log/slog"

	httpadapter "photocontest/contexts/photo-contest/submission-service/adapters/http"
	"photocontest/contexts/photo-contest/submission-service/adapters/memory"
	"photocontest/contexts/photo-contest/submission-service/application/commands"
	"photocontest/contexts/photo-contest/submission-service/application/queries"
	"photocontest/contexts/photo-contest/submission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Photos         ports.PhotoRepository
	Catalog        ports.CatalogReader
	Files          ports.FileStorage
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	MaxUploadBytes int64
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Uploads: commands.UploadUseCase{
				Photos:         deps.Photos,
				Catalog:        deps.Catalog,
				Files:          deps.Files,
				Clock:          deps.Clock,
				IDGen:          deps.IDGen,
				MaxUploadBytes: deps.MaxUploadBytes,
				Logger:         deps.Logger,
			},
			Manage: commands.ManageUseCase{
				Photos: deps.Photos,
				Files:  deps.Files,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			Queries: queries.SubmissionQueries{
				Photos:  deps.Photos,
				Catalog: deps.Catalog,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Photos:  store,
		Catalog: store,
		Files:   store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
