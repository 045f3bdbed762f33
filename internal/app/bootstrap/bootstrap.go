package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	moderationservice "photocontest/contexts/moderation-safety/moderation-service"
	moderationpostgres "photocontest/contexts/moderation-safety/moderation-service/adapters/postgres"
	competitionservice "photocontest/contexts/photo-contest/competition-service"
	competitionpostgres "photocontest/contexts/photo-contest/competition-service/adapters/postgres"
	submissionservice "photocontest/contexts/photo-contest/submission-service"
	submissionpostgres "photocontest/contexts/photo-contest/submission-service/adapters/postgres"
	votingengine "photocontest/contexts/photo-contest/voting-engine"
	votingpostgres "photocontest/contexts/photo-contest/voting-engine/adapters/postgres"
	"photocontest/internal/platform/config"
	"photocontest/internal/platform/db"
	"photocontest/internal/platform/filestore"
	"photocontest/internal/platform/httpserver"
	"photocontest/internal/platform/livefeed"
	"photocontest/internal/platform/messaging"

	"github.com/dustin/go-humanize"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	database *db.Database
	bus      *messaging.Bus
	liveFeed *livefeed.Hub
	logger   *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg, NewLogger(cfg))
}

// Build wires every module against the configured database.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseAutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			_ = database.Close()
			return nil, err
		}
	}

	files, err := filestore.NewLocal(cfg.UploadDir, cfg.PublicBaseURL, logger)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	bus := messaging.NewBus(logger)

	competitionRepo := competitionpostgres.NewRepository(database.DB, logger)
	competitions := competitionservice.NewModule(competitionservice.Dependencies{
		Repository:              competitionRepo,
		Clock:                   competitionpostgres.SystemClock{},
		IDGenerator:             competitionpostgres.UUIDGenerator{},
		DefaultMaxPhotosPerUser: cfg.DefaultMaxPhotosPerUser,
		Logger:                  logger,
	})

	submissionRepo := submissionpostgres.NewRepository(database.DB, logger)
	submissions := submissionservice.NewModule(submissionservice.Dependencies{
		Photos:         submissionRepo,
		Catalog:        submissionRepo,
		Files:          files,
		Clock:          submissionpostgres.SystemClock{},
		IDGen:          submissionpostgres.UUIDGenerator{},
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
	})

	voting := votingengine.NewModule(votingengine.Dependencies{
		Votes:     votingpostgres.NewRepository(database.DB, logger),
		Publisher: bus,
		Clock:     votingpostgres.SystemClock{},
		IDGen:     votingpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	moderation := moderationservice.NewModule(moderationservice.Dependencies{
		Repository: moderationpostgres.NewRepository(database.DB, logger),
		Files:      files,
		Publisher:  bus,
		Clock:      moderationpostgres.SystemClock{},
		IDGen:      moderationpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	var hub *livefeed.Hub
	if cfg.EnableLiveFeed {
		hub = livefeed.NewHub(logger)
	}

	server := httpserver.New(httpserver.Modules{
		Competitions: competitions,
		Submissions:  submissions,
		Voting:       voting,
		Moderation:   moderation,
	}, httpserver.Options{
		Addr:           normalizeAddr(cfg.HTTPPort),
		UploadDir:      cfg.UploadDir,
		UploadPrefix:   uploadPrefix(cfg.PublicBaseURL),
		MaxUploadBytes: cfg.MaxUploadBytes,
		LiveFeed:       hub,
		EnableSwagger:  cfg.EnableSwagger,
	}, logger)

	logger.Info("api app built",
		"event", "bootstrap_api_built",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"database_driver", database.Driver,
		"upload_dir", cfg.UploadDir,
		"max_upload", humanize.IBytes(uint64(cfg.MaxUploadBytes)),
		"default_max_photos_per_user", cfg.DefaultMaxPhotosPerUser,
		"live_feed", cfg.EnableLiveFeed,
	)
	return &APIApp{
		server:   server,
		database: database,
		bus:      bus,
		liveFeed: hub,
		logger:   logger,
	}, nil
}

func (a *APIApp) Handler() http.Handler {
	return a.server.Handler()
}

// Run serves HTTP until ctx is cancelled. The live feed hub lives as long as
// the server does.
func (a *APIApp) Run(ctx context.Context) error {
	if a.liveFeed != nil {
		go a.liveFeed.Run(ctx)
		a.liveFeed.SubscribeTo(ctx, a.bus)
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start(ctx)
}

func (a *APIApp) Close() error {
	if a.database != nil {
		return a.database.Close()
	}
	return nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
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

// uploadPrefix is the path part of the public base URL, which may be absolute.
func uploadPrefix(publicBaseURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(publicBaseURL))
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "/uploads"
	}
	return strings.TrimRight(parsed.Path, "/")
}
