package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	moderationservice "photocontest/contexts/moderation-safety/moderation-service"
	competitionservice "photocontest/contexts/photo-contest/competition-service"
	submissionservice "photocontest/contexts/photo-contest/submission-service"
	votingengine "photocontest/contexts/photo-contest/voting-engine"
	"photocontest/internal/platform/livefeed"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "photocontest/internal/platform/httpserver/docs"
)

type Modules struct {
	Competitions competitionservice.Module
	Submissions  submissionservice.Module
	Voting       votingengine.Module
	Moderation   moderationservice.Module
}

type Options struct {
	Addr           string
	UploadDir      string
	UploadPrefix   string
	MaxUploadBytes int64
	LiveFeed       *livefeed.Hub
	EnableSwagger  bool
}

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	addr           string
	uploadDir      string
	uploadPrefix   string
	maxUploadBytes int64
	liveFeed       *livefeed.Hub
	enableSwagger  bool

	competitions competitionservice.Module
	submissions  submissionservice.Module
	voting       votingengine.Module
	moderation   moderationservice.Module
}

func New(modules Modules, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.UploadPrefix == "" || !strings.HasPrefix(opts.UploadPrefix, "/") {
		opts.UploadPrefix = "/uploads"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           opts.Addr,
		uploadDir:      opts.UploadDir,
		uploadPrefix:   strings.TrimRight(opts.UploadPrefix, "/"),
		maxUploadBytes: opts.MaxUploadBytes,
		liveFeed:       opts.LiveFeed,
		enableSwagger:  opts.EnableSwagger,
		competitions:   modules.Competitions,
		submissions:    modules.Submissions,
		voting:         modules.Voting,
		moderation:     modules.Moderation,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting",
			"event", "http_server_starting",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"addr", s.addr,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	if s.enableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.uploadDir != "" {
		s.mux.Handle("GET "+s.uploadPrefix+"/", http.StripPrefix(s.uploadPrefix+"/", noDirListing(http.FileServer(http.Dir(s.uploadDir)))))
	}

	s.mux.HandleFunc("GET /v1/competitions", s.handleListCompetitions)
	s.mux.HandleFunc("POST /v1/competitions", s.handleCreateCompetition)
	s.mux.HandleFunc("GET /v1/competitions/{competition_id}", s.handleGetCompetition)
	s.mux.HandleFunc("PATCH /v1/competitions/{competition_id}", s.handleUpdateCompetition)
	s.mux.HandleFunc("DELETE /v1/competitions/{competition_id}", s.handleDeleteCompetition)
	s.mux.HandleFunc("POST /v1/competitions/{competition_id}/status", s.handleChangeCompetitionStatus)
	s.mux.HandleFunc("POST /v1/competitions/{competition_id}/categories", s.handleCreateCategory)
	s.mux.HandleFunc("PATCH /v1/categories/{category_id}", s.handleUpdateCategory)
	s.mux.HandleFunc("DELETE /v1/categories/{category_id}", s.handleDeleteCategory)

	s.mux.HandleFunc("POST /v1/photos", s.handleUploadPhoto)
	s.mux.HandleFunc("GET /v1/photos/{photo_id}", s.handleGetPhoto)
	s.mux.HandleFunc("PATCH /v1/photos/{photo_id}", s.handleUpdatePhoto)
	s.mux.HandleFunc("DELETE /v1/photos/{photo_id}", s.handleDeletePhoto)
	s.mux.HandleFunc("GET /v1/me/photos", s.handleListMyPhotos)
	s.mux.HandleFunc("GET /v1/competitions/{competition_id}/submission-counts", s.handleSubmissionCounts)

	s.mux.HandleFunc("POST /v1/photos/{photo_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /v1/photos/{photo_id}/votes", s.handleVoteStatus)
	s.mux.HandleFunc("GET /v1/competitions/{competition_id}/photos", s.handleListCompetitionPhotos)
	s.mux.HandleFunc("GET /v1/competitions/{competition_id}/voting-stats", s.handleVotingStats)

	s.mux.HandleFunc("POST /v1/photos/{photo_id}/reports", s.handleCreateReport)
	s.mux.HandleFunc("GET /v1/admin/photos/pending", s.handlePendingPhotos)
	s.mux.HandleFunc("POST /v1/admin/photos/bulk", s.handleBulkPhotoAction)
	s.mux.HandleFunc("POST /v1/admin/photos/{photo_id}/approve", s.handleApprovePhoto)
	s.mux.HandleFunc("POST /v1/admin/photos/{photo_id}/reject", s.handleRejectPhoto)
	s.mux.HandleFunc("DELETE /v1/admin/photos/{photo_id}", s.handleAdminDeletePhoto)
	s.mux.HandleFunc("GET /v1/admin/reports", s.handleListReports)
	s.mux.HandleFunc("POST /v1/admin/reports/{report_id}/resolve", s.handleResolveReport)
	s.mux.HandleFunc("GET /v1/admin/stats", s.handleModerationStats)

	if s.liveFeed != nil {
		s.mux.HandleFunc("GET /v1/competitions/{competition_id}/live", s.handleLiveFeed)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLiveFeed(w http.ResponseWriter, r *http.Request) {
	s.liveFeed.ServeCompetition(w, r, r.PathValue("competition_id"))
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
