package postgresadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
	"photocontest/contexts/moderation-safety/moderation-service/ports"
	"photocontest/internal/platform/db"
)

func newSQLiteRepository(t *testing.T) *Repository {
	t.Helper()
	database, err := db.Connect(db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "moderation.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO competitions (id, title, start_date, end_date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			[]any{"comp-1", "Spring", now, now.Add(48 * time.Hour), "open", now, now}},
		{`INSERT INTO categories (id, competition_id, name, max_photos_per_user, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"cat-1", "comp-1", "Landscapes", 3, now, now}},
		{`INSERT INTO photos (id, user_id, competition_id, category_id, title, file_url, file_path, mime_type, status, quota_slot, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"photo-1", "owner-1", "comp-1", "cat-1", "Dunes", "/uploads/a.jpg", "a.jpg", "image/jpeg", "pending", 0, now, now}},
		{`INSERT INTO photos (id, user_id, competition_id, category_id, title, file_url, file_path, mime_type, status, quota_slot, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"photo-2", "owner-1", "comp-1", "cat-1", "Cliffs", "/uploads/b.jpg", "b.jpg", "image/jpeg", "pending", 1, now.Add(time.Minute), now.Add(time.Minute)}},
	}
	for _, item := range seed {
		if err := database.DB.Exec(item.query, item.args...).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewRepository(database.DB, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRepositoryGuardedPhotoTransitions(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	photo, err := repo.GetPhoto(ctx, "photo-1")
	if err != nil {
		t.Fatalf("get photo: %v", err)
	}
	if err := photo.Approve("admin-1", now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	applied, err := repo.ApprovePendingPhoto(ctx, photo)
	if err != nil || !applied {
		t.Fatalf("expected approve to apply, applied=%v err=%v", applied, err)
	}

	photo.Status = entities.PhotoStatusRejected
	applied, err = repo.RejectPendingPhoto(ctx, photo)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if applied {
		t.Fatal("expected reject of an approved photo to be refused by the status guard")
	}

	stored, err := repo.GetPhoto(ctx, "photo-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != entities.PhotoStatusApproved || stored.ApprovedBy != "admin-1" || stored.ApprovedAt == nil {
		t.Fatalf("unexpected stored photo %+v", stored)
	}

	if _, err := repo.GetPhoto(ctx, "ghost"); !errors.Is(err, domainerrors.ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
}

func TestRepositoryReportsAndStats(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	report, err := entities.NewReport("report-1", "photo-1", "user-2", "spam", "duplicate upload", now)
	if err != nil {
		t.Fatalf("new report: %v", err)
	}
	if err := repo.CreateReport(ctx, report); err != nil {
		t.Fatalf("create report: %v", err)
	}

	duplicate := report
	duplicate.ReportID = "report-2"
	if err := repo.CreateReport(ctx, duplicate); !errors.Is(err, domainerrors.ErrAlreadyReported) {
		t.Fatalf("expected ErrAlreadyReported, got %v", err)
	}

	orphan := report
	orphan.ReportID = "report-3"
	orphan.ReporterID = "user-3"
	orphan.PhotoID = "ghost"
	if err := repo.CreateReport(ctx, orphan); !errors.Is(err, domainerrors.ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}

	views, total, err := repo.ListReports(ctx, ports.ReportFilter{CompetitionID: "comp-1", Limit: 10})
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if total != 1 || len(views) != 1 || views[0].PhotoTitle != "Dunes" {
		t.Fatalf("unexpected report listing total=%d views=%+v", total, views)
	}

	pending, total, err := repo.ListPendingPhotos(ctx, ports.PendingPhotoFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if total != 2 || pending[0].PhotoID != "photo-1" {
		t.Fatalf("expected oldest pending photo first, got total=%d items=%+v", total, pending)
	}

	stats, err := repo.ModerationStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Photos.Pending != 2 || stats.Photos.Total != 2 || stats.Reports.Pending != 1 || stats.Reports.Total != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	deleted, err := repo.DeletePhoto(ctx, "photo-1")
	if err != nil || !deleted {
		t.Fatalf("expected delete, deleted=%v err=%v", deleted, err)
	}
	if _, err := repo.GetReport(ctx, "report-1"); !errors.Is(err, domainerrors.ErrReportNotFound) {
		t.Fatalf("expected report removed by cascade, got %v", err)
	}
}
