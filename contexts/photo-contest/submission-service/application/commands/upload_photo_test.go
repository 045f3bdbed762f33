package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"photocontest/contexts/photo-contest/submission-service/adapters/memory"
	"photocontest/contexts/photo-contest/submission-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
	"photocontest/contexts/photo-contest/submission-service/ports"
	"photocontest/contracts/errkind"
	"photocontest/contracts/identity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var (
	testNow  = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
)

func seedCategory(store *memory.Store, status string, limit int) {
	store.SetCategory(ports.CategoryProjection{
		CategoryID:        "cat-1",
		CompetitionID:     "comp-1",
		Name:              "Landscapes",
		MaxPhotosPerUser:  limit,
		CompetitionStatus: status,
	})
}

func validUpload() UploadPhotoCommand {
	return UploadPhotoCommand{
		CategoryID:  "cat-1",
		Title:       "Fog over the valley",
		Description: "Early morning fog rolling through the valley floor.",
		File: entities.FileUpload{
			Filename:    "valley.png",
			ContentType: "image/png",
			Data:        pngBytes,
		},
	}
}

func newUploadUseCase(photos ports.PhotoRepository, store *memory.Store) UploadUseCase {
	return UploadUseCase{
		Photos:  photos,
		Catalog: store,
		Files:   store,
		Clock:   fixedClock{now: testNow},
		IDGen:   store,
	}
}

func TestUploadPhotoEnforcesCategoryQuota(t *testing.T) {
	store := memory.NewStore()
	seedCategory(store, "open", 2)
	uc := newUploadUseCase(store, store)
	user := identity.User("user-1")

	for i := 0; i < 2; i++ {
		photo, err := uc.UploadPhoto(context.Background(), user, validUpload())
		if err != nil {
			t.Fatalf("upload %d failed: %v", i+1, err)
		}
		if photo.Status != entities.PhotoStatusPending {
			t.Fatalf("expected pending photo, got %s", photo.Status)
		}
		if photo.CompetitionID != "comp-1" {
			t.Fatalf("expected competition from category, got %q", photo.CompetitionID)
		}
	}

	_, err := uc.UploadPhoto(context.Background(), user, validUpload())
	if !errors.Is(err, domainerrors.ErrSubmissionLimitExceeded) {
		t.Fatalf("expected submission limit exceeded, got %v", err)
	}
	if limit, ok := domainerrors.LimitOf(err); !ok || limit != 2 {
		t.Fatalf("expected limit 2 on error, got %d ok=%v", limit, ok)
	}
	if kind, _ := errkind.KindOf(err); kind != errkind.QuotaExceeded {
		t.Fatalf("expected QUOTA_EXCEEDED kind, got %q", kind)
	}
	if store.FileCount() != 2 {
		t.Fatalf("expected 2 stored files, got %d", store.FileCount())
	}

	other, err := uc.UploadPhoto(context.Background(), identity.User("user-2"), validUpload())
	if err != nil {
		t.Fatalf("expected quota to be per user, got %v", err)
	}
	if other.QuotaSlot != 0 {
		t.Fatalf("expected first slot for a new user, got %d", other.QuotaSlot)
	}
}

func TestUploadPhotoRequiresOpenCompetition(t *testing.T) {
	for _, status := range []string{"draft", "voting", "closed"} {
		store := memory.NewStore()
		seedCategory(store, status, 2)
		uc := newUploadUseCase(store, store)
		_, err := uc.UploadPhoto(context.Background(), identity.User("user-1"), validUpload())
		if !errors.Is(err, domainerrors.ErrCompetitionNotActive) {
			t.Fatalf("status %s: expected competition not active, got %v", status, err)
		}
	}
}

func TestUploadPhotoUnknownCategory(t *testing.T) {
	store := memory.NewStore()
	uc := newUploadUseCase(store, store)
	_, err := uc.UploadPhoto(context.Background(), identity.User("user-1"), validUpload())
	if !errors.Is(err, domainerrors.ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestUploadPhotoValidatesBeforeTouchingStorage(t *testing.T) {
	store := memory.NewStore()
	seedCategory(store, "open", 2)
	uc := newUploadUseCase(store, store)

	_, err := uc.UploadPhoto(context.Background(), identity.Anonymous(), validUpload())
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	short := validUpload()
	short.Description = "tiny"
	_, err = uc.UploadPhoto(context.Background(), identity.User("user-1"), short)
	if !errors.Is(err, domainerrors.ErrInvalidDescription) {
		t.Fatalf("expected invalid description, got %v", err)
	}

	uc.MaxUploadBytes = 16
	_, err = uc.UploadPhoto(context.Background(), identity.User("user-1"), validUpload())
	if !errors.Is(err, domainerrors.ErrFileTooLarge) {
		t.Fatalf("expected file too large, got %v", err)
	}
	if store.FileCount() != 0 {
		t.Fatalf("expected no stored files, got %d", store.FileCount())
	}
}

func TestConcurrentUploadsNeverExceedQuota(t *testing.T) {
	store := memory.NewStore()
	seedCategory(store, "open", 3)
	uc := newUploadUseCase(store, store)
	user := identity.User("user-1")

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		limited   int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.UploadPhoto(context.Background(), user, validUpload())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domainerrors.ErrSubmissionLimitExceeded):
				limited++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 3 || limited != attempts-3 {
		t.Fatalf("expected 3 successes and %d quota failures, got %d and %d", attempts-3, succeeded, limited)
	}
	count, err := store.CountUserPhotosInCategory(context.Background(), "user-1", "cat-1")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 stored photos, got %d", count)
	}
	if store.FileCount() != 3 {
		t.Fatalf("expected orphaned files to be cleaned up, got %d files", store.FileCount())
	}
}

// staleCounter reports an outdated count, as a concurrent request would see
// before another upload commits.
type staleCounter struct {
	*memory.Store
}

func (staleCounter) CountUserPhotosInCategory(context.Context, string, string) (int, error) {
	return 0, nil
}

func TestUploadPhotoLosingSlotRaceRemovesStoredFile(t *testing.T) {
	store := memory.NewStore()
	seedCategory(store, "open", 1)
	store.SetPhoto(entities.Photo{
		PhotoID:    "existing",
		UserID:     "user-1",
		CategoryID: "cat-1",
		Status:     entities.PhotoStatusPending,
		QuotaSlot:  0,
	})
	uc := newUploadUseCase(staleCounter{Store: store}, store)

	_, err := uc.UploadPhoto(context.Background(), identity.User("user-1"), validUpload())
	if !errors.Is(err, domainerrors.ErrSubmissionLimitExceeded) {
		t.Fatalf("expected storage-level quota failure, got %v", err)
	}
	if store.FileCount() != 0 {
		t.Fatalf("expected stored file to be removed, got %d files", store.FileCount())
	}
}
