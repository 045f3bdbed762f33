package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"photocontest/contexts/photo-contest/submission-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
	"photocontest/contexts/photo-contest/submission-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	photos       map[string]entities.Photo
	categories   map[string]ports.CategoryProjection
	competitions map[string]struct{}
	files        map[string][]byte
}

func NewStore() *Store {
	return &Store{
		photos:       make(map[string]entities.Photo),
		categories:   make(map[string]ports.CategoryProjection),
		competitions: make(map[string]struct{}),
		files:        make(map[string][]byte),
	}
}

// SetCategory seeds the catalog projection; the owning competition is
// registered implicitly.
func (s *Store) SetCategory(category ports.CategoryProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.CategoryID = strings.TrimSpace(category.CategoryID)
	category.CompetitionID = strings.TrimSpace(category.CompetitionID)
	s.categories[category.CategoryID] = category
	s.competitions[category.CompetitionID] = struct{}{}
}

func (s *Store) SetPhoto(photo entities.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[photo.PhotoID] = photo
}

func (s *Store) FileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func (s *Store) CreatePhoto(_ context.Context, photo entities.Photo, limit int) (entities.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[photo.CategoryID]; !ok {
		return entities.Photo{}, domainerrors.ErrCategoryNotFound
	}
	used := make([]int, 0)
	for _, existing := range s.photos {
		if existing.UserID == photo.UserID && existing.CategoryID == photo.CategoryID {
			used = append(used, existing.QuotaSlot)
		}
	}
	slot, ok := entities.FirstFreeSlot(used, limit)
	if !ok {
		return entities.Photo{}, domainerrors.SubmissionLimitError{Limit: limit}
	}
	photo.QuotaSlot = slot
	s.photos[photo.PhotoID] = photo
	return photo, nil
}

func (s *Store) GetPhoto(_ context.Context, photoID string) (entities.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photo, ok := s.photos[strings.TrimSpace(photoID)]
	if !ok {
		return entities.Photo{}, domainerrors.ErrPhotoNotFound
	}
	return photo, nil
}

func (s *Store) CountUserPhotosInCategory(_ context.Context, userID string, categoryID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, photo := range s.photos {
		if photo.UserID == userID && photo.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *Store) UpdatePendingPhoto(_ context.Context, photo entities.Photo) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.photos[photo.PhotoID]
	if !ok || current.UserID != photo.UserID || current.Status != entities.PhotoStatusPending {
		return false, nil
	}
	current.Title = photo.Title
	current.Description = photo.Description
	current.Location = photo.Location
	current.DateTaken = photo.DateTaken
	current.Camera = photo.Camera
	current.UpdatedAt = photo.UpdatedAt
	s.photos[photo.PhotoID] = current
	return true, nil
}

func (s *Store) DeletePendingPhoto(_ context.Context, photoID string, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.photos[photoID]
	if !ok || current.UserID != userID || current.Status != entities.PhotoStatusPending {
		return false, nil
	}
	delete(s.photos, photoID)
	return true, nil
}

func (s *Store) ListUserPhotos(_ context.Context, filter ports.UserPhotoFilter) ([]entities.Photo, int, error) {
	s.mu.RLock()
	items := make([]entities.Photo, 0)
	for _, photo := range s.photos {
		if photo.UserID != filter.UserID {
			continue
		}
		if filter.CompetitionID != "" && photo.CompetitionID != filter.CompetitionID {
			continue
		}
		if filter.Status != "" && photo.Status != filter.Status {
			continue
		}
		items = append(items, photo)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].PhotoID > items[j].PhotoID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	total := len(items)
	if filter.Offset >= total {
		return []entities.Photo{}, total, nil
	}
	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return items[filter.Offset:end], total, nil
}

func (s *Store) CountUserPhotosByCategory(_ context.Context, userID string, competitionID string) ([]ports.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, photo := range s.photos {
		if photo.UserID == userID {
			counts[photo.CategoryID]++
		}
	}
	items := make([]ports.CategoryCount, 0)
	for _, category := range s.categories {
		count := counts[category.CategoryID]
		if competitionID != "" {
			if category.CompetitionID != competitionID {
				continue
			}
		} else if count == 0 {
			continue
		}
		items = append(items, ports.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category.Name == items[j].Category.Name {
			return items[i].Category.CategoryID < items[j].Category.CategoryID
		}
		return items[i].Category.Name < items[j].Category.Name
	})
	return items, nil
}

func (s *Store) GetCategory(_ context.Context, categoryID string) (ports.CategoryProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[strings.TrimSpace(categoryID)]
	if !ok {
		return ports.CategoryProjection{}, domainerrors.ErrCategoryNotFound
	}
	return category, nil
}

func (s *Store) CompetitionExists(_ context.Context, competitionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.competitions[strings.TrimSpace(competitionID)]
	return ok, nil
}

func (s *Store) Put(_ context.Context, contentType string, data []byte) (ports.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := uuid.NewString() + entities.ExtensionFor(contentType)
	s.files[key] = append([]byte(nil), data...)
	return ports.StoredFile{
		Path: key,
		URL:  "/uploads/" + key,
		Size: int64(len(data)),
	}, nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.PhotoRepository = (*Store)(nil)
var _ ports.CatalogReader = (*Store)(nil)
var _ ports.FileStorage = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
