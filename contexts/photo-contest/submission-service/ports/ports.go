package ports

import (
	"context"
	"time"

	"photocontest/contexts/photo-contest/submission-service/domain/entities"
)

// CategoryProjection is the submission view of a category joined with the
// status of its competition.
type CategoryProjection struct {
	CategoryID        string
	CompetitionID     string
	Name              string
	MaxPhotosPerUser  int
	CompetitionStatus string
}

type CategoryCount struct {
	Category CategoryProjection
	Count    int
}

type UserPhotoFilter struct {
	UserID        string
	CompetitionID string
	Status        entities.PhotoStatus
	Limit         int
	Offset        int
}

type PhotoRepository interface {
	// CreatePhoto takes the lowest free quota slot below limit and inserts the
	// photo in one statement. It fails with SubmissionLimitError when every
	// slot is taken, including slots claimed by concurrent uploads.
	CreatePhoto(ctx context.Context, photo entities.Photo, limit int) (entities.Photo, error)
	GetPhoto(ctx context.Context, photoID string) (entities.Photo, error)
	CountUserPhotosInCategory(ctx context.Context, userID string, categoryID string) (int, error)
	// UpdatePendingPhoto writes metadata only while the photo is still pending
	// and owned by photo.UserID. It reports false when nothing matched.
	UpdatePendingPhoto(ctx context.Context, photo entities.Photo) (bool, error)
	DeletePendingPhoto(ctx context.Context, photoID string, userID string) (bool, error)
	ListUserPhotos(ctx context.Context, filter UserPhotoFilter) ([]entities.Photo, int, error)
	// CountUserPhotosByCategory groups the user's photos by category. With a
	// competition id every category of that competition is returned, zero
	// counts included.
	CountUserPhotosByCategory(ctx context.Context, userID string, competitionID string) ([]CategoryCount, error)
}

type CatalogReader interface {
	GetCategory(ctx context.Context, categoryID string) (CategoryProjection, error)
	CompetitionExists(ctx context.Context, competitionID string) (bool, error)
}

type StoredFile struct {
	Path string
	URL  string
	Size int64
}

type FileStorage interface {
	Put(ctx context.Context, contentType string, data []byte) (StoredFile, error)
	Delete(ctx context.Context, path string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
