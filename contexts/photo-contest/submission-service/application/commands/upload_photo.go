package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "photocontest/contexts/photo-contest/submission-service/application"
	"photocontest/contexts/photo-contest/submission-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
	"photocontest/contexts/photo-contest/submission-service/ports"
	"photocontest/contracts/identity"
)

type UploadPhotoCommand struct {
	CategoryID  string
	Title       string
	Description string
	Location    string
	DateTaken   *time.Time
	Camera      *entities.CameraInfo
	File        entities.FileUpload
}

// UploadUseCase admits new photos into an open competition. The quota is
// checked up front for a fast failure and enforced again by the repository's
// slot constraint at insert time.
type UploadUseCase struct {
	Photos         ports.PhotoRepository
	Catalog        ports.CatalogReader
	Files          ports.FileStorage
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	MaxUploadBytes int64
	Logger         *slog.Logger
}

func (uc UploadUseCase) UploadPhoto(ctx context.Context, actor identity.Actor, cmd UploadPhotoCommand) (entities.Photo, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !actor.Authenticated() {
		return entities.Photo{}, domainerrors.ErrUnauthenticated
	}
	categoryID := strings.TrimSpace(cmd.CategoryID)
	if categoryID == "" {
		return entities.Photo{}, domainerrors.ErrIdentifierRequired
	}

	now := uc.now()
	metadata := entities.Metadata{
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		Location:    strings.TrimSpace(cmd.Location),
		DateTaken:   cmd.DateTaken,
		Camera:      normalizeCamera(cmd.Camera),
	}
	if err := metadata.Validate(now); err != nil {
		return entities.Photo{}, err
	}
	mimeType, err := entities.ValidateFile(cmd.File, uc.MaxUploadBytes)
	if err != nil {
		logger.Warn("photo upload file rejected",
			"event", "submission_upload_file_rejected",
			"module", application.ModuleName,
			"layer", "application",
			"user_id", actor.UserID,
			"category_id", categoryID,
			"file_size", len(cmd.File.Data),
			"error", err.Error(),
		)
		return entities.Photo{}, err
	}

	category, err := uc.Catalog.GetCategory(ctx, categoryID)
	if err != nil {
		return entities.Photo{}, err
	}
	if category.CompetitionStatus != "open" {
		return entities.Photo{}, domainerrors.ErrCompetitionNotActive
	}

	count, err := uc.Photos.CountUserPhotosInCategory(ctx, actor.UserID, categoryID)
	if err != nil {
		return entities.Photo{}, err
	}
	if count >= category.MaxPhotosPerUser {
		logger.Info("photo upload quota exhausted",
			"event", "submission_upload_quota_exhausted",
			"module", application.ModuleName,
			"layer", "application",
			"user_id", actor.UserID,
			"category_id", categoryID,
			"limit", category.MaxPhotosPerUser,
		)
		return entities.Photo{}, domainerrors.SubmissionLimitError{Limit: category.MaxPhotosPerUser}
	}

	photoID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Photo{}, err
	}
	stored, err := uc.Files.Put(ctx, mimeType, cmd.File.Data)
	if err != nil {
		logger.Error("photo upload storage failed",
			"event", "submission_upload_storage_failed",
			"module", application.ModuleName,
			"layer", "application",
			"user_id", actor.UserID,
			"category_id", categoryID,
			"error", err.Error(),
		)
		return entities.Photo{}, err
	}

	photo, err := uc.Photos.CreatePhoto(ctx, entities.Photo{
		PhotoID:       photoID,
		UserID:        actor.UserID,
		CompetitionID: category.CompetitionID,
		CategoryID:    categoryID,
		Title:         metadata.Title,
		Description:   metadata.Description,
		FileURL:       stored.URL,
		FilePath:      stored.Path,
		FileSize:      stored.Size,
		MimeType:      mimeType,
		DateTaken:     metadata.DateTaken,
		Location:      metadata.Location,
		Camera:        metadata.Camera,
		Status:        entities.PhotoStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, category.MaxPhotosPerUser)
	if err != nil {
		if deleteErr := uc.Files.Delete(ctx, stored.Path); deleteErr != nil {
			logger.Warn("orphaned upload cleanup failed",
				"event", "submission_upload_cleanup_failed",
				"module", application.ModuleName,
				"layer", "application",
				"file_path", stored.Path,
				"error", deleteErr.Error(),
			)
		}
		return entities.Photo{}, err
	}

	logger.Info("photo uploaded",
		"event", "submission_photo_uploaded",
		"module", application.ModuleName,
		"layer", "application",
		"photo_id", photo.PhotoID,
		"user_id", photo.UserID,
		"competition_id", photo.CompetitionID,
		"category_id", photo.CategoryID,
		"quota_slot", photo.QuotaSlot,
	)
	return photo, nil
}

func (uc UploadUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeCamera(camera *entities.CameraInfo) *entities.CameraInfo {
	if camera == nil {
		return nil
	}
	normalized := entities.CameraInfo{
		Make:         strings.TrimSpace(camera.Make),
		Model:        strings.TrimSpace(camera.Model),
		Lens:         strings.TrimSpace(camera.Lens),
		FocalLength:  strings.TrimSpace(camera.FocalLength),
		Aperture:     strings.TrimSpace(camera.Aperture),
		ShutterSpeed: strings.TrimSpace(camera.ShutterSpeed),
		ISO:          strings.TrimSpace(camera.ISO),
	}
	if normalized.IsZero() {
		return nil
	}
	return &normalized
}
