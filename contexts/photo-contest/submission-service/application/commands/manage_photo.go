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

// UpdatePhotoCommand changes only the fields that are non-nil.
type UpdatePhotoCommand struct {
	PhotoID     string
	Title       *string
	Description *string
	Location    *string
	DateTaken   *time.Time
	Camera      *entities.CameraInfo
}

// ManageUseCase holds the owner-side rules: a photo can be edited or
// withdrawn by its owner until moderation decides on it.
type ManageUseCase struct {
	Photos ports.PhotoRepository
	Files  ports.FileStorage
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc ManageUseCase) UpdatePhoto(ctx context.Context, actor identity.Actor, cmd UpdatePhotoCommand) (entities.Photo, error) {
	photoID := strings.TrimSpace(cmd.PhotoID)
	photo, err := uc.loadEditablePhoto(ctx, actor, photoID)
	if err != nil {
		return entities.Photo{}, err
	}

	if cmd.Title != nil {
		photo.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Description != nil {
		photo.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Location != nil {
		photo.Location = strings.TrimSpace(*cmd.Location)
	}
	if cmd.DateTaken != nil {
		dateTaken := cmd.DateTaken.UTC()
		photo.DateTaken = &dateTaken
	}
	if cmd.Camera != nil {
		photo.Camera = normalizeCamera(cmd.Camera)
	}
	now := uc.now()
	if err := photo.Metadata().Validate(now); err != nil {
		return entities.Photo{}, err
	}
	photo.UpdatedAt = now

	updated, err := uc.Photos.UpdatePendingPhoto(ctx, photo)
	if err != nil {
		return entities.Photo{}, err
	}
	if !updated {
		return entities.Photo{}, uc.classifyLostWrite(ctx, actor, photoID)
	}
	application.ResolveLogger(uc.Logger).Info("photo updated by owner",
		"event", "submission_photo_updated",
		"module", application.ModuleName,
		"layer", "application",
		"photo_id", photoID,
		"user_id", actor.UserID,
	)
	return photo, nil
}

// DeletePhoto withdraws a pending photo. The stored file is removed after the
// row is gone; a failed file removal is logged, not returned.
func (uc ManageUseCase) DeletePhoto(ctx context.Context, actor identity.Actor, photoID string) error {
	logger := application.ResolveLogger(uc.Logger)
	photoID = strings.TrimSpace(photoID)
	photo, err := uc.loadEditablePhoto(ctx, actor, photoID)
	if err != nil {
		return err
	}
	deleted, err := uc.Photos.DeletePendingPhoto(ctx, photoID, actor.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return uc.classifyLostWrite(ctx, actor, photoID)
	}
	if uc.Files != nil && photo.FilePath != "" {
		if err := uc.Files.Delete(ctx, photo.FilePath); err != nil {
			logger.Warn("photo file removal failed",
				"event", "submission_photo_file_delete_failed",
				"module", application.ModuleName,
				"layer", "application",
				"photo_id", photoID,
				"file_path", photo.FilePath,
				"error", err.Error(),
			)
		}
	}
	logger.Info("photo withdrawn by owner",
		"event", "submission_photo_deleted",
		"module", application.ModuleName,
		"layer", "application",
		"photo_id", photoID,
		"user_id", actor.UserID,
	)
	return nil
}

func (uc ManageUseCase) loadEditablePhoto(ctx context.Context, actor identity.Actor, photoID string) (entities.Photo, error) {
	if !actor.Authenticated() {
		return entities.Photo{}, domainerrors.ErrUnauthenticated
	}
	if photoID == "" {
		return entities.Photo{}, domainerrors.ErrIdentifierRequired
	}
	photo, err := uc.Photos.GetPhoto(ctx, photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	if !actor.Owns(photo.UserID) {
		return entities.Photo{}, domainerrors.ErrNotPhotoOwner
	}
	if !photo.IsPending() {
		return entities.Photo{}, domainerrors.ErrPhotoNotEditable
	}
	return photo, nil
}

// classifyLostWrite explains why a guarded write matched no row: the photo
// was deleted or moderated after it was read.
func (uc ManageUseCase) classifyLostWrite(ctx context.Context, actor identity.Actor, photoID string) error {
	if _, err := uc.loadEditablePhoto(ctx, actor, photoID); err != nil {
		return err
	}
	return domainerrors.ErrPhotoNotEditable
}

func (uc ManageUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
