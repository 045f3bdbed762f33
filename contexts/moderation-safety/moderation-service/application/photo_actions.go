package application

import (
	"context"
	"errors"
	"strings"

	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
	"photocontest/contracts/identity"
)

const MaxBulkPhotoIDs = 100

type BulkItemResult struct {
	PhotoID string
	Success bool
	Status  entities.PhotoStatus
	Err     error
}

type BulkResult struct {
	Processed int
	Failed    int
	Results   []BulkItemResult
}

func (s Service) ApprovePhoto(ctx context.Context, actor identity.Actor, photoID string) (entities.Photo, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.Photo{}, err
	}
	photoID, err := requireID(photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	return s.approve(ctx, actor.UserID, photoID)
}

func (s Service) RejectPhoto(ctx context.Context, actor identity.Actor, photoID string, reason string) (entities.Photo, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.Photo{}, err
	}
	photoID, err := requireID(photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	reason, err = entities.NormalizeRejectionReason(reason)
	if err != nil {
		return entities.Photo{}, err
	}
	return s.reject(ctx, actor.UserID, photoID, reason)
}

// DeletePhoto is the admin delete: no status precondition.
func (s Service) DeletePhoto(ctx context.Context, actor identity.Actor, photoID string, reason string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	photoID, err := requireID(photoID)
	if err != nil {
		return err
	}
	_, err = s.remove(ctx, actor.UserID, photoID, strings.TrimSpace(reason))
	return err
}

// BulkPhotoAction applies one action to each id in order. Items fail
// independently; there is no rollback of earlier successes.
func (s Service) BulkPhotoAction(ctx context.Context, actor identity.Actor, photoIDs []string, rawAction string, reason string) (BulkResult, error) {
	if err := requireAdmin(actor); err != nil {
		return BulkResult{}, err
	}
	action, ok := entities.ParsePhotoAction(rawAction)
	if !ok {
		return BulkResult{}, domainerrors.ErrInvalidBulkAction
	}
	if len(photoIDs) == 0 {
		return BulkResult{}, domainerrors.ErrBulkEmpty
	}
	if len(photoIDs) > MaxBulkPhotoIDs {
		return BulkResult{}, domainerrors.ErrBulkTooLarge
	}
	reason = strings.TrimSpace(reason)
	if action == entities.PhotoActionReject {
		normalized, err := entities.NormalizeRejectionReason(reason)
		if err != nil {
			return BulkResult{}, err
		}
		reason = normalized
	}

	result := BulkResult{Results: make([]BulkItemResult, 0, len(photoIDs))}
	for _, rawID := range photoIDs {
		item := BulkItemResult{PhotoID: strings.TrimSpace(rawID)}
		if item.PhotoID == "" {
			item.Err = domainerrors.ErrIdentifierRequired
		} else {
			item.Err = s.applyPhotoAction(ctx, actor.UserID, item.PhotoID, action, reason)
		}
		if item.Err == nil {
			item.Success = true
			item.Status = entities.PhotoStatusAfter(action)
			result.Processed++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, item)
	}

	resolveLogger(s.Logger).Info("bulk photo action completed",
		"event", "moderation_bulk_action_completed",
		"module", moduleName,
		"layer", "application",
		"admin_id", actor.UserID,
		"action", string(action),
		"processed", result.Processed,
		"failed", result.Failed,
	)
	return result, nil
}

func (s Service) applyPhotoAction(ctx context.Context, adminID string, photoID string, action entities.PhotoAction, reason string) error {
	var err error
	switch action {
	case entities.PhotoActionApprove:
		_, err = s.approve(ctx, adminID, photoID)
	case entities.PhotoActionReject:
		_, err = s.reject(ctx, adminID, photoID, reason)
	case entities.PhotoActionDelete:
		_, err = s.remove(ctx, adminID, photoID, reason)
	default:
		err = domainerrors.ErrInvalidPhotoAction
	}
	return err
}

func (s Service) approve(ctx context.Context, adminID string, photoID string) (entities.Photo, error) {
	photo, err := s.Repo.GetPhoto(ctx, photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	if err := photo.Approve(adminID, s.now()); err != nil {
		return entities.Photo{}, err
	}
	applied, err := s.Repo.ApprovePendingPhoto(ctx, photo)
	if err != nil {
		return entities.Photo{}, err
	}
	if !applied {
		return entities.Photo{}, s.classifyLostTransition(ctx, photoID)
	}

	resolveLogger(s.Logger).Info("photo approved",
		"event", "moderation_photo_approved",
		"module", moduleName,
		"layer", "application",
		"photo_id", photoID,
		"admin_id", adminID,
	)
	s.publish(ctx, EventPhotoApproved, photo.CompetitionID, photo.UpdatedAt, map[string]any{
		"photo_id":       photo.PhotoID,
		"competition_id": photo.CompetitionID,
		"category_id":    photo.CategoryID,
		"user_id":        photo.UserID,
		"title":          photo.Title,
	})
	return photo, nil
}

func (s Service) reject(ctx context.Context, adminID string, photoID string, reason string) (entities.Photo, error) {
	photo, err := s.Repo.GetPhoto(ctx, photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	if err := photo.Reject(adminID, reason, s.now()); err != nil {
		return entities.Photo{}, err
	}
	applied, err := s.Repo.RejectPendingPhoto(ctx, photo)
	if err != nil {
		return entities.Photo{}, err
	}
	if !applied {
		return entities.Photo{}, s.classifyLostTransition(ctx, photoID)
	}

	resolveLogger(s.Logger).Info("photo rejected",
		"event", "moderation_photo_rejected",
		"module", moduleName,
		"layer", "application",
		"photo_id", photoID,
		"admin_id", adminID,
	)
	s.publish(ctx, EventPhotoRejected, photo.CompetitionID, photo.UpdatedAt, map[string]any{
		"photo_id":       photo.PhotoID,
		"competition_id": photo.CompetitionID,
		"category_id":    photo.CategoryID,
		"user_id":        photo.UserID,
		"reason":         reason,
	})
	return photo, nil
}

func (s Service) remove(ctx context.Context, adminID string, photoID string, reason string) (entities.Photo, error) {
	logger := resolveLogger(s.Logger)
	photo, err := s.Repo.GetPhoto(ctx, photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	deleted, err := s.Repo.DeletePhoto(ctx, photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	if !deleted {
		return entities.Photo{}, domainerrors.ErrPhotoNotFound
	}
	if s.Files != nil && photo.FilePath != "" {
		if err := s.Files.Delete(ctx, photo.FilePath); err != nil {
			logger.Warn("photo file cleanup failed",
				"event", "moderation_photo_file_cleanup_failed",
				"module", moduleName,
				"layer", "application",
				"photo_id", photoID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("photo deleted by admin",
		"event", "moderation_photo_deleted",
		"module", moduleName,
		"layer", "application",
		"photo_id", photoID,
		"admin_id", adminID,
		"reason", reason,
	)
	s.publish(ctx, EventPhotoDeleted, photo.CompetitionID, s.now(), map[string]any{
		"photo_id":       photo.PhotoID,
		"competition_id": photo.CompetitionID,
		"category_id":    photo.CategoryID,
		"reason":         reason,
	})
	return photo, nil
}

// classifyLostTransition explains a guarded write that matched nothing: the
// photo was either deleted or moderated by someone else in between.
func (s Service) classifyLostTransition(ctx context.Context, photoID string) error {
	if _, err := s.Repo.GetPhoto(ctx, photoID); err != nil {
		if errors.Is(err, domainerrors.ErrPhotoNotFound) {
			return domainerrors.ErrPhotoNotFound
		}
		return err
	}
	return domainerrors.ErrPhotoAlreadyModerated
}
