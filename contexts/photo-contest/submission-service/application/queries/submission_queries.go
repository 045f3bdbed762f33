package queries

import (
	"context"
	"strings"

	"photocontest/contexts/photo-contest/submission-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
	"photocontest/contexts/photo-contest/submission-service/ports"
	"photocontest/contracts/identity"
	"photocontest/contracts/paging"
)

type CategoryQuota struct {
	CategoryID    string
	CategoryName  string
	CompetitionID string
	Count         int
	Limit         int
	Remaining     int
}

type ListUserPhotosQuery struct {
	CompetitionID string
	Status        string
	Limit         int
	Offset        int
}

type PhotoPage struct {
	Items []entities.Photo
	Total int
}

type SubmissionQueries struct {
	Photos  ports.PhotoRepository
	Catalog ports.CatalogReader
}

// GetUserSubmissionCounts is display-only quota information; it enforces
// nothing.
func (q SubmissionQueries) GetUserSubmissionCounts(
	ctx context.Context,
	actor identity.Actor,
	competitionID string,
) ([]CategoryQuota, error) {
	if !actor.Authenticated() {
		return nil, domainerrors.ErrUnauthenticated
	}
	competitionID = strings.TrimSpace(competitionID)
	if competitionID != "" {
		exists, err := q.Catalog.CompetitionExists(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domainerrors.ErrCompetitionNotFound
		}
	}
	counts, err := q.Photos.CountUserPhotosByCategory(ctx, actor.UserID, competitionID)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryQuota, 0, len(counts))
	for _, item := range counts {
		remaining := item.Category.MaxPhotosPerUser - item.Count
		if remaining < 0 {
			remaining = 0
		}
		items = append(items, CategoryQuota{
			CategoryID:    item.Category.CategoryID,
			CategoryName:  item.Category.Name,
			CompetitionID: item.Category.CompetitionID,
			Count:         item.Count,
			Limit:         item.Category.MaxPhotosPerUser,
			Remaining:     remaining,
		})
	}
	return items, nil
}

// GetPhoto hides unmoderated and rejected photos from everyone except their
// owner and admins.
func (q SubmissionQueries) GetPhoto(ctx context.Context, actor identity.Actor, photoID string) (entities.Photo, error) {
	photoID = strings.TrimSpace(photoID)
	if photoID == "" {
		return entities.Photo{}, domainerrors.ErrIdentifierRequired
	}
	photo, err := q.Photos.GetPhoto(ctx, photoID)
	if err != nil {
		return entities.Photo{}, err
	}
	if photo.Status != entities.PhotoStatusApproved && !actor.IsAdmin && !actor.Owns(photo.UserID) {
		return entities.Photo{}, domainerrors.ErrPhotoNotFound
	}
	return photo, nil
}

func (q SubmissionQueries) ListUserPhotos(ctx context.Context, actor identity.Actor, query ListUserPhotosQuery) (PhotoPage, error) {
	if !actor.Authenticated() {
		return PhotoPage{}, domainerrors.ErrUnauthenticated
	}
	page, err := paging.Normalize(query.Limit, query.Offset)
	if err != nil {
		return PhotoPage{}, err
	}
	filter := ports.UserPhotoFilter{
		UserID:        actor.UserID,
		CompetitionID: strings.TrimSpace(query.CompetitionID),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	if strings.TrimSpace(query.Status) != "" {
		status, ok := entities.ParsePhotoStatus(query.Status)
		if !ok {
			return PhotoPage{}, domainerrors.ErrInvalidStatus
		}
		filter.Status = status
	}
	items, total, err := q.Photos.ListUserPhotos(ctx, filter)
	if err != nil {
		return PhotoPage{}, err
	}
	return PhotoPage{Items: items, Total: total}, nil
}
