package httpadapter

import (
	"context"
	"log/slog"

	"photocontest/contexts/photo-contest/submission-service/application/commands"
	"photocontest/contexts/photo-contest/submission-service/application/queries"
	"photocontest/contexts/photo-contest/submission-service/domain/entities"
	httptransport "photocontest/contexts/photo-contest/submission-service/transport/http"
	"photocontest/contracts/identity"
	"photocontest/contracts/paging"
)

type Handler struct {
	Uploads commands.UploadUseCase
	Manage  commands.ManageUseCase
	Queries queries.SubmissionQueries
	Logger  *slog.Logger
}

func (h Handler) UploadPhotoHandler(
	ctx context.Context,
	actor identity.Actor,
	req httptransport.UploadPhotoRequest,
) (httptransport.PhotoResponse, error) {
	photo, err := h.Uploads.UploadPhoto(ctx, actor, commands.UploadPhotoCommand{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DateTaken:   req.DateTaken,
		Camera:      cameraFromDTO(req.Camera),
		File: entities.FileUpload{
			Filename:    req.Filename,
			ContentType: req.ContentType,
			Data:        req.Data,
		},
	})
	if err != nil {
		return httptransport.PhotoResponse{}, err
	}
	return mapPhoto(photo), nil
}

func (h Handler) UpdatePhotoHandler(
	ctx context.Context,
	actor identity.Actor,
	photoID string,
	req httptransport.UpdatePhotoRequest,
) (httptransport.PhotoResponse, error) {
	photo, err := h.Manage.UpdatePhoto(ctx, actor, commands.UpdatePhotoCommand{
		PhotoID:     photoID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DateTaken:   req.DateTaken,
		Camera:      cameraFromDTO(req.Camera),
	})
	if err != nil {
		return httptransport.PhotoResponse{}, err
	}
	return mapPhoto(photo), nil
}

func (h Handler) DeletePhotoHandler(ctx context.Context, actor identity.Actor, photoID string) error {
	return h.Manage.DeletePhoto(ctx, actor, photoID)
}

func (h Handler) GetPhotoHandler(ctx context.Context, actor identity.Actor, photoID string) (httptransport.PhotoResponse, error) {
	photo, err := h.Queries.GetPhoto(ctx, actor, photoID)
	if err != nil {
		return httptransport.PhotoResponse{}, err
	}
	return mapPhoto(photo), nil
}

func (h Handler) ListUserPhotosHandler(
	ctx context.Context,
	actor identity.Actor,
	req httptransport.ListUserPhotosRequest,
) (httptransport.PhotoListResponse, error) {
	page, err := h.Queries.ListUserPhotos(ctx, actor, queries.ListUserPhotosQuery{
		CompetitionID: req.CompetitionID,
		Status:        req.Status,
		Limit:         req.Limit,
		Offset:        req.Offset,
	})
	if err != nil {
		return httptransport.PhotoListResponse{}, err
	}
	items := make([]httptransport.PhotoResponse, 0, len(page.Items))
	for _, photo := range page.Items {
		items = append(items, mapPhoto(photo))
	}
	limit := req.Limit
	if limit == 0 {
		limit = paging.DefaultLimit
	}
	return httptransport.PhotoListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

func (h Handler) SubmissionCountsHandler(
	ctx context.Context,
	actor identity.Actor,
	competitionID string,
) (httptransport.SubmissionCountsResponse, error) {
	counts, err := h.Queries.GetUserSubmissionCounts(ctx, actor, competitionID)
	if err != nil {
		return httptransport.SubmissionCountsResponse{}, err
	}
	items := make([]httptransport.CategoryQuotaResponse, 0, len(counts))
	for _, item := range counts {
		items = append(items, httptransport.CategoryQuotaResponse{
			CategoryID:    item.CategoryID,
			CategoryName:  item.CategoryName,
			CompetitionID: item.CompetitionID,
			Count:         item.Count,
			Limit:         item.Limit,
			Remaining:     item.Remaining,
		})
	}
	return httptransport.SubmissionCountsResponse{Items: items}, nil
}

func cameraFromDTO(camera *httptransport.CameraInfo) *entities.CameraInfo {
	if camera == nil {
		return nil
	}
	return &entities.CameraInfo{
		Make:         camera.Make,
		Model:        camera.Model,
		Lens:         camera.Lens,
		FocalLength:  camera.FocalLength,
		Aperture:     camera.Aperture,
		ShutterSpeed: camera.ShutterSpeed,
		ISO:          camera.ISO,
	}
}

func mapPhoto(photo entities.Photo) httptransport.PhotoResponse {
	resp := httptransport.PhotoResponse{
		PhotoID:         photo.PhotoID,
		UserID:          photo.UserID,
		CompetitionID:   photo.CompetitionID,
		CategoryID:      photo.CategoryID,
		Title:           photo.Title,
		Description:     photo.Description,
		FileURL:         photo.FileURL,
		FileSize:        photo.FileSize,
		MimeType:        photo.MimeType,
		DateTaken:       photo.DateTaken,
		Location:        photo.Location,
		Status:          string(photo.Status),
		RejectionReason: photo.RejectionReason,
		CreatedAt:       photo.CreatedAt,
		UpdatedAt:       photo.UpdatedAt,
	}
	if photo.Camera != nil {
		resp.Camera = &httptransport.CameraInfo{
			Make:         photo.Camera.Make,
			Model:        photo.Camera.Model,
			Lens:         photo.Camera.Lens,
			FocalLength:  photo.Camera.FocalLength,
			Aperture:     photo.Camera.Aperture,
			ShutterSpeed: photo.Camera.ShutterSpeed,
			ISO:          photo.Camera.ISO,
		}
	}
	return resp
}
