package httpadapter

import (
	"context"
	"log/slog"

	"photocontest/contexts/photo-contest/competition-service/application"
	"photocontest/contexts/photo-contest/competition-service/domain/entities"
	httptransport "photocontest/contexts/photo-contest/competition-service/transport/http"
	"photocontest/contracts/identity"
	"photocontest/contracts/paging"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateCompetitionHandler(
	ctx context.Context,
	actor identity.Actor,
	req httptransport.CreateCompetitionRequest,
) (httptransport.CompetitionResponse, error) {
	competition, err := h.Service.CreateCompetition(ctx, actor, application.CreateCompetitionInput{
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		VotingStartDate:  req.VotingStartDate,
		VotingEndDate:    req.VotingEndDate,
		MaxPhotosPerUser: req.MaxPhotosPerUser,
	})
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	return mapCompetition(competition, nil), nil
}

func (h Handler) UpdateCompetitionHandler(
	ctx context.Context,
	actor identity.Actor,
	competitionID string,
	req httptransport.UpdateCompetitionRequest,
) (httptransport.CompetitionResponse, error) {
	competition, err := h.Service.UpdateCompetition(ctx, actor, competitionID, application.CompetitionPatch{
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		VotingStartDate:  req.VotingStartDate,
		VotingEndDate:    req.VotingEndDate,
		MaxPhotosPerUser: req.MaxPhotosPerUser,
	})
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	return mapCompetition(competition, nil), nil
}

func (h Handler) ChangeStatusHandler(
	ctx context.Context,
	actor identity.Actor,
	competitionID string,
	req httptransport.ChangeStatusRequest,
) (httptransport.CompetitionResponse, error) {
	competition, err := h.Service.ChangeCompetitionStatus(ctx, actor, competitionID, req.Status)
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	return mapCompetition(competition, nil), nil
}

func (h Handler) DeleteCompetitionHandler(ctx context.Context, actor identity.Actor, competitionID string) error {
	return h.Service.DeleteCompetition(ctx, actor, competitionID)
}

func (h Handler) GetCompetitionHandler(ctx context.Context, competitionID string) (httptransport.CompetitionResponse, error) {
	detail, err := h.Service.GetCompetition(ctx, competitionID)
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	categories := make([]httptransport.CategoryResponse, 0, len(detail.Categories))
	for _, category := range detail.Categories {
		categories = append(categories, mapCategory(category))
	}
	return mapCompetition(detail.Competition, categories), nil
}

func (h Handler) ListCompetitionsHandler(
	ctx context.Context,
	req httptransport.ListCompetitionsRequest,
) (httptransport.CompetitionListResponse, error) {
	page, err := h.Service.ListCompetitions(ctx, application.ListCompetitionsQuery{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return httptransport.CompetitionListResponse{}, err
	}
	items := make([]httptransport.CompetitionResponse, 0, len(page.Items))
	for _, competition := range page.Items {
		items = append(items, mapCompetition(competition, nil))
	}
	limit := req.Limit
	if limit == 0 {
		limit = paging.DefaultLimit
	}
	return httptransport.CompetitionListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

func (h Handler) CreateCategoryHandler(
	ctx context.Context,
	actor identity.Actor,
	competitionID string,
	req httptransport.CreateCategoryRequest,
) (httptransport.CategoryResponse, error) {
	category, err := h.Service.CreateCategory(ctx, actor, competitionID, application.CreateCategoryInput{
		Name:             req.Name,
		Description:      req.Description,
		MaxPhotosPerUser: req.MaxPhotosPerUser,
	})
	if err != nil {
		return httptransport.CategoryResponse{}, err
	}
	return mapCategory(category), nil
}

func (h Handler) UpdateCategoryHandler(
	ctx context.Context,
	actor identity.Actor,
	categoryID string,
	req httptransport.UpdateCategoryRequest,
) (httptransport.CategoryResponse, error) {
	category, err := h.Service.UpdateCategory(ctx, actor, categoryID, application.CategoryPatch{
		Name:             req.Name,
		Description:      req.Description,
		MaxPhotosPerUser: req.MaxPhotosPerUser,
	})
	if err != nil {
		return httptransport.CategoryResponse{}, err
	}
	return mapCategory(category), nil
}

func (h Handler) DeleteCategoryHandler(ctx context.Context, actor identity.Actor, categoryID string) error {
	return h.Service.DeleteCategory(ctx, actor, categoryID)
}

func mapCompetition(item entities.Competition, categories []httptransport.CategoryResponse) httptransport.CompetitionResponse {
	return httptransport.CompetitionResponse{
		CompetitionID:    item.CompetitionID,
		Title:            item.Title,
		Description:      item.Description,
		StartDate:        item.StartDate,
		EndDate:          item.EndDate,
		VotingStartDate:  item.VotingStartDate,
		VotingEndDate:    item.VotingEndDate,
		Status:           string(item.Status),
		MaxPhotosPerUser: item.MaxPhotosPerUser,
		Categories:       categories,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func mapCategory(item entities.Category) httptransport.CategoryResponse {
	return httptransport.CategoryResponse{
		CategoryID:       item.CategoryID,
		CompetitionID:    item.CompetitionID,
		Name:             item.Name,
		Description:      item.Description,
		MaxPhotosPerUser: item.MaxPhotosPerUser,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}
