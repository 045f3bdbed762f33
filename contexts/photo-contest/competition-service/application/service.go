package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"photocontest/contexts/photo-contest/competition-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/competition-service/domain/errors"
	"photocontest/contexts/photo-contest/competition-service/ports"
	"photocontest/contracts/identity"
	"photocontest/contracts/paging"
)

const defaultMaxPhotosPerUser = 5

type CreateCompetitionInput struct {
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	VotingStartDate  *time.Time
	VotingEndDate    *time.Time
	MaxPhotosPerUser int
}

// CompetitionPatch carries only the fields the caller wants to change.
type CompetitionPatch struct {
	Title            *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	VotingStartDate  *time.Time
	VotingEndDate    *time.Time
	MaxPhotosPerUser *int
}

type CreateCategoryInput struct {
	Name             string
	Description      string
	MaxPhotosPerUser int
}

type CategoryPatch struct {
	Name             *string
	Description      *string
	MaxPhotosPerUser *int
}

type ListCompetitionsQuery struct {
	Status string
	Limit  int
	Offset int
}

type CompetitionPage struct {
	Items []entities.Competition
	Total int
}

type Service struct {
	Repo                    ports.Repository
	Clock                   ports.Clock
	IDGen                   ports.IDGenerator
	DefaultMaxPhotosPerUser int
	Logger                  *slog.Logger
}

func (s Service) CreateCompetition(ctx context.Context, actor identity.Actor, input CreateCompetitionInput) (entities.Competition, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.Competition{}, err
	}
	now := s.now()
	competition := entities.Competition{
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		StartDate:        input.StartDate.UTC(),
		EndDate:          input.EndDate.UTC(),
		VotingStartDate:  utcPtr(input.VotingStartDate),
		VotingEndDate:    utcPtr(input.VotingEndDate),
		Status:           entities.CompetitionStatusDraft,
		MaxPhotosPerUser: input.MaxPhotosPerUser,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if competition.MaxPhotosPerUser == 0 {
		competition.MaxPhotosPerUser = s.defaultLimit()
	}
	if err := competition.Validate(); err != nil {
		return entities.Competition{}, err
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Competition{}, err
	}
	competition.CompetitionID = id
	if err := s.Repo.CreateCompetition(ctx, competition); err != nil {
		return entities.Competition{}, err
	}
	ResolveLogger(s.Logger).Info("competition created",
		"event", "competition_created",
		"module", moduleName,
		"layer", "application",
		"competition_id", competition.CompetitionID,
		"admin_id", actor.UserID,
	)
	return competition, nil
}

func (s Service) UpdateCompetition(ctx context.Context, actor identity.Actor, competitionID string, patch CompetitionPatch) (entities.Competition, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.Competition{}, err
	}
	competition, err := s.Repo.GetCompetition(ctx, strings.TrimSpace(competitionID))
	if err != nil {
		return entities.Competition{}, err
	}
	if competition.IsClosed() {
		return entities.Competition{}, domainerrors.ErrCompetitionClosed
	}
	if patch.Title != nil {
		competition.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		competition.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.StartDate != nil {
		competition.StartDate = patch.StartDate.UTC()
	}
	if patch.EndDate != nil {
		competition.EndDate = patch.EndDate.UTC()
	}
	if patch.VotingStartDate != nil {
		competition.VotingStartDate = utcPtr(patch.VotingStartDate)
	}
	if patch.VotingEndDate != nil {
		competition.VotingEndDate = utcPtr(patch.VotingEndDate)
	}
	if patch.MaxPhotosPerUser != nil {
		competition.MaxPhotosPerUser = *patch.MaxPhotosPerUser
	}
	if err := competition.Validate(); err != nil {
		return entities.Competition{}, err
	}
	competition.UpdatedAt = s.now()
	if err := s.Repo.UpdateCompetition(ctx, competition); err != nil {
		return entities.Competition{}, err
	}
	return competition, nil
}

// ChangeCompetitionStatus moves a competition forward in its lifecycle. The
// write is conditioned on the status read here, so two admins racing on the
// same competition cannot both succeed.
func (s Service) ChangeCompetitionStatus(ctx context.Context, actor identity.Actor, competitionID string, rawStatus string) (entities.Competition, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.Competition{}, err
	}
	next, ok := entities.ParseCompetitionStatus(rawStatus)
	if !ok {
		return entities.Competition{}, domainerrors.ErrInvalidStatus
	}
	competitionID = strings.TrimSpace(competitionID)
	competition, err := s.Repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return entities.Competition{}, err
	}
	if !competition.Status.CanTransitionTo(next) {
		return entities.Competition{}, domainerrors.ErrInvalidStatusTransition
	}
	now := s.now()
	updated, err := s.Repo.TransitionCompetitionStatus(ctx, competitionID, competition.Status, next, now)
	if err != nil {
		return entities.Competition{}, err
	}
	if !updated {
		if _, err := s.Repo.GetCompetition(ctx, competitionID); err != nil {
			return entities.Competition{}, err
		}
		return entities.Competition{}, domainerrors.ErrStatusChanged
	}
	previous := competition.Status
	competition.Status = next
	competition.UpdatedAt = now
	ResolveLogger(s.Logger).Info("competition status changed",
		"event", "competition_status_changed",
		"module", moduleName,
		"layer", "application",
		"competition_id", competitionID,
		"from", string(previous),
		"to", string(next),
		"admin_id", actor.UserID,
	)
	return competition, nil
}

// DeleteCompetition removes the competition and, through storage cascades,
// every category, photo, vote and report beneath it.
func (s Service) DeleteCompetition(ctx context.Context, actor identity.Actor, competitionID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	competitionID = strings.TrimSpace(competitionID)
	if err := s.Repo.DeleteCompetition(ctx, competitionID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("competition deleted",
		"event", "competition_deleted",
		"module", moduleName,
		"layer", "application",
		"competition_id", competitionID,
		"admin_id", actor.UserID,
	)
	return nil
}

func (s Service) GetCompetition(ctx context.Context, competitionID string) (entities.CompetitionDetail, error) {
	competitionID = strings.TrimSpace(competitionID)
	competition, err := s.Repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return entities.CompetitionDetail{}, err
	}
	categories, err := s.Repo.ListCategories(ctx, competitionID)
	if err != nil {
		return entities.CompetitionDetail{}, err
	}
	return entities.CompetitionDetail{Competition: competition, Categories: categories}, nil
}

func (s Service) ListCompetitions(ctx context.Context, query ListCompetitionsQuery) (CompetitionPage, error) {
	page, err := paging.Normalize(query.Limit, query.Offset)
	if err != nil {
		return CompetitionPage{}, err
	}
	filter := ports.CompetitionFilter{Limit: page.Limit, Offset: page.Offset}
	if strings.TrimSpace(query.Status) != "" {
		status, ok := entities.ParseCompetitionStatus(query.Status)
		if !ok {
			return CompetitionPage{}, domainerrors.ErrInvalidStatus
		}
		filter.Status = status
	}
	items, total, err := s.Repo.ListCompetitions(ctx, filter)
	if err != nil {
		return CompetitionPage{}, err
	}
	return CompetitionPage{Items: items, Total: total}, nil
}

func (s Service) CreateCategory(ctx context.Context, actor identity.Actor, competitionID string, input CreateCategoryInput) (entities.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.Category{}, err
	}
	competition, err := s.Repo.GetCompetition(ctx, strings.TrimSpace(competitionID))
	if err != nil {
		return entities.Category{}, err
	}
	if competition.IsClosed() {
		return entities.Category{}, domainerrors.ErrCompetitionClosed
	}
	now := s.now()
	category := entities.Category{
		CompetitionID:    competition.CompetitionID,
		Name:             strings.TrimSpace(input.Name),
		Description:      strings.TrimSpace(input.Description),
		MaxPhotosPerUser: input.MaxPhotosPerUser,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if category.MaxPhotosPerUser == 0 {
		category.MaxPhotosPerUser = competition.MaxPhotosPerUser
	}
	if err := category.Validate(); err != nil {
		return entities.Category{}, err
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Category{}, err
	}
	category.CategoryID = id
	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return entities.Category{}, err
	}
	ResolveLogger(s.Logger).Info("category created",
		"event", "competition_category_created",
		"module", moduleName,
		"layer", "application",
		"competition_id", category.CompetitionID,
		"category_id", category.CategoryID,
	)
	return category, nil
}

func (s Service) UpdateCategory(ctx context.Context, actor identity.Actor, categoryID string, patch CategoryPatch) (entities.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.Category{}, err
	}
	category, err := s.Repo.GetCategory(ctx, strings.TrimSpace(categoryID))
	if err != nil {
		return entities.Category{}, err
	}
	competition, err := s.Repo.GetCompetition(ctx, category.CompetitionID)
	if err != nil {
		return entities.Category{}, err
	}
	if competition.IsClosed() {
		return entities.Category{}, domainerrors.ErrCompetitionClosed
	}
	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		category.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.MaxPhotosPerUser != nil {
		category.MaxPhotosPerUser = *patch.MaxPhotosPerUser
	}
	if err := category.Validate(); err != nil {
		return entities.Category{}, err
	}
	category.UpdatedAt = s.now()
	if err := s.Repo.UpdateCategory(ctx, category); err != nil {
		return entities.Category{}, err
	}
	return category, nil
}

func (s Service) DeleteCategory(ctx context.Context, actor identity.Actor, categoryID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	categoryID = strings.TrimSpace(categoryID)
	if err := s.Repo.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("category deleted",
		"event", "competition_category_deleted",
		"module", moduleName,
		"layer", "application",
		"category_id", categoryID,
		"admin_id", actor.UserID,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) defaultLimit() int {
	if s.DefaultMaxPhotosPerUser > 0 {
		return s.DefaultMaxPhotosPerUser
	}
	return defaultMaxPhotosPerUser
}

func requireAdmin(actor identity.Actor) error {
	if !actor.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return domainerrors.ErrForbidden
	}
	return nil
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
