package ports

import (
	"context"
	"time"

	"photocontest/contexts/photo-contest/competition-service/domain/entities"
)

type CompetitionFilter struct {
	Status entities.CompetitionStatus
	Limit  int
	Offset int
}

type Repository interface {
	CreateCompetition(ctx context.Context, competition entities.Competition) error
	GetCompetition(ctx context.Context, competitionID string) (entities.Competition, error)
	UpdateCompetition(ctx context.Context, competition entities.Competition) error
	// TransitionCompetitionStatus writes only while the row still has status
	// from. It reports false when nothing matched.
	TransitionCompetitionStatus(
		ctx context.Context,
		competitionID string,
		from entities.CompetitionStatus,
		to entities.CompetitionStatus,
		now time.Time,
	) (bool, error)
	DeleteCompetition(ctx context.Context, competitionID string) error
	ListCompetitions(ctx context.Context, filter CompetitionFilter) ([]entities.Competition, int, error)

	CreateCategory(ctx context.Context, category entities.Category) error
	GetCategory(ctx context.Context, categoryID string) (entities.Category, error)
	UpdateCategory(ctx context.Context, category entities.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
	ListCategories(ctx context.Context, competitionID string) ([]entities.Category, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
