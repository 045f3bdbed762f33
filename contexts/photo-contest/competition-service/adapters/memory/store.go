package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"photocontest/contexts/photo-contest/competition-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/competition-service/domain/errors"
	"photocontest/contexts/photo-contest/competition-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	competitions map[string]entities.Competition
	categories   map[string]entities.Category
}

func NewStore() *Store {
	return &Store{
		competitions: make(map[string]entities.Competition),
		categories:   make(map[string]entities.Category),
	}
}

func (s *Store) CreateCompetition(_ context.Context, competition entities.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions[competition.CompetitionID] = competition
	return nil
}

func (s *Store) GetCompetition(_ context.Context, competitionID string) (entities.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	competition, ok := s.competitions[strings.TrimSpace(competitionID)]
	if !ok {
		return entities.Competition{}, domainerrors.ErrCompetitionNotFound
	}
	return competition, nil
}

func (s *Store) UpdateCompetition(_ context.Context, competition entities.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.competitions[competition.CompetitionID]
	if !ok {
		return domainerrors.ErrCompetitionNotFound
	}
	competition.Status = current.Status
	competition.CreatedAt = current.CreatedAt
	s.competitions[competition.CompetitionID] = competition
	return nil
}

func (s *Store) TransitionCompetitionStatus(
	_ context.Context,
	competitionID string,
	from entities.CompetitionStatus,
	to entities.CompetitionStatus,
	now time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	competition, ok := s.competitions[strings.TrimSpace(competitionID)]
	if !ok || competition.Status != from {
		return false, nil
	}
	competition.Status = to
	competition.UpdatedAt = now
	s.competitions[competition.CompetitionID] = competition
	return true, nil
}

func (s *Store) DeleteCompetition(_ context.Context, competitionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	competitionID = strings.TrimSpace(competitionID)
	if _, ok := s.competitions[competitionID]; !ok {
		return domainerrors.ErrCompetitionNotFound
	}
	delete(s.competitions, competitionID)
	for id, category := range s.categories {
		if category.CompetitionID == competitionID {
			delete(s.categories, id)
		}
	}
	return nil
}

func (s *Store) ListCompetitions(_ context.Context, filter ports.CompetitionFilter) ([]entities.Competition, int, error) {
	s.mu.RLock()
	items := make([]entities.Competition, 0, len(s.competitions))
	for _, competition := range s.competitions {
		if filter.Status != "" && competition.Status != filter.Status {
			continue
		}
		items = append(items, competition)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CompetitionID > items[j].CompetitionID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	total := len(items)
	return paginate(items, filter.Limit, filter.Offset), total, nil
}

func (s *Store) CreateCategory(_ context.Context, category entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[category.CompetitionID]; !ok {
		return domainerrors.ErrCompetitionNotFound
	}
	s.categories[category.CategoryID] = category
	return nil
}

func (s *Store) GetCategory(_ context.Context, categoryID string) (entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[strings.TrimSpace(categoryID)]
	if !ok {
		return entities.Category{}, domainerrors.ErrCategoryNotFound
	}
	return category, nil
}

func (s *Store) UpdateCategory(_ context.Context, category entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.categories[category.CategoryID]
	if !ok {
		return domainerrors.ErrCategoryNotFound
	}
	category.CompetitionID = current.CompetitionID
	category.CreatedAt = current.CreatedAt
	s.categories[category.CategoryID] = category
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	categoryID = strings.TrimSpace(categoryID)
	if _, ok := s.categories[categoryID]; !ok {
		return domainerrors.ErrCategoryNotFound
	}
	delete(s.categories, categoryID)
	return nil
}

func (s *Store) ListCategories(_ context.Context, competitionID string) ([]entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	competitionID = strings.TrimSpace(competitionID)
	items := make([]entities.Category, 0)
	for _, category := range s.categories {
		if category.CompetitionID == competitionID {
			items = append(items, category)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].Name < items[j].Name
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func paginate[T any](items []T, limit int, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
