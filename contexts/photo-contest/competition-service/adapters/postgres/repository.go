package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"photocontest/contexts/photo-contest/competition-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/competition-service/domain/errors"
	"photocontest/contexts/photo-contest/competition-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCompetition(ctx context.Context, competition entities.Competition) error {
	row := competitionModelFromEntity(competition)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("competition_repo_create_failed", err,
			"competition_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) GetCompetition(ctx context.Context, competitionID string) (entities.Competition, error) {
	var row competitionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(competitionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Competition{}, domainerrors.ErrCompetitionNotFound
		}
		return entities.Competition{}, r.logError("competition_repo_get_failed", err,
			"competition_id", strings.TrimSpace(competitionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateCompetition(ctx context.Context, competition entities.Competition) error {
	row := competitionModelFromEntity(competition)
	result := r.db.WithContext(ctx).
		Model(&competitionModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"title":               row.Title,
			"description":         row.Description,
			"start_date":          row.StartDate,
			"end_date":            row.EndDate,
			"voting_start_date":   row.VotingStartDate,
			"voting_end_date":     row.VotingEndDate,
			"max_photos_per_user": row.MaxPhotosPerUser,
			"updated_at":          row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("competition_repo_update_failed", result.Error,
			"competition_id", row.ID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCompetitionNotFound
	}
	return nil
}

func (r *Repository) TransitionCompetitionStatus(
	ctx context.Context,
	competitionID string,
	from entities.CompetitionStatus,
	to entities.CompetitionStatus,
	now time.Time,
) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&competitionModel{}).
		Where("id = ? AND status = ?", strings.TrimSpace(competitionID), string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return false, r.logError("competition_repo_transition_failed", result.Error,
			"competition_id", strings.TrimSpace(competitionID),
			"from", string(from),
			"to", string(to),
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteCompetition(ctx context.Context, competitionID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(competitionID)).
		Delete(&competitionModel{})
	if result.Error != nil {
		return r.logError("competition_repo_delete_failed", result.Error,
			"competition_id", strings.TrimSpace(competitionID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCompetitionNotFound
	}
	return nil
}

func (r *Repository) ListCompetitions(ctx context.Context, filter ports.CompetitionFilter) ([]entities.Competition, int, error) {
	scoped := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&competitionModel{})
		if filter.Status != "" {
			tx = tx.Where("status = ?", string(filter.Status))
		}
		return tx
	}
	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, r.logError("competition_repo_count_failed", err)
	}
	var rows []competitionModel
	if err := scoped().
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("competition_repo_list_failed", err)
	}
	items := make([]entities.Competition, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) CreateCategory(ctx context.Context, category entities.Category) error {
	row := categoryModelFromEntity(category)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domainerrors.ErrCompetitionNotFound
		}
		return r.logError("competition_repo_create_category_failed", err,
			"competition_id", row.CompetitionID,
			"category_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, categoryID string) (entities.Category, error) {
	var row categoryModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(categoryID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Category{}, domainerrors.ErrCategoryNotFound
		}
		return entities.Category{}, r.logError("competition_repo_get_category_failed", err,
			"category_id", strings.TrimSpace(categoryID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category entities.Category) error {
	result := r.db.WithContext(ctx).
		Model(&categoryModel{}).
		Where("id = ?", strings.TrimSpace(category.CategoryID)).
		Updates(map[string]any{
			"name":                strings.TrimSpace(category.Name),
			"description":         strings.TrimSpace(category.Description),
			"max_photos_per_user": category.MaxPhotosPerUser,
			"updated_at":          category.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("competition_repo_update_category_failed", result.Error,
			"category_id", strings.TrimSpace(category.CategoryID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, categoryID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(categoryID)).
		Delete(&categoryModel{})
	if result.Error != nil {
		return r.logError("competition_repo_delete_category_failed", result.Error,
			"category_id", strings.TrimSpace(categoryID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context, competitionID string) ([]entities.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).
		Where("competition_id = ?", strings.TrimSpace(competitionID)).
		Order("created_at ASC").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("competition_repo_list_categories_failed", err,
			"competition_id", strings.TrimSpace(competitionID),
		)
	}
	items := make([]entities.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := []any{
		"event", event,
		"module", "photo-contest/competition-service",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("competition repository operation failed", fields...)
	return err
}

type competitionModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	Title            string     `gorm:"column:title"`
	Description      string     `gorm:"column:description"`
	StartDate        time.Time  `gorm:"column:start_date"`
	EndDate          time.Time  `gorm:"column:end_date"`
	VotingStartDate  *time.Time `gorm:"column:voting_start_date"`
	VotingEndDate    *time.Time `gorm:"column:voting_end_date"`
	Status           string     `gorm:"column:status"`
	MaxPhotosPerUser int        `gorm:"column:max_photos_per_user"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (competitionModel) TableName() string {
	return "competitions"
}

func competitionModelFromEntity(item entities.Competition) competitionModel {
	return competitionModel{
		ID:               strings.TrimSpace(item.CompetitionID),
		Title:            strings.TrimSpace(item.Title),
		Description:      strings.TrimSpace(item.Description),
		StartDate:        item.StartDate.UTC(),
		EndDate:          item.EndDate.UTC(),
		VotingStartDate:  normalizeOptionalTime(item.VotingStartDate),
		VotingEndDate:    normalizeOptionalTime(item.VotingEndDate),
		Status:           string(item.Status),
		MaxPhotosPerUser: item.MaxPhotosPerUser,
		CreatedAt:        item.CreatedAt.UTC(),
		UpdatedAt:        item.UpdatedAt.UTC(),
	}
}

func (m competitionModel) toEntity() entities.Competition {
	return entities.Competition{
		CompetitionID:    m.ID,
		Title:            m.Title,
		Description:      m.Description,
		StartDate:        m.StartDate.UTC(),
		EndDate:          m.EndDate.UTC(),
		VotingStartDate:  normalizeOptionalTime(m.VotingStartDate),
		VotingEndDate:    normalizeOptionalTime(m.VotingEndDate),
		Status:           entities.CompetitionStatus(m.Status),
		MaxPhotosPerUser: m.MaxPhotosPerUser,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type categoryModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	CompetitionID    string    `gorm:"column:competition_id"`
	Name             string    `gorm:"column:name"`
	Description      string    `gorm:"column:description"`
	MaxPhotosPerUser int       `gorm:"column:max_photos_per_user"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (categoryModel) TableName() string {
	return "categories"
}

func categoryModelFromEntity(item entities.Category) categoryModel {
	return categoryModel{
		ID:               strings.TrimSpace(item.CategoryID),
		CompetitionID:    strings.TrimSpace(item.CompetitionID),
		Name:             strings.TrimSpace(item.Name),
		Description:      strings.TrimSpace(item.Description),
		MaxPhotosPerUser: item.MaxPhotosPerUser,
		CreatedAt:        item.CreatedAt.UTC(),
		UpdatedAt:        item.UpdatedAt.UTC(),
	}
}

func (m categoryModel) toEntity() entities.Category {
	return entities.Category{
		CategoryID:       m.ID,
		CompetitionID:    m.CompetitionID,
		Name:             m.Name,
		Description:      m.Description,
		MaxPhotosPerUser: m.MaxPhotosPerUser,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

var _ ports.Repository = (*Repository)(nil)
