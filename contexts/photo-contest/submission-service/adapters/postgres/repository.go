package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"photocontest/contexts/photo-contest/submission-service/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
	"photocontest/contexts/photo-contest/submission-service/ports"

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

// CreatePhoto claims a quota slot by inserting into the unique
// (user_id, category_id, quota_slot) index. Losing a slot to a concurrent
// upload surfaces as a unique violation and the next free slot is tried;
// each lost race means another photo landed, so the loop is bounded by limit.
func (r *Repository) CreatePhoto(ctx context.Context, photo entities.Photo, limit int) (entities.Photo, error) {
	for attempt := 0; attempt <= limit; attempt++ {
		var used []int
		if err := r.db.WithContext(ctx).
			Model(&photoModel{}).
			Where("user_id = ? AND category_id = ?", photo.UserID, photo.CategoryID).
			Pluck("quota_slot", &used).Error; err != nil {
			return entities.Photo{}, r.logError("submission_repo_quota_slots_failed", err,
				"user_id", photo.UserID,
				"category_id", photo.CategoryID,
			)
		}
		slot, ok := entities.FirstFreeSlot(used, limit)
		if !ok {
			return entities.Photo{}, domainerrors.SubmissionLimitError{Limit: limit}
		}
		photo.QuotaSlot = slot

		row, err := photoModelFromEntity(photo)
		if err != nil {
			return entities.Photo{}, err
		}
		err = r.db.WithContext(ctx).Create(&row).Error
		if err == nil {
			return photo, nil
		}
		if isUniqueViolation(err) {
			r.logger.Debug("quota slot taken concurrently",
				"event", "submission_repo_quota_slot_conflict",
				"module", "photo-contest/submission-service",
				"layer", "adapter",
				"user_id", photo.UserID,
				"category_id", photo.CategoryID,
				"quota_slot", slot,
				"attempt", attempt,
			)
			continue
		}
		if isForeignKeyViolation(err) {
			return entities.Photo{}, domainerrors.ErrCategoryNotFound
		}
		return entities.Photo{}, r.logError("submission_repo_create_photo_failed", err,
			"photo_id", photo.PhotoID,
			"user_id", photo.UserID,
			"category_id", photo.CategoryID,
		)
	}
	return entities.Photo{}, domainerrors.SubmissionLimitError{Limit: limit}
}

func (r *Repository) GetPhoto(ctx context.Context, photoID string) (entities.Photo, error) {
	var row photoModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(photoID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Photo{}, domainerrors.ErrPhotoNotFound
		}
		return entities.Photo{}, r.logError("submission_repo_get_photo_failed", err,
			"photo_id", strings.TrimSpace(photoID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) CountUserPhotosInCategory(ctx context.Context, userID string, categoryID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&photoModel{}).
		Where("user_id = ? AND category_id = ?", strings.TrimSpace(userID), strings.TrimSpace(categoryID)).
		Count(&count).Error; err != nil {
		return 0, r.logError("submission_repo_count_user_photos_failed", err,
			"user_id", strings.TrimSpace(userID),
			"category_id", strings.TrimSpace(categoryID),
		)
	}
	return int(count), nil
}

func (r *Repository) UpdatePendingPhoto(ctx context.Context, photo entities.Photo) (bool, error) {
	camera, err := encodeCamera(photo.Camera)
	if err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).
		Model(&photoModel{}).
		Where("id = ? AND user_id = ? AND status = ?", photo.PhotoID, photo.UserID, string(entities.PhotoStatusPending)).
		Updates(map[string]any{
			"title":       photo.Title,
			"description": photo.Description,
			"location":    photo.Location,
			"date_taken":  normalizeOptionalTime(photo.DateTaken),
			"camera":      camera,
			"updated_at":  photo.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return false, r.logError("submission_repo_update_photo_failed", result.Error,
			"photo_id", photo.PhotoID,
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeletePendingPhoto(ctx context.Context, photoID string, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", photoID, userID, string(entities.PhotoStatusPending)).
		Delete(&photoModel{})
	if result.Error != nil {
		return false, r.logError("submission_repo_delete_photo_failed", result.Error,
			"photo_id", photoID,
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListUserPhotos(ctx context.Context, filter ports.UserPhotoFilter) ([]entities.Photo, int, error) {
	scoped := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&photoModel{}).Where("user_id = ?", filter.UserID)
		if filter.CompetitionID != "" {
			tx = tx.Where("competition_id = ?", filter.CompetitionID)
		}
		if filter.Status != "" {
			tx = tx.Where("status = ?", string(filter.Status))
		}
		return tx
	}
	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, r.logError("submission_repo_count_user_list_failed", err, "user_id", filter.UserID)
	}
	var rows []photoModel
	if err := scoped().
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("submission_repo_list_user_photos_failed", err, "user_id", filter.UserID)
	}
	items := make([]entities.Photo, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) CountUserPhotosByCategory(ctx context.Context, userID string, competitionID string) ([]ports.CategoryCount, error) {
	tx := r.db.WithContext(ctx).
		Table("categories AS c").
		Select("c.id AS category_id, c.competition_id, c.name, c.max_photos_per_user, co.status AS competition_status, COUNT(p.id) AS photo_count").
		Joins("JOIN competitions AS co ON co.id = c.competition_id")
	if competitionID != "" {
		tx = tx.Joins("LEFT JOIN photos AS p ON p.category_id = c.id AND p.user_id = ?", userID).
			Where("c.competition_id = ?", competitionID)
	} else {
		tx = tx.Joins("JOIN photos AS p ON p.category_id = c.id AND p.user_id = ?", userID)
	}
	var rows []categoryCountRow
	if err := tx.
		Group("c.id, c.competition_id, c.name, c.max_photos_per_user, co.status").
		Order("c.name ASC").
		Order("c.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, r.logError("submission_repo_count_by_category_failed", err,
			"user_id", userID,
			"competition_id", competitionID,
		)
	}
	items := make([]ports.CategoryCount, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.CategoryCount{
			Category: row.projection(),
			Count:    int(row.PhotoCount),
		})
	}
	return items, nil
}

func (r *Repository) GetCategory(ctx context.Context, categoryID string) (ports.CategoryProjection, error) {
	var rows []categoryCountRow
	err := r.db.WithContext(ctx).
		Table("categories AS c").
		Select("c.id AS category_id, c.competition_id, c.name, c.max_photos_per_user, co.status AS competition_status").
		Joins("JOIN competitions AS co ON co.id = c.competition_id").
		Where("c.id = ?", strings.TrimSpace(categoryID)).
		Limit(1).
		Scan(&rows).
		Error
	if err != nil {
		return ports.CategoryProjection{}, r.logError("submission_repo_get_category_failed", err,
			"category_id", strings.TrimSpace(categoryID),
		)
	}
	if len(rows) == 0 {
		return ports.CategoryProjection{}, domainerrors.ErrCategoryNotFound
	}
	return rows[0].projection(), nil
}

func (r *Repository) CompetitionExists(ctx context.Context, competitionID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("competitions").
		Where("id = ?", strings.TrimSpace(competitionID)).
		Count(&count).Error; err != nil {
		return false, r.logError("submission_repo_competition_exists_failed", err,
			"competition_id", strings.TrimSpace(competitionID),
		)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := []any{
		"event", event,
		"module", "photo-contest/submission-service",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("submission repository operation failed", fields...)
	return err
}

type photoModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	UserID          string     `gorm:"column:user_id"`
	CompetitionID   string     `gorm:"column:competition_id"`
	CategoryID      string     `gorm:"column:category_id"`
	Title           string     `gorm:"column:title"`
	Description     string     `gorm:"column:description"`
	FileURL         string     `gorm:"column:file_url"`
	FilePath        string     `gorm:"column:file_path"`
	FileSize        int64      `gorm:"column:file_size"`
	MimeType        string     `gorm:"column:mime_type"`
	DateTaken       *time.Time `gorm:"column:date_taken"`
	Location        string     `gorm:"column:location"`
	Camera          *string    `gorm:"column:camera"`
	Status          string     `gorm:"column:status"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	QuotaSlot       int        `gorm:"column:quota_slot"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (photoModel) TableName() string {
	return "photos"
}

func photoModelFromEntity(item entities.Photo) (photoModel, error) {
	camera, err := encodeCamera(item.Camera)
	if err != nil {
		return photoModel{}, err
	}
	return photoModel{
		ID:              strings.TrimSpace(item.PhotoID),
		UserID:          strings.TrimSpace(item.UserID),
		CompetitionID:   strings.TrimSpace(item.CompetitionID),
		CategoryID:      strings.TrimSpace(item.CategoryID),
		Title:           item.Title,
		Description:     item.Description,
		FileURL:         item.FileURL,
		FilePath:        item.FilePath,
		FileSize:        item.FileSize,
		MimeType:        item.MimeType,
		DateTaken:       normalizeOptionalTime(item.DateTaken),
		Location:        item.Location,
		Camera:          camera,
		Status:          string(item.Status),
		RejectionReason: item.RejectionReason,
		QuotaSlot:       item.QuotaSlot,
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}, nil
}

func (m photoModel) toEntity() entities.Photo {
	return entities.Photo{
		PhotoID:         m.ID,
		UserID:          m.UserID,
		CompetitionID:   m.CompetitionID,
		CategoryID:      m.CategoryID,
		Title:           m.Title,
		Description:     m.Description,
		FileURL:         m.FileURL,
		FilePath:        m.FilePath,
		FileSize:        m.FileSize,
		MimeType:        m.MimeType,
		DateTaken:       normalizeOptionalTime(m.DateTaken),
		Location:        m.Location,
		Camera:          decodeCamera(m.Camera),
		Status:          entities.PhotoStatus(m.Status),
		RejectionReason: m.RejectionReason,
		QuotaSlot:       m.QuotaSlot,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type categoryCountRow struct {
	CategoryID        string `gorm:"column:category_id"`
	CompetitionID     string `gorm:"column:competition_id"`
	Name              string `gorm:"column:name"`
	MaxPhotosPerUser  int    `gorm:"column:max_photos_per_user"`
	CompetitionStatus string `gorm:"column:competition_status"`
	PhotoCount        int64  `gorm:"column:photo_count"`
}

func (r categoryCountRow) projection() ports.CategoryProjection {
	return ports.CategoryProjection{
		CategoryID:        r.CategoryID,
		CompetitionID:     r.CompetitionID,
		Name:              r.Name,
		MaxPhotosPerUser:  r.MaxPhotosPerUser,
		CompetitionStatus: r.CompetitionStatus,
	}
}

func encodeCamera(camera *entities.CameraInfo) (*string, error) {
	if camera == nil || camera.IsZero() {
		return nil, nil
	}
	raw, err := json.Marshal(camera)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	return &encoded, nil
}

func decodeCamera(raw *string) *entities.CameraInfo {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	var camera entities.CameraInfo
	if err := json.Unmarshal([]byte(*raw), &camera); err != nil {
		return nil
	}
	return &camera
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

var _ ports.PhotoRepository = (*Repository)(nil)
var _ ports.CatalogReader = (*Repository)(nil)
