package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
	"photocontest/contexts/moderation-safety/moderation-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
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

func (r *Repository) GetPhoto(ctx context.Context, photoID string) (entities.Photo, error) {
	var row photoModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(photoID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Photo{}, domainerrors.ErrPhotoNotFound
		}
		return entities.Photo{}, r.logError("moderation_repo_get_photo_failed", err, "photo_id", photoID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ApprovePendingPhoto(ctx context.Context, photo entities.Photo) (bool, error) {
	return r.transitionPending(ctx, photo, map[string]any{
		"status":      string(entities.PhotoStatusApproved),
		"approved_by": photo.ApprovedBy,
		"approved_at": normalizeOptionalTime(photo.ApprovedAt),
		"updated_at":  photo.UpdatedAt.UTC(),
	})
}

func (r *Repository) RejectPendingPhoto(ctx context.Context, photo entities.Photo) (bool, error) {
	return r.transitionPending(ctx, photo, map[string]any{
		"status":           string(entities.PhotoStatusRejected),
		"rejected_by":      photo.RejectedBy,
		"rejected_at":      normalizeOptionalTime(photo.RejectedAt),
		"rejection_reason": photo.RejectionReason,
		"updated_at":       photo.UpdatedAt.UTC(),
	})
}

func (r *Repository) transitionPending(ctx context.Context, photo entities.Photo, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&photoModel{}).
		Where("id = ? AND status = ?", photo.PhotoID, string(entities.PhotoStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return false, r.logError("moderation_repo_transition_photo_failed", result.Error,
			"photo_id", photo.PhotoID,
			"target_status", string(photo.Status),
		)
	}
	return result.RowsAffected > 0, nil
}

// DeletePhoto relies on ON DELETE CASCADE for votes and reports.
func (r *Repository) DeletePhoto(ctx context.Context, photoID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", photoID).
		Delete(&photoModel{})
	if result.Error != nil {
		return false, r.logError("moderation_repo_delete_photo_failed", result.Error, "photo_id", photoID)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) CreateReport(ctx context.Context, report entities.Report) error {
	row := reportModelFromEntity(report)
	err := r.db.WithContext(ctx).Create(&row).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domainerrors.ErrAlreadyReported
	case isForeignKeyViolation(err):
		return domainerrors.ErrPhotoNotFound
	default:
		return r.logError("moderation_repo_create_report_failed", err,
			"report_id", report.ReportID,
			"photo_id", report.PhotoID,
		)
	}
}

func (r *Repository) GetReport(ctx context.Context, reportID string) (entities.Report, error) {
	var row reportModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(reportID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Report{}, domainerrors.ErrReportNotFound
		}
		return entities.Report{}, r.logError("moderation_repo_get_report_failed", err, "report_id", reportID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ResolvePendingReport(ctx context.Context, report entities.Report) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&reportModel{}).
		Where("id = ? AND status = ?", report.ReportID, string(entities.ReportStatusPending)).
		Updates(map[string]any{
			"status":      string(report.Status),
			"admin_notes": report.AdminNotes,
			"resolved_by": report.ResolvedBy,
			"resolved_at": normalizeOptionalTime(report.ResolvedAt),
			"updated_at":  report.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return false, r.logError("moderation_repo_resolve_report_failed", result.Error,
			"report_id", report.ReportID,
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListPendingPhotos(ctx context.Context, filter ports.PendingPhotoFilter) ([]entities.Photo, int, error) {
	scoped := func() *gorm.DB {
		tx := r.db.WithContext(ctx).
			Model(&photoModel{}).
			Where("status = ?", string(entities.PhotoStatusPending))
		if filter.CompetitionID != "" {
			tx = tx.Where("competition_id = ?", filter.CompetitionID)
		}
		if filter.CategoryID != "" {
			tx = tx.Where("category_id = ?", filter.CategoryID)
		}
		return tx
	}
	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, r.logError("moderation_repo_count_pending_failed", err)
	}
	var rows []photoModel
	if err := scoped().
		Order("created_at ASC").
		Order("id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("moderation_repo_list_pending_failed", err)
	}
	items := make([]entities.Photo, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) ListReports(ctx context.Context, filter ports.ReportFilter) ([]entities.ReportView, int, error) {
	scoped := func() *gorm.DB {
		tx := r.db.WithContext(ctx).
			Table("reports AS r").
			Joins("JOIN photos AS p ON p.id = r.photo_id")
		if filter.Status != "" {
			tx = tx.Where("r.status = ?", string(filter.Status))
		}
		if filter.CompetitionID != "" {
			tx = tx.Where("p.competition_id = ?", filter.CompetitionID)
		}
		if filter.PhotoID != "" {
			tx = tx.Where("r.photo_id = ?", filter.PhotoID)
		}
		return tx
	}
	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, r.logError("moderation_repo_count_reports_failed", err)
	}
	var rows []reportViewRow
	if err := scoped().
		Select("r.*, p.title AS photo_title, p.status AS photo_status, p.competition_id AS competition_id").
		Order("r.created_at DESC").
		Order("r.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, r.logError("moderation_repo_list_reports_failed", err)
	}
	items := make([]entities.ReportView, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.ReportView{
			Report:        row.reportModel.toEntity(),
			PhotoTitle:    row.PhotoTitle,
			PhotoStatus:   entities.PhotoStatus(row.PhotoStatus),
			CompetitionID: row.CompetitionID,
		})
	}
	return items, int(total), nil
}

// ModerationStats groups photos and reports by status in parallel.
func (r *Repository) ModerationStats(ctx context.Context) (entities.ModerationStats, error) {
	var photoRows, reportRows []statusCountRow
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return r.db.WithContext(groupCtx).
			Model(&photoModel{}).
			Select("status, COUNT(*) AS total").
			Group("status").
			Scan(&photoRows).Error
	})
	group.Go(func() error {
		return r.db.WithContext(groupCtx).
			Model(&reportModel{}).
			Select("status, COUNT(*) AS total").
			Group("status").
			Scan(&reportRows).Error
	})
	if err := group.Wait(); err != nil {
		return entities.ModerationStats{}, r.logError("moderation_repo_stats_failed", err)
	}

	var stats entities.ModerationStats
	for _, row := range photoRows {
		count := int(row.Total)
		switch entities.PhotoStatus(row.Status) {
		case entities.PhotoStatusPending:
			stats.Photos.Pending = count
		case entities.PhotoStatusApproved:
			stats.Photos.Approved = count
		case entities.PhotoStatusRejected:
			stats.Photos.Rejected = count
		}
		stats.Photos.Total += count
	}
	for _, row := range reportRows {
		count := int(row.Total)
		switch entities.ReportStatus(row.Status) {
		case entities.ReportStatusPending:
			stats.Reports.Pending = count
		case entities.ReportStatusResolved:
			stats.Reports.Resolved = count
		case entities.ReportStatusDismissed:
			stats.Reports.Dismissed = count
		}
		stats.Reports.Total += count
	}
	return stats, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := []any{
		"event", event,
		"module", "moderation-safety/moderation-service",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("moderation repository operation failed", fields...)
	return err
}

type photoModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	UserID          string     `gorm:"column:user_id"`
	CompetitionID   string     `gorm:"column:competition_id"`
	CategoryID      string     `gorm:"column:category_id"`
	Title           string     `gorm:"column:title"`
	FileURL         string     `gorm:"column:file_url"`
	FilePath        string     `gorm:"column:file_path"`
	Status          string     `gorm:"column:status"`
	ApprovedBy      *string    `gorm:"column:approved_by"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	RejectedBy      *string    `gorm:"column:rejected_by"`
	RejectedAt      *time.Time `gorm:"column:rejected_at"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (photoModel) TableName() string {
	return "photos"
}

func (m photoModel) toEntity() entities.Photo {
	return entities.Photo{
		PhotoID:         m.ID,
		UserID:          m.UserID,
		CompetitionID:   m.CompetitionID,
		CategoryID:      m.CategoryID,
		Title:           m.Title,
		FileURL:         m.FileURL,
		FilePath:        m.FilePath,
		Status:          entities.PhotoStatus(m.Status),
		ApprovedBy:      derefString(m.ApprovedBy),
		ApprovedAt:      normalizeOptionalTime(m.ApprovedAt),
		RejectedBy:      derefString(m.RejectedBy),
		RejectedAt:      normalizeOptionalTime(m.RejectedAt),
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type reportModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	PhotoID     string     `gorm:"column:photo_id"`
	ReporterID  string     `gorm:"column:reporter_id"`
	Reason      string     `gorm:"column:reason"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status"`
	AdminNotes  string     `gorm:"column:admin_notes"`
	ResolvedBy  *string    `gorm:"column:resolved_by"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (reportModel) TableName() string {
	return "reports"
}

func reportModelFromEntity(item entities.Report) reportModel {
	return reportModel{
		ID:          strings.TrimSpace(item.ReportID),
		PhotoID:     strings.TrimSpace(item.PhotoID),
		ReporterID:  strings.TrimSpace(item.ReporterID),
		Reason:      string(item.Reason),
		Description: item.Description,
		Status:      string(item.Status),
		AdminNotes:  item.AdminNotes,
		ResolvedBy:  optionalString(item.ResolvedBy),
		ResolvedAt:  normalizeOptionalTime(item.ResolvedAt),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m reportModel) toEntity() entities.Report {
	return entities.Report{
		ReportID:    m.ID,
		PhotoID:     m.PhotoID,
		ReporterID:  m.ReporterID,
		Reason:      entities.ReportReason(m.Reason),
		Description: m.Description,
		Status:      entities.ReportStatus(m.Status),
		AdminNotes:  m.AdminNotes,
		ResolvedBy:  derefString(m.ResolvedBy),
		ResolvedAt:  normalizeOptionalTime(m.ResolvedAt),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type reportViewRow struct {
	reportModel
	PhotoTitle    string `gorm:"column:photo_title"`
	PhotoStatus   string `gorm:"column:photo_status"`
	CompetitionID string `gorm:"column:competition_id"`
}

type statusCountRow struct {
	Status string `gorm:"column:status"`
	Total  int64  `gorm:"column:total"`
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
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

var _ ports.Repository = (*Repository)(nil)
