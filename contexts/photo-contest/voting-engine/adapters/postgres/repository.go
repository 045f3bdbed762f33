package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
	"photocontest/contexts/photo-contest/voting-engine/ports"

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

func (r *Repository) InsertVote(ctx context.Context, vote entities.Vote) error {
	row := voteModel{
		ID:        strings.TrimSpace(vote.VoteID),
		UserID:    strings.TrimSpace(vote.UserID),
		PhotoID:   strings.TrimSpace(vote.PhotoID),
		CreatedAt: vote.CreatedAt.UTC(),
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domainerrors.ErrAlreadyVoted
	case isForeignKeyViolation(err):
		return domainerrors.ErrPhotoNotFound
	default:
		return r.logError("voting_repo_insert_vote_failed", err,
			"photo_id", row.PhotoID,
			"user_id", row.UserID,
		)
	}
}

func (r *Repository) CountVotes(ctx context.Context, photoID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("photo_id = ?", strings.TrimSpace(photoID)).
		Count(&count).Error; err != nil {
		return 0, r.logError("voting_repo_count_votes_failed", err, "photo_id", photoID)
	}
	return int(count), nil
}

func (r *Repository) HasVoted(ctx context.Context, userID string, photoID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("user_id = ? AND photo_id = ?", strings.TrimSpace(userID), strings.TrimSpace(photoID)).
		Count(&count).Error; err != nil {
		return false, r.logError("voting_repo_has_voted_failed", err,
			"photo_id", photoID,
			"user_id", userID,
		)
	}
	return count > 0, nil
}

func (r *Repository) GetPhoto(ctx context.Context, photoID string) (entities.Photo, error) {
	var row photoRow
	err := r.db.WithContext(ctx).
		Table("photos").
		Select(photoColumns("photos")).
		Where("id = ?", strings.TrimSpace(photoID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Photo{}, domainerrors.ErrPhotoNotFound
		}
		return entities.Photo{}, r.logError("voting_repo_get_photo_failed", err, "photo_id", photoID)
	}
	return row.toEntity(), nil
}

func (r *Repository) CompetitionExists(ctx context.Context, competitionID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("competitions").
		Where("id = ?", strings.TrimSpace(competitionID)).
		Count(&count).Error; err != nil {
		return false, r.logError("voting_repo_competition_exists_failed", err,
			"competition_id", competitionID,
		)
	}
	return count > 0, nil
}

// ListApprovedPhotosWithVotes runs the total count and the page query
// concurrently. Vote counts come from a left join so unvoted photos list
// with zero.
func (r *Repository) ListApprovedPhotosWithVotes(ctx context.Context, filter ports.PhotoListFilter) ([]ports.PhotoVotes, int, error) {
	scoped := func(db *gorm.DB) *gorm.DB {
		tx := db.Table("photos AS p").
			Where("p.competition_id = ? AND p.status = ?", filter.CompetitionID, entities.PhotoStatusApproved)
		if filter.CategoryID != "" {
			tx = tx.Where("p.category_id = ?", filter.CategoryID)
		}
		return tx
	}

	var (
		total int64
		rows  []photoRow
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return scoped(r.db.WithContext(groupCtx)).Count(&total).Error
	})
	group.Go(func() error {
		tx := scoped(r.db.WithContext(groupCtx)).
			Select(photoColumns("p") + ", COUNT(v.id) AS vote_count").
			Joins("LEFT JOIN votes AS v ON v.photo_id = p.id").
			Group("p.id, p.user_id, p.competition_id, p.category_id, p.title, p.description, p.file_url, p.status, p.created_at")
		for _, clause := range orderClauses(filter.Sort, filter.Order) {
			tx = tx.Order(clause)
		}
		return tx.Limit(filter.Limit).Offset(filter.Offset).Scan(&rows).Error
	})
	if err := group.Wait(); err != nil {
		return nil, 0, r.logError("voting_repo_list_photos_failed", err,
			"competition_id", filter.CompetitionID,
			"category_id", filter.CategoryID,
		)
	}

	items := make([]ports.PhotoVotes, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.PhotoVotes{Photo: row.toEntity(), VoteCount: int(row.VoteCount)})
	}
	return items, int(total), nil
}

func (r *Repository) VotedPhotoIDs(ctx context.Context, userID string, photoIDs []string) (map[string]bool, error) {
	voted := make(map[string]bool, len(photoIDs))
	if len(photoIDs) == 0 {
		return voted, nil
	}
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("user_id = ? AND photo_id IN ?", strings.TrimSpace(userID), photoIDs).
		Pluck("photo_id", &ids).Error; err != nil {
		return nil, r.logError("voting_repo_voted_photo_ids_failed", err, "user_id", userID)
	}
	for _, id := range ids {
		voted[id] = true
	}
	return voted, nil
}

func (r *Repository) VotingStats(ctx context.Context, competitionID string) ([]entities.CategoryVoteStats, error) {
	var rows []categoryStatsRow
	if err := r.db.WithContext(ctx).
		Table("categories AS c").
		Select("c.id AS category_id, c.name, COUNT(DISTINCT p.id) AS photo_count, COUNT(v.id) AS vote_count").
		Joins("LEFT JOIN photos AS p ON p.category_id = c.id AND p.status = ?", entities.PhotoStatusApproved).
		Joins("LEFT JOIN votes AS v ON v.photo_id = p.id").
		Where("c.competition_id = ?", strings.TrimSpace(competitionID)).
		Group("c.id, c.name").
		Order("c.name ASC").
		Order("c.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_stats_failed", err, "competition_id", competitionID)
	}
	items := make([]entities.CategoryVoteStats, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.CategoryVoteStats{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			VoteCount:  int(row.VoteCount),
			PhotoCount: int(row.PhotoCount),
		})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := []any{
		"event", event,
		"module", "photo-contest/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

// orderClauses mirrors entities.SortPhotos so both stores page identically.
func orderClauses(field entities.SortField, order entities.SortOrder) []string {
	direction := "DESC"
	if order == entities.OrderAsc {
		direction = "ASC"
	}
	clauses := make([]string, 0, 3)
	switch field {
	case entities.SortByVotes, "":
		clauses = append(clauses, "vote_count "+direction)
	case entities.SortByTitle:
		clauses = append(clauses, "p.title "+direction)
	}
	return append(clauses,
		fmt.Sprintf("p.created_at %s", direction),
		fmt.Sprintf("p.id %s", direction),
	)
}

func photoColumns(alias string) string {
	columns := []string{"id", "user_id", "competition_id", "category_id", "title", "description", "file_url", "status", "created_at"}
	qualified := make([]string, 0, len(columns))
	for _, column := range columns {
		qualified = append(qualified, alias+"."+column)
	}
	return strings.Join(qualified, ", ")
}

type voteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	PhotoID   string    `gorm:"column:photo_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

type photoRow struct {
	ID            string    `gorm:"column:id"`
	UserID        string    `gorm:"column:user_id"`
	CompetitionID string    `gorm:"column:competition_id"`
	CategoryID    string    `gorm:"column:category_id"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	FileURL       string    `gorm:"column:file_url"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	VoteCount     int64     `gorm:"column:vote_count"`
}

func (m photoRow) toEntity() entities.Photo {
	return entities.Photo{
		PhotoID:       m.ID,
		UserID:        m.UserID,
		CompetitionID: m.CompetitionID,
		CategoryID:    m.CategoryID,
		Title:         m.Title,
		Description:   m.Description,
		FileURL:       m.FileURL,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

type categoryStatsRow struct {
	CategoryID string `gorm:"column:category_id"`
	Name       string `gorm:"column:name"`
	PhotoCount int64  `gorm:"column:photo_count"`
	VoteCount  int64  `gorm:"column:vote_count"`
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

var _ ports.VoteRepository = (*Repository)(nil)
