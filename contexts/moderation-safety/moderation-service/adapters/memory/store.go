package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
	"photocontest/contexts/moderation-safety/moderation-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	photos  map[string]entities.Photo
	reports map[string]entities.Report
	// reporters mirrors the (photo_id, reporter_id) unique index.
	reporters map[string]string
	deleted   []string
}

func NewStore() *Store {
	return &Store{
		photos:    make(map[string]entities.Photo),
		reports:   make(map[string]entities.Report),
		reporters: make(map[string]string),
	}
}

func (s *Store) SetPhoto(photo entities.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[photo.PhotoID] = photo
}

// DeletedFiles lists paths passed to Delete, in call order.
func (s *Store) DeletedFiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.deleted...)
}

func (s *Store) GetPhoto(_ context.Context, photoID string) (entities.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photo, ok := s.photos[strings.TrimSpace(photoID)]
	if !ok {
		return entities.Photo{}, domainerrors.ErrPhotoNotFound
	}
	return photo, nil
}

func (s *Store) ApprovePendingPhoto(_ context.Context, photo entities.Photo) (bool, error) {
	return s.replacePending(photo), nil
}

func (s *Store) RejectPendingPhoto(_ context.Context, photo entities.Photo) (bool, error) {
	return s.replacePending(photo), nil
}

func (s *Store) replacePending(photo entities.Photo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.photos[photo.PhotoID]
	if !ok || current.Status != entities.PhotoStatusPending {
		return false
	}
	s.photos[photo.PhotoID] = photo
	return true
}

func (s *Store) DeletePhoto(_ context.Context, photoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photoID]; !ok {
		return false, nil
	}
	delete(s.photos, photoID)
	for reportID, report := range s.reports {
		if report.PhotoID == photoID {
			delete(s.reports, reportID)
			delete(s.reporters, reporterKey(report.PhotoID, report.ReporterID))
		}
	}
	return true, nil
}

func (s *Store) CreateReport(_ context.Context, report entities.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[report.PhotoID]; !ok {
		return domainerrors.ErrPhotoNotFound
	}
	key := reporterKey(report.PhotoID, report.ReporterID)
	if _, exists := s.reporters[key]; exists {
		return domainerrors.ErrAlreadyReported
	}
	s.reports[report.ReportID] = report
	s.reporters[key] = report.ReportID
	return nil
}

func (s *Store) GetReport(_ context.Context, reportID string) (entities.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[strings.TrimSpace(reportID)]
	if !ok {
		return entities.Report{}, domainerrors.ErrReportNotFound
	}
	return report, nil
}

func (s *Store) ResolvePendingReport(_ context.Context, report entities.Report) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.reports[report.ReportID]
	if !ok || current.Status != entities.ReportStatusPending {
		return false, nil
	}
	s.reports[report.ReportID] = report
	return true, nil
}

func (s *Store) ListPendingPhotos(_ context.Context, filter ports.PendingPhotoFilter) ([]entities.Photo, int, error) {
	s.mu.RLock()
	items := make([]entities.Photo, 0)
	for _, photo := range s.photos {
		if photo.Status != entities.PhotoStatusPending {
			continue
		}
		if filter.CompetitionID != "" && photo.CompetitionID != filter.CompetitionID {
			continue
		}
		if filter.CategoryID != "" && photo.CategoryID != filter.CategoryID {
			continue
		}
		items = append(items, photo)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].PhotoID < items[j].PhotoID
	})
	return paginate(items, filter.Limit, filter.Offset), len(items), nil
}

func (s *Store) ListReports(_ context.Context, filter ports.ReportFilter) ([]entities.ReportView, int, error) {
	s.mu.RLock()
	items := make([]entities.ReportView, 0)
	for _, report := range s.reports {
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		if filter.PhotoID != "" && report.PhotoID != filter.PhotoID {
			continue
		}
		photo := s.photos[report.PhotoID]
		if filter.CompetitionID != "" && photo.CompetitionID != filter.CompetitionID {
			continue
		}
		items = append(items, entities.ReportView{
			Report:        report,
			PhotoTitle:    photo.Title,
			PhotoStatus:   photo.Status,
			CompetitionID: photo.CompetitionID,
		})
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		left, right := items[i].Report, items[j].Report
		if !left.CreatedAt.Equal(right.CreatedAt) {
			return left.CreatedAt.After(right.CreatedAt)
		}
		return left.ReportID > right.ReportID
	})
	return paginate(items, filter.Limit, filter.Offset), len(items), nil
}

func (s *Store) ModerationStats(_ context.Context) (entities.ModerationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats entities.ModerationStats
	for _, photo := range s.photos {
		switch photo.Status {
		case entities.PhotoStatusPending:
			stats.Photos.Pending++
		case entities.PhotoStatusApproved:
			stats.Photos.Approved++
		case entities.PhotoStatusRejected:
			stats.Photos.Rejected++
		}
		stats.Photos.Total++
	}
	for _, report := range s.reports {
		switch report.Status {
		case entities.ReportStatusPending:
			stats.Reports.Pending++
		case entities.ReportStatusResolved:
			stats.Reports.Resolved++
		case entities.ReportStatusDismissed:
			stats.Reports.Dismissed++
		}
		stats.Reports.Total++
	}
	return stats, nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, path)
	return nil
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

func reporterKey(photoID string, reporterID string) string {
	return photoID + "\x00" + reporterID
}

var _ ports.Repository = (*Store)(nil)
var _ ports.FileStorage = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
