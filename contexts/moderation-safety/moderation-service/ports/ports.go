package ports

import (
	"context"
	"time"

	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	contractsv1 "photocontest/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

type PendingPhotoFilter struct {
	CompetitionID string
	CategoryID    string
	Limit         int
	Offset        int
}

type ReportFilter struct {
	Status        entities.ReportStatus
	CompetitionID string
	PhotoID       string
	Limit         int
	Offset        int
}

type Repository interface {
	GetPhoto(ctx context.Context, photoID string) (entities.Photo, error)
	// ApprovePendingPhoto and RejectPendingPhoto write only while the photo is
	// still pending. They report false when the guard did not match.
	ApprovePendingPhoto(ctx context.Context, photo entities.Photo) (bool, error)
	RejectPendingPhoto(ctx context.Context, photo entities.Photo) (bool, error)
	// DeletePhoto removes the photo with its votes and reports.
	DeletePhoto(ctx context.Context, photoID string) (bool, error)

	// CreateReport fails with ErrAlreadyReported when the reporter already
	// flagged the photo and with ErrPhotoNotFound when the photo is gone.
	CreateReport(ctx context.Context, report entities.Report) error
	GetReport(ctx context.Context, reportID string) (entities.Report, error)
	ResolvePendingReport(ctx context.Context, report entities.Report) (bool, error)

	ListPendingPhotos(ctx context.Context, filter PendingPhotoFilter) ([]entities.Photo, int, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]entities.ReportView, int, error)
	ModerationStats(ctx context.Context) (entities.ModerationStats, error)
}

type FileStorage interface {
	Delete(ctx context.Context, path string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
