package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
)

const (
	MaxReportDescriptionLength = 500
	MaxAdminNotesLength        = 1000
)

type ReportReason string

const (
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonOffensive     ReportReason = "offensive"
	ReportReasonCopyright     ReportReason = "copyright"
	ReportReasonOther         ReportReason = "other"
)

func ParseReportReason(raw string) (ReportReason, error) {
	reason := ReportReason(strings.TrimSpace(strings.ToLower(raw)))
	switch reason {
	case ReportReasonInappropriate, ReportReasonSpam, ReportReasonOffensive, ReportReasonCopyright, ReportReasonOther:
		return reason, nil
	default:
		return "", domainerrors.ErrInvalidReportReason
	}
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

func ParseReportStatus(raw string) (ReportStatus, error) {
	status := ReportStatus(strings.TrimSpace(strings.ToLower(raw)))
	switch status {
	case ReportStatusPending, ReportStatusResolved, ReportStatusDismissed:
		return status, nil
	default:
		return "", domainerrors.ErrInvalidReportStatus
	}
}

// ParseResolution accepts only the two closing statuses.
func ParseResolution(raw string) (ReportStatus, error) {
	status := ReportStatus(strings.TrimSpace(strings.ToLower(raw)))
	switch status {
	case ReportStatusResolved, ReportStatusDismissed:
		return status, nil
	default:
		return "", domainerrors.ErrInvalidResolution
	}
}

type Report struct {
	ReportID    string
	PhotoID     string
	ReporterID  string
	Reason      ReportReason
	Description string
	Status      ReportStatus
	AdminNotes  string
	ResolvedBy  string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewReport(reportID string, photoID string, reporterID string, rawReason string, description string, now time.Time) (Report, error) {
	reason, err := ParseReportReason(rawReason)
	if err != nil {
		return Report{}, err
	}
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxReportDescriptionLength {
		return Report{}, domainerrors.ErrDescriptionTooLong
	}
	at := now.UTC()
	return Report{
		ReportID:    reportID,
		PhotoID:     photoID,
		ReporterID:  reporterID,
		Reason:      reason,
		Description: description,
		Status:      ReportStatusPending,
		CreatedAt:   at,
		UpdatedAt:   at,
	}, nil
}

// Resolve closes a pending report.
func (r *Report) Resolve(status ReportStatus, adminID string, notes string, now time.Time) error {
	if r.Status != ReportStatusPending {
		return domainerrors.ErrReportAlreadyResolved
	}
	at := now.UTC()
	r.Status = status
	r.AdminNotes = notes
	r.ResolvedBy = adminID
	r.ResolvedAt = &at
	r.UpdatedAt = at
	return nil
}

// ReportView is a report joined with the reported photo.
type ReportView struct {
	Report        Report
	PhotoTitle    string
	PhotoStatus   PhotoStatus
	CompetitionID string
}

type PhotoStatusCounts struct {
	Pending  int
	Approved int
	Rejected int
	Total    int
}

type ReportStatusCounts struct {
	Pending   int
	Resolved  int
	Dismissed int
	Total     int
}

type ModerationStats struct {
	Photos  PhotoStatusCounts
	Reports ReportStatusCounts
}
