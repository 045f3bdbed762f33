package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
)

const MaxReasonLength = 500

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
)

// Photo is the moderation view of a submission.
type Photo struct {
	PhotoID         string
	UserID          string
	CompetitionID   string
	CategoryID      string
	Title           string
	FileURL         string
	FilePath        string
	Status          PhotoStatus
	ApprovedBy      string
	ApprovedAt      *time.Time
	RejectedBy      string
	RejectedAt      *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Approve applies the pending to approved transition.
func (p *Photo) Approve(adminID string, now time.Time) error {
	if p.Status != PhotoStatusPending {
		return domainerrors.ErrPhotoAlreadyModerated
	}
	at := now.UTC()
	p.Status = PhotoStatusApproved
	p.ApprovedBy = adminID
	p.ApprovedAt = &at
	p.UpdatedAt = at
	return nil
}

// Reject applies the pending to rejected transition. The reason must already
// be normalized with NormalizeRejectionReason.
func (p *Photo) Reject(adminID string, reason string, now time.Time) error {
	if p.Status != PhotoStatusPending {
		return domainerrors.ErrPhotoAlreadyModerated
	}
	at := now.UTC()
	p.Status = PhotoStatusRejected
	p.RejectedBy = adminID
	p.RejectedAt = &at
	p.RejectionReason = reason
	p.UpdatedAt = at
	return nil
}

func NormalizeRejectionReason(raw string) (string, error) {
	reason := strings.TrimSpace(raw)
	if reason == "" {
		return "", domainerrors.ErrRejectionReasonRequired
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return "", domainerrors.ErrReasonTooLong
	}
	return reason, nil
}

type PhotoAction string

const (
	PhotoActionApprove PhotoAction = "approve"
	PhotoActionReject  PhotoAction = "reject"
	PhotoActionDelete  PhotoAction = "delete"
)

func ParsePhotoAction(raw string) (PhotoAction, bool) {
	action := PhotoAction(strings.TrimSpace(strings.ToLower(raw)))
	switch action {
	case PhotoActionApprove, PhotoActionReject, PhotoActionDelete:
		return action, true
	default:
		return "", false
	}
}

// PhotoStatusAfter is the status a photo holds once action succeeded; delete
// leaves no status.
func PhotoStatusAfter(action PhotoAction) PhotoStatus {
	switch action {
	case PhotoActionApprove:
		return PhotoStatusApproved
	case PhotoActionReject:
		return PhotoStatusRejected
	default:
		return ""
	}
}
