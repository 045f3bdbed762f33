package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "photocontest/contexts/photo-contest/competition-service/domain/errors"
)

type CompetitionStatus string

const (
	CompetitionStatusDraft  CompetitionStatus = "draft"
	CompetitionStatusOpen   CompetitionStatus = "open"
	CompetitionStatusVoting CompetitionStatus = "voting"
	CompetitionStatusClosed CompetitionStatus = "closed"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

var statusOrder = map[CompetitionStatus]int{
	CompetitionStatusDraft:  0,
	CompetitionStatusOpen:   1,
	CompetitionStatusVoting: 2,
	CompetitionStatusClosed: 3,
}

func ParseCompetitionStatus(raw string) (CompetitionStatus, bool) {
	status := CompetitionStatus(strings.TrimSpace(strings.ToLower(raw)))
	_, ok := statusOrder[status]
	return status, ok
}

// CanTransitionTo allows forward moves only; closed is terminal.
func (s CompetitionStatus) CanTransitionTo(next CompetitionStatus) bool {
	current, ok := statusOrder[s]
	if !ok {
		return false
	}
	target, ok := statusOrder[next]
	if !ok {
		return false
	}
	return target > current
}

func (s CompetitionStatus) AcceptsSubmissions() bool {
	return s == CompetitionStatusOpen
}

type Competition struct {
	CompetitionID    string
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	VotingStartDate  *time.Time
	VotingEndDate    *time.Time
	Status           CompetitionStatus
	MaxPhotosPerUser int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c Competition) Validate() error {
	title := strings.TrimSpace(c.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return domainerrors.ErrInvalidTitle
	}
	if utf8.RuneCountInString(c.Description) > MaxDescriptionLength {
		return domainerrors.ErrDescriptionTooLong
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() || !c.EndDate.After(c.StartDate) {
		return domainerrors.ErrInvalidSchedule
	}
	if (c.VotingStartDate == nil) != (c.VotingEndDate == nil) {
		return domainerrors.ErrInvalidVotingWindow
	}
	if c.VotingStartDate != nil && !c.VotingEndDate.After(*c.VotingStartDate) {
		return domainerrors.ErrInvalidVotingWindow
	}
	if c.MaxPhotosPerUser < 1 {
		return domainerrors.ErrInvalidPhotoLimit
	}
	return nil
}

func (c Competition) IsClosed() bool {
	return c.Status == CompetitionStatusClosed
}
