package entities

import (
	"strings"
	"time"

	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
)

const PhotoStatusApproved = "approved"

type Vote struct {
	VoteID    string
	UserID    string
	PhotoID   string
	CreatedAt time.Time
}

// Photo is the voting view of a submitted photo.
type Photo struct {
	PhotoID       string
	UserID        string
	CompetitionID string
	CategoryID    string
	Title         string
	Description   string
	FileURL       string
	Status        string
	CreatedAt     time.Time
}

// CheckVoteEligibility is the single definition of who may vote on a photo.
// It returns the first rule the voter fails, in the order castVote reports
// them; nil means the vote is allowed.
func CheckVoteEligibility(photo Photo, voterID string, hasVoted bool) error {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return domainerrors.ErrUnauthenticated
	}
	if photo.Status != PhotoStatusApproved {
		return domainerrors.ErrPhotoNotApproved
	}
	if photo.UserID == voterID {
		return domainerrors.ErrCannotVoteOwnPhoto
	}
	if hasVoted {
		return domainerrors.ErrAlreadyVoted
	}
	return nil
}

func CanVote(photo Photo, voterID string, hasVoted bool) bool {
	return CheckVoteEligibility(photo, voterID, hasVoted) == nil
}

type VoteStatus struct {
	VoteCount    int
	UserHasVoted bool
	CanVote      bool
}

type PhotoWithVotes struct {
	Photo        Photo
	VoteCount    int
	UserHasVoted bool
	CanVote      bool
}

type CategoryVoteStats struct {
	CategoryID string
	Name       string
	VoteCount  int
	PhotoCount int
}

type VotingStats struct {
	CompetitionID string
	TotalVotes    int
	Categories    []CategoryVoteStats
}
