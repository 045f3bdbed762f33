package ports

import (
	"context"
	"time"

	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	contractsv1 "photocontest/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

type PhotoListFilter struct {
	CompetitionID string
	CategoryID    string
	Sort          entities.SortField
	Order         entities.SortOrder
	Limit         int
	Offset        int
}

// PhotoVotes is a listing row before per-viewer flags are applied.
type PhotoVotes struct {
	Photo     entities.Photo
	VoteCount int
}

type VoteRepository interface {
	// InsertVote fails with ErrAlreadyVoted when the (user, photo) pair exists
	// and with ErrPhotoNotFound when the photo vanished before the insert.
	InsertVote(ctx context.Context, vote entities.Vote) error
	CountVotes(ctx context.Context, photoID string) (int, error)
	HasVoted(ctx context.Context, userID string, photoID string) (bool, error)
	GetPhoto(ctx context.Context, photoID string) (entities.Photo, error)
	CompetitionExists(ctx context.Context, competitionID string) (bool, error)
	// ListApprovedPhotosWithVotes returns one page of approved photos of a
	// competition in the filter's order plus the total number of matches.
	ListApprovedPhotosWithVotes(ctx context.Context, filter PhotoListFilter) ([]PhotoVotes, int, error)
	// VotedPhotoIDs reports which of photoIDs the user has voted for.
	VotedPhotoIDs(ctx context.Context, userID string, photoIDs []string) (map[string]bool, error)
	// VotingStats counts votes per category of a competition. Categories with
	// no approved photos or no votes are included with zero counts.
	VotingStats(ctx context.Context, competitionID string) ([]entities.CategoryVoteStats, error)
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
