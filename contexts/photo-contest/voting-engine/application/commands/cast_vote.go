package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "photocontest/contexts/photo-contest/voting-engine/application"
	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
	"photocontest/contexts/photo-contest/voting-engine/ports"
	"photocontest/contracts/identity"
)

type CastVoteResult struct {
	Vote      entities.Vote
	VoteCount int
}

type CastVoteUseCase struct {
	Votes     ports.VoteRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// CastVote records one vote. The HasVoted lookup only shapes the error for
// the common case; the store's (user, photo) uniqueness decides concurrent
// duplicates.
func (uc CastVoteUseCase) CastVote(ctx context.Context, actor identity.Actor, photoID string) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !actor.Authenticated() {
		return CastVoteResult{}, domainerrors.ErrUnauthenticated
	}
	photoID = strings.TrimSpace(photoID)
	if photoID == "" {
		return CastVoteResult{}, domainerrors.ErrIdentifierRequired
	}

	photo, err := uc.Votes.GetPhoto(ctx, photoID)
	if err != nil {
		return CastVoteResult{}, err
	}
	hasVoted, err := uc.Votes.HasVoted(ctx, actor.UserID, photoID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if err := entities.CheckVoteEligibility(photo, actor.UserID, hasVoted); err != nil {
		logger.Debug("vote rejected",
			"event", "vote_cast_rejected",
			"module", application.ModuleName,
			"layer", "application",
			"photo_id", photoID,
			"user_id", actor.UserID,
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CastVoteResult{}, err
	}
	vote := entities.Vote{
		VoteID:    voteID,
		UserID:    actor.UserID,
		PhotoID:   photoID,
		CreatedAt: uc.now(),
	}
	if err := uc.Votes.InsertVote(ctx, vote); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) {
			logger.Info("concurrent duplicate vote rejected by store",
				"event", "vote_cast_duplicate",
				"module", application.ModuleName,
				"layer", "application",
				"photo_id", photoID,
				"user_id", actor.UserID,
			)
		}
		return CastVoteResult{}, err
	}

	count, err := uc.Votes.CountVotes(ctx, photoID)
	if err != nil {
		return CastVoteResult{}, err
	}
	logger.Info("vote cast",
		"event", "vote_cast",
		"module", application.ModuleName,
		"layer", "application",
		"photo_id", photoID,
		"competition_id", photo.CompetitionID,
		"user_id", actor.UserID,
		"vote_count", count,
	)
	uc.publish(ctx, logger, photo, vote, count)

	return CastVoteResult{Vote: vote, VoteCount: count}, nil
}

func (uc CastVoteUseCase) publish(ctx context.Context, logger *slog.Logger, photo entities.Photo, vote entities.Vote, count int) {
	if uc.Publisher == nil {
		return
	}
	envelope, err := newVotingEnvelope(vote.VoteID, EventVoteCast, photo.CompetitionID, vote.CreatedAt, map[string]any{
		"photo_id":       photo.PhotoID,
		"competition_id": photo.CompetitionID,
		"category_id":    photo.CategoryID,
		"vote_count":     count,
	})
	if err == nil {
		err = uc.Publisher.Publish(ctx, EventVoteCast, envelope)
	}
	if err != nil {
		logger.Warn("vote event publish failed",
			"event", "vote_cast_publish_failed",
			"module", application.ModuleName,
			"layer", "application",
			"photo_id", photo.PhotoID,
			"error", err.Error(),
		)
	}
}

func (uc CastVoteUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
