package queries

import (
	"context"
	"strings"

	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
	"photocontest/contexts/photo-contest/voting-engine/ports"
	"photocontest/contracts/identity"
	"photocontest/contracts/paging"
)

type ListPhotosQuery struct {
	CompetitionID string
	CategoryID    string
	Sort          string
	Order         string
	Limit         int
	Offset        int
}

type PhotoPage struct {
	Items  []entities.PhotoWithVotes
	Total  int
	Limit  int
	Offset int
}

type VotingQueries struct {
	Votes ports.VoteRepository
}

func (q VotingQueries) GetUserVoteStatus(ctx context.Context, actor identity.Actor, photoID string) (entities.VoteStatus, error) {
	photoID = strings.TrimSpace(photoID)
	if photoID == "" {
		return entities.VoteStatus{}, domainerrors.ErrIdentifierRequired
	}
	photo, err := q.Votes.GetPhoto(ctx, photoID)
	if err != nil {
		return entities.VoteStatus{}, err
	}
	count, err := q.Votes.CountVotes(ctx, photoID)
	if err != nil {
		return entities.VoteStatus{}, err
	}

	status := entities.VoteStatus{VoteCount: count}
	if !actor.Authenticated() {
		return status, nil
	}
	hasVoted, err := q.Votes.HasVoted(ctx, actor.UserID, photoID)
	if err != nil {
		return entities.VoteStatus{}, err
	}
	status.UserHasVoted = hasVoted
	status.CanVote = entities.CanVote(photo, actor.UserID, hasVoted)
	return status, nil
}

func (q VotingQueries) GetPhotosWithVotes(ctx context.Context, actor identity.Actor, query ListPhotosQuery) (PhotoPage, error) {
	competitionID := strings.TrimSpace(query.CompetitionID)
	if competitionID == "" {
		return PhotoPage{}, domainerrors.ErrIdentifierRequired
	}
	field, order, err := entities.ParseSort(query.Sort, query.Order)
	if err != nil {
		return PhotoPage{}, err
	}
	page, err := paging.Normalize(query.Limit, query.Offset)
	if err != nil {
		return PhotoPage{}, err
	}
	exists, err := q.Votes.CompetitionExists(ctx, competitionID)
	if err != nil {
		return PhotoPage{}, err
	}
	if !exists {
		return PhotoPage{}, domainerrors.ErrCompetitionNotFound
	}

	rows, total, err := q.Votes.ListApprovedPhotosWithVotes(ctx, ports.PhotoListFilter{
		CompetitionID: competitionID,
		CategoryID:    strings.TrimSpace(query.CategoryID),
		Sort:          field,
		Order:         order,
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return PhotoPage{}, err
	}

	voted := map[string]bool{}
	if actor.Authenticated() && len(rows) > 0 {
		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.Photo.PhotoID)
		}
		voted, err = q.Votes.VotedPhotoIDs(ctx, actor.UserID, ids)
		if err != nil {
			return PhotoPage{}, err
		}
	}

	items := make([]entities.PhotoWithVotes, 0, len(rows))
	for _, row := range rows {
		item := entities.PhotoWithVotes{Photo: row.Photo, VoteCount: row.VoteCount}
		if actor.Authenticated() {
			item.UserHasVoted = voted[row.Photo.PhotoID]
			item.CanVote = entities.CanVote(row.Photo, actor.UserID, item.UserHasVoted)
		}
		items = append(items, item)
	}
	return PhotoPage{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (q VotingQueries) GetVotingStats(ctx context.Context, competitionID string) (entities.VotingStats, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return entities.VotingStats{}, domainerrors.ErrIdentifierRequired
	}
	exists, err := q.Votes.CompetitionExists(ctx, competitionID)
	if err != nil {
		return entities.VotingStats{}, err
	}
	if !exists {
		return entities.VotingStats{}, domainerrors.ErrCompetitionNotFound
	}
	categories, err := q.Votes.VotingStats(ctx, competitionID)
	if err != nil {
		return entities.VotingStats{}, err
	}
	stats := entities.VotingStats{CompetitionID: competitionID, Categories: categories}
	for _, category := range categories {
		stats.TotalVotes += category.VoteCount
	}
	return stats, nil
}
