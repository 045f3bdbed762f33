package httpadapter

import (
	"context"
	"log/slog"

	"photocontest/contexts/photo-contest/voting-engine/application/commands"
	"photocontest/contexts/photo-contest/voting-engine/application/queries"
	httptransport "photocontest/contexts/photo-contest/voting-engine/transport/http"
	"photocontest/contracts/identity"
)

type Handler struct {
	CastVote commands.CastVoteUseCase
	Queries  queries.VotingQueries
	Logger   *slog.Logger
}

func (h Handler) CastVoteHandler(ctx context.Context, actor identity.Actor, photoID string) (httptransport.CastVoteResponse, error) {
	result, err := h.CastVote.CastVote(ctx, actor, photoID)
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		VoteID:    result.Vote.VoteID,
		PhotoID:   result.Vote.PhotoID,
		VoteCount: result.VoteCount,
		CreatedAt: result.Vote.CreatedAt,
	}, nil
}

func (h Handler) VoteStatusHandler(ctx context.Context, actor identity.Actor, photoID string) (httptransport.VoteStatusResponse, error) {
	status, err := h.Queries.GetUserVoteStatus(ctx, actor, photoID)
	if err != nil {
		return httptransport.VoteStatusResponse{}, err
	}
	return httptransport.VoteStatusResponse{
		PhotoID:      photoID,
		VoteCount:    status.VoteCount,
		UserHasVoted: status.UserHasVoted,
		CanVote:      status.CanVote,
	}, nil
}

func (h Handler) ListPhotosHandler(
	ctx context.Context,
	actor identity.Actor,
	req httptransport.ListPhotosRequest,
) (httptransport.PhotoWithVotesListResponse, error) {
	page, err := h.Queries.GetPhotosWithVotes(ctx, actor, queries.ListPhotosQuery{
		CompetitionID: req.CompetitionID,
		CategoryID:    req.CategoryID,
		Sort:          req.Sort,
		Order:         req.Order,
		Limit:         req.Limit,
		Offset:        req.Offset,
	})
	if err != nil {
		return httptransport.PhotoWithVotesListResponse{}, err
	}
	items := make([]httptransport.PhotoWithVotesResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, httptransport.PhotoWithVotesResponse{
			PhotoID:       item.Photo.PhotoID,
			UserID:        item.Photo.UserID,
			CompetitionID: item.Photo.CompetitionID,
			CategoryID:    item.Photo.CategoryID,
			Title:         item.Photo.Title,
			Description:   item.Photo.Description,
			FileURL:       item.Photo.FileURL,
			CreatedAt:     item.Photo.CreatedAt,
			VoteCount:     item.VoteCount,
			UserHasVoted:  item.UserHasVoted,
			CanVote:       item.CanVote,
		})
	}
	return httptransport.PhotoWithVotesListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

func (h Handler) VotingStatsHandler(ctx context.Context, competitionID string) (httptransport.VotingStatsResponse, error) {
	stats, err := h.Queries.GetVotingStats(ctx, competitionID)
	if err != nil {
		return httptransport.VotingStatsResponse{}, err
	}
	categories := make([]httptransport.CategoryVoteStatsResponse, 0, len(stats.Categories))
	for _, item := range stats.Categories {
		categories = append(categories, httptransport.CategoryVoteStatsResponse{
			CategoryID: item.CategoryID,
			Name:       item.Name,
			VoteCount:  item.VoteCount,
			PhotoCount: item.PhotoCount,
		})
	}
	return httptransport.VotingStatsResponse{
		CompetitionID: stats.CompetitionID,
		TotalVotes:    stats.TotalVotes,
		Categories:    categories,
	}, nil
}
