package http

import "time"

type CastVoteResponse struct {
	VoteID    string    `json:"vote_id"`
	PhotoID   string    `json:"photo_id"`
	VoteCount int       `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteStatusResponse struct {
	PhotoID      string `json:"photo_id"`
	VoteCount    int    `json:"vote_count"`
	UserHasVoted bool   `json:"user_has_voted"`
	CanVote      bool   `json:"can_vote"`
}

type ListPhotosRequest struct {
	CompetitionID string
	CategoryID    string
	Sort          string
	Order         string
	Limit         int
	Offset        int
}

type PhotoWithVotesResponse struct {
	PhotoID       string    `json:"photo_id"`
	UserID        string    `json:"user_id"`
	CompetitionID string    `json:"competition_id"`
	CategoryID    string    `json:"category_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileURL       string    `json:"file_url"`
	CreatedAt     time.Time `json:"created_at"`
	VoteCount     int       `json:"vote_count"`
	UserHasVoted  bool      `json:"user_has_voted"`
	CanVote       bool      `json:"can_vote"`
}

type PhotoWithVotesListResponse struct {
	Items  []PhotoWithVotesResponse `json:"items"`
	Total  int                      `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

type CategoryVoteStatsResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	VoteCount  int    `json:"vote_count"`
	PhotoCount int    `json:"photo_count"`
}

type VotingStatsResponse struct {
	CompetitionID string                      `json:"competition_id"`
	TotalVotes    int                         `json:"total_votes"`
	Categories    []CategoryVoteStatsResponse `json:"categories"`
}
