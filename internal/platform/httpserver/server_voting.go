package httpserver

import (
	"net/http"

	votinghttp "photocontest/contexts/photo-contest/voting-engine/transport/http"
)

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVoteStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.VoteStatusHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCompetitionPhotos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, offset, err := pageParams(query)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.voting.Handler.ListPhotosHandler(r.Context(), actorFromRequest(r), votinghttp.ListPhotosRequest{
		CompetitionID: r.PathValue("competition_id"),
		CategoryID:    query.Get("category_id"),
		Sort:          query.Get("sort"),
		Order:         query.Get("order"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotingStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.VotingStatsHandler(r.Context(), r.PathValue("competition_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
