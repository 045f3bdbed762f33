package httpserver

import (
	"net/http"

	competitionhttp "photocontest/contexts/photo-contest/competition-service/transport/http"
)

func (s *Server) handleListCompetitions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, offset, err := pageParams(query)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.competitions.Handler.ListCompetitionsHandler(r.Context(), competitionhttp.ListCompetitionsRequest{
		Status: query.Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req competitionhttp.CreateCompetitionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.competitions.Handler.CreateCompetitionHandler(r.Context(), actorFromRequest(r), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCompetition(w http.ResponseWriter, r *http.Request) {
	resp, err := s.competitions.Handler.GetCompetitionHandler(r.Context(), r.PathValue("competition_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCompetition(w http.ResponseWriter, r *http.Request) {
	var req competitionhttp.UpdateCompetitionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.competitions.Handler.UpdateCompetitionHandler(r.Context(), actorFromRequest(r), r.PathValue("competition_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeCompetitionStatus(w http.ResponseWriter, r *http.Request) {
	var req competitionhttp.ChangeStatusRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.competitions.Handler.ChangeStatusHandler(r.Context(), actorFromRequest(r), r.PathValue("competition_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCompetition(w http.ResponseWriter, r *http.Request) {
	if err := s.competitions.Handler.DeleteCompetitionHandler(r.Context(), actorFromRequest(r), r.PathValue("competition_id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req competitionhttp.CreateCategoryRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.competitions.Handler.CreateCategoryHandler(r.Context(), actorFromRequest(r), r.PathValue("competition_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req competitionhttp.UpdateCategoryRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.competitions.Handler.UpdateCategoryHandler(r.Context(), actorFromRequest(r), r.PathValue("category_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.competitions.Handler.DeleteCategoryHandler(r.Context(), actorFromRequest(r), r.PathValue("category_id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
