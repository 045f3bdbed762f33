package httpserver

import (
	"net/http"

	moderationhttp "photocontest/contexts/moderation-safety/moderation-service/transport/http"
)

func (s *Server) handleApprovePhoto(w http.ResponseWriter, r *http.Request) {
	resp, err := s.moderation.Handler.ApproveHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectPhoto(w http.ResponseWriter, r *http.Request) {
	var req moderationhttp.RejectRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.moderation.Handler.RejectHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminDeletePhoto(w http.ResponseWriter, r *http.Request) {
	var req moderationhttp.DeleteRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if err := s.moderation.Handler.DeleteHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"), req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkPhotoAction(w http.ResponseWriter, r *http.Request) {
	var req moderationhttp.BulkActionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.moderation.Handler.BulkActionHandler(r.Context(), actorFromRequest(r), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePendingPhotos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, offset, err := pageParams(query)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.moderation.Handler.PendingPhotosHandler(r.Context(), actorFromRequest(r), moderationhttp.ListPendingRequest{
		CompetitionID: query.Get("competition_id"),
		CategoryID:    query.Get("category_id"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req moderationhttp.CreateReportRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.moderation.Handler.CreateReportHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, offset, err := pageParams(query)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.moderation.Handler.ReportsHandler(r.Context(), actorFromRequest(r), moderationhttp.ListReportsRequest{
		Status:        query.Get("status"),
		CompetitionID: query.Get("competition_id"),
		PhotoID:       query.Get("photo_id"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolveReport(w http.ResponseWriter, r *http.Request) {
	var req moderationhttp.ResolveReportRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.moderation.Handler.ResolveReportHandler(r.Context(), actorFromRequest(r), r.PathValue("report_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerationStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.moderation.Handler.StatsHandler(r.Context(), actorFromRequest(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
