package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	submissionhttp "photocontest/contexts/photo-contest/submission-service/transport/http"
)

// multipartOverhead leaves room for form fields around the file part.
const multipartOverhead = 1 << 20

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "upload exceeds the maximum size", maxSizeDetails(s.maxUploadBytes))
			return
		}
		writeValidationError(w, "request must be multipart/form-data")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	req := submissionhttp.UploadPhotoRequest{
		CategoryID:  strings.TrimSpace(r.FormValue("category_id")),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
	}
	if raw := strings.TrimSpace(r.FormValue("date_taken")); raw != "" {
		taken, err := parseDate(raw)
		if err != nil {
			writeValidationError(w, "date_taken must be an RFC 3339 timestamp or YYYY-MM-DD date")
			return
		}
		req.DateTaken = &taken
	}
	if raw := strings.TrimSpace(r.FormValue("camera")); raw != "" {
		var camera submissionhttp.CameraInfo
		if err := json.Unmarshal([]byte(raw), &camera); err != nil {
			writeValidationError(w, "camera must be a JSON object")
			return
		}
		req.Camera = &camera
	}

	file, header, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		writeValidationError(w, "photo file could not be read")
		return
	default:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeValidationError(w, "photo file could not be read")
			return
		}
		req.Filename = header.Filename
		req.ContentType = header.Header.Get("Content-Type")
		req.Data = data
	}

	resp, err := s.submissions.Handler.UploadPhotoHandler(r.Context(), actorFromRequest(r), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.GetPhotoHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var req submissionhttp.UpdatePhotoRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.submissions.Handler.UpdatePhotoHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := s.submissions.Handler.DeletePhotoHandler(r.Context(), actorFromRequest(r), r.PathValue("photo_id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMyPhotos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, offset, err := pageParams(query)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	resp, err := s.submissions.Handler.ListUserPhotosHandler(r.Context(), actorFromRequest(r), submissionhttp.ListUserPhotosRequest{
		CompetitionID: query.Get("competition_id"),
		Status:        query.Get("status"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmissionCounts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.SubmissionCountsHandler(r.Context(), actorFromRequest(r), r.PathValue("competition_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse(time.DateOnly, raw)
}
