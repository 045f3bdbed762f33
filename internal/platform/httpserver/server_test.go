package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	moderationservice "photocontest/contexts/moderation-safety/moderation-service"
	moderationentities "photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	competitionservice "photocontest/contexts/photo-contest/competition-service"
	submissionservice "photocontest/contexts/photo-contest/submission-service"
	submissionports "photocontest/contexts/photo-contest/submission-service/ports"
	votingengine "photocontest/contexts/photo-contest/voting-engine"
	votingentities "photocontest/contexts/photo-contest/voting-engine/domain/entities"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestModules() Modules {
	return Modules{
		Competitions: competitionservice.NewInMemoryModule(nil),
		Submissions:  submissionservice.NewInMemoryModule(nil),
		Voting:       votingengine.NewInMemoryModule(nil),
		Moderation:   moderationservice.NewInMemoryModule(nil),
	}
}

func newTestServer() *Server {
	return New(newTestModules(), Options{}, nil)
}

func serve(server *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error body: %v body=%s", err, rr.Body.String())
	}
	if envelope.Status != "error" || envelope.Timestamp == "" {
		t.Fatalf("unexpected error envelope %+v", envelope)
	}
	return envelope
}

func jsonRequest(method string, target string, body string, userID string, role string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	return req
}

func TestHealthz(t *testing.T) {
	rr := serve(newTestServer(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateCompetitionRequiresAdmin(t *testing.T) {
	server := newTestServer()
	body := `{"title":"Spring","start_date":"2026-03-01T00:00:00Z","end_date":"2026-04-01T00:00:00Z"}`

	rr := serve(server, jsonRequest(http.MethodPost, "/v1/competitions", body, "", ""))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if envelope := decodeError(t, rr); envelope.Error.Code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %s", envelope.Error.Code)
	}

	rr = serve(server, jsonRequest(http.MethodPost, "/v1/competitions", body, "user-1", "user"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCompetitionAndCategoryLifecycle(t *testing.T) {
	server := newTestServer()
	rr := serve(server, jsonRequest(http.MethodPost, "/v1/competitions",
		`{"title":"Spring","start_date":"2026-03-01T00:00:00Z","end_date":"2026-04-01T00:00:00Z"}`, "admin-1", "admin"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var competition struct {
		CompetitionID string `json:"competition_id"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &competition); err != nil {
		t.Fatalf("decode competition: %v", err)
	}
	if competition.Status != "draft" {
		t.Fatalf("expected draft, got %s", competition.Status)
	}

	rr = serve(server, jsonRequest(http.MethodPost, "/v1/competitions/"+competition.CompetitionID+"/categories",
		`{"name":"Landscape"}`, "admin-1", "admin"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/competitions/"+competition.CompetitionID, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var detail struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if len(detail.Categories) != 1 || detail.Categories[0].Name != "Landscape" {
		t.Fatalf("unexpected categories %+v", detail.Categories)
	}

	rr = serve(server, jsonRequest(http.MethodDelete, "/v1/competitions/"+competition.CompetitionID, "", "admin-1", "admin"))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/competitions/"+competition.CompetitionID, nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListCompetitionsRejectsBadLimit(t *testing.T) {
	server := newTestServer()
	for _, target := range []string{"/v1/competitions?limit=abc", "/v1/competitions?limit=500"} {
		rr := serve(server, httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d body=%s", target, rr.Code, rr.Body.String())
		}
	}
}

func uploadRequest(t *testing.T, userID string, categoryID string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"category_id": categoryID,
		"title":       "Morning fog",
		"description": "Fog rolling over the valley at sunrise.",
		"date_taken":  "2025-10-01",
		"camera":      `{"make":"Fujifilm","model":"X-T5"}`,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="fog.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/photos", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-Id", userID)
	return req
}

func TestUploadPhotoEnforcesCategoryQuota(t *testing.T) {
	modules := newTestModules()
	modules.Submissions.Store.SetCategory(submissionports.CategoryProjection{
		CategoryID:        "cat-1",
		CompetitionID:     "comp-1",
		Name:              "Landscape",
		MaxPhotosPerUser:  1,
		CompetitionStatus: "open",
	})
	server := New(modules, Options{}, nil)

	rr := serve(server, uploadRequest(t, "user-1", "cat-1", pngHeader))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var photo struct {
		Status   string `json:"status"`
		MimeType string `json:"mime_type"`
		FileURL  string `json:"file_url"`
		Camera   *struct {
			Make string `json:"make"`
		} `json:"camera"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &photo); err != nil {
		t.Fatalf("decode photo: %v", err)
	}
	if photo.Status != "pending" || photo.MimeType != "image/png" || photo.FileURL == "" {
		t.Fatalf("unexpected photo %+v", photo)
	}
	if photo.Camera == nil || photo.Camera.Make != "Fujifilm" {
		t.Fatalf("expected camera metadata, got %+v", photo.Camera)
	}

	rr = serve(server, uploadRequest(t, "user-1", "cat-1", pngHeader))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	envelope := decodeError(t, rr)
	if envelope.Error.Code != "QUOTA_EXCEEDED" {
		t.Fatalf("expected QUOTA_EXCEEDED, got %s", envelope.Error.Code)
	}
	if limit, ok := envelope.Error.Details["limit"].(float64); !ok || limit != 1 {
		t.Fatalf("expected details.limit=1, got %+v", envelope.Error.Details)
	}
}

func TestUploadPhotoRejectsOversizedBody(t *testing.T) {
	modules := newTestModules()
	modules.Submissions.Store.SetCategory(submissionports.CategoryProjection{
		CategoryID:        "cat-1",
		CompetitionID:     "comp-1",
		Name:              "Landscape",
		MaxPhotosPerUser:  5,
		CompetitionStatus: "open",
	})
	server := New(modules, Options{MaxUploadBytes: 1024}, nil)

	data := append(append([]byte(nil), pngHeader...), bytes.Repeat([]byte{0}, 2<<20)...)
	rr := serve(server, uploadRequest(t, "user-1", "cat-1", data))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d body=%s", rr.Code, rr.Body.String())
	}
	envelope := decodeError(t, rr)
	if envelope.Error.Details["max_size"] != "1.0 KiB" {
		t.Fatalf("expected humanized max_size, got %+v", envelope.Error.Details)
	}
}

func TestUploadPhotoRequiresAuthentication(t *testing.T) {
	server := newTestServer()
	req := uploadRequest(t, "", "cat-1", pngHeader)
	req.Header.Del("X-User-Id")
	rr := serve(server, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteStatusCodes(t *testing.T) {
	modules := newTestModules()
	modules.Voting.Store.SetCategory("comp-1", "cat-1", "Landscape")
	modules.Voting.Store.SetPhoto(votingentities.Photo{
		PhotoID:       "photo-1",
		UserID:        "owner-1",
		CompetitionID: "comp-1",
		CategoryID:    "cat-1",
		Title:         "Fog",
		Status:        votingentities.PhotoStatusApproved,
		CreatedAt:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	server := New(modules, Options{}, nil)

	rr := serve(server, jsonRequest(http.MethodPost, "/v1/photos/photo-1/votes", "", "voter-1", ""))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	cases := []struct {
		name   string
		userID string
		photo  string
		status int
		code   string
	}{
		{name: "duplicate", userID: "voter-1", photo: "photo-1", status: http.StatusConflict, code: "CONFLICT"},
		{name: "own photo", userID: "owner-1", photo: "photo-1", status: http.StatusConflict, code: "CONFLICT"},
		{name: "anonymous", userID: "", photo: "photo-1", status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{name: "missing photo", userID: "voter-2", photo: "photo-x", status: http.StatusNotFound, code: "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(server, jsonRequest(http.MethodPost, "/v1/photos/"+tc.photo+"/votes", "", tc.userID, ""))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, rr.Code, rr.Body.String())
			}
			if envelope := decodeError(t, rr); envelope.Error.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, envelope.Error.Code)
			}
		})
	}

	rr = serve(server, jsonRequest(http.MethodGet, "/v1/photos/photo-1/votes", "", "voter-1", ""))
	var status struct {
		VoteCount    int  `json:"vote_count"`
		UserHasVoted bool `json:"user_has_voted"`
		CanVote      bool `json:"can_vote"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.VoteCount != 1 || !status.UserHasVoted || status.CanVote {
		t.Fatalf("unexpected vote status %+v", status)
	}

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/competitions/comp-1/photos?sort=popularity", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestModerationRoutesRequireAdmin(t *testing.T) {
	modules := newTestModules()
	modules.Moderation.Store.SetPhoto(moderationentities.Photo{
		PhotoID:       "photo-1",
		UserID:        "owner-1",
		CompetitionID: "comp-1",
		CategoryID:    "cat-1",
		Status:        moderationentities.PhotoStatusPending,
	})
	server := New(modules, Options{}, nil)

	rr := serve(server, jsonRequest(http.MethodPost, "/v1/admin/photos/photo-1/approve", "", "user-1", ""))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = serve(server, jsonRequest(http.MethodPost, "/v1/admin/photos/photo-1/approve", "", "admin-1", "admin"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = serve(server, jsonRequest(http.MethodPost, "/v1/admin/photos/photo-1/reject", `{"reason":"blurry"}`, "admin-1", "admin"))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateReportRejectsDuplicates(t *testing.T) {
	modules := newTestModules()
	modules.Moderation.Store.SetPhoto(moderationentities.Photo{
		PhotoID:       "photo-1",
		UserID:        "owner-1",
		CompetitionID: "comp-1",
		CategoryID:    "cat-1",
		Status:        moderationentities.PhotoStatusApproved,
	})
	server := New(modules, Options{}, nil)

	body := `{"reason":"spam","description":"same image posted twice"}`
	rr := serve(server, jsonRequest(http.MethodPost, "/v1/photos/photo-1/reports", body, "user-2", ""))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = serve(server, jsonRequest(http.MethodPost, "/v1/photos/photo-1/reports", body, "user-2", ""))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if envelope := decodeError(t, rr); envelope.Error.Message != "You have already reported this photo" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}

	rr = serve(server, jsonRequest(http.MethodPost, "/v1/photos/photo-1/reports", `{"reason":`, "user-3", ""))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUnclassifiedErrorsAreHidden(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.writeDomainError(rr, httptest.NewRequest(http.MethodGet, "/v1/competitions", nil), errors.New("connection reset by peer"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	envelope := decodeError(t, rr)
	if envelope.Error.Code != "INTERNAL_ERROR" || envelope.Error.Message != "internal error" {
		t.Fatalf("unexpected body %+v", envelope.Error)
	}
}

func TestUploadsAreServedWithoutListings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fog.png"), pngHeader, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	server := New(newTestModules(), Options{UploadDir: dir, UploadPrefix: "/uploads"}, nil)

	rr := serve(server, httptest.NewRequest(http.MethodGet, "/uploads/fog.png", nil))
	if rr.Code != http.StatusOK || !bytes.Equal(rr.Body.Bytes(), pngHeader) {
		t.Fatalf("expected file contents, got %d", rr.Code)
	}
	rr = serve(server, httptest.NewRequest(http.MethodGet, "/uploads/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for directory, got %d", rr.Code)
	}
}
