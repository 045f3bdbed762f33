package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photocontest/internal/platform/config"
)

func buildSQLiteApp(t *testing.T) (*APIApp, config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		ServiceName:             "photocontest-test",
		HTTPPort:                "0",
		DatabaseDriver:          "sqlite",
		DatabaseURL:             "file:" + filepath.Join(dir, "contest.db"),
		DatabaseAutoMigrate:     true,
		UploadDir:               filepath.Join(dir, "uploads"),
		PublicBaseURL:           "/uploads",
		MaxUploadBytes:          1 << 20,
		DefaultMaxPhotosPerUser: 3,
	}
	app, err := Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, cfg
}

func call(t *testing.T, handler http.Handler, method string, target string, body string, userID string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	if admin {
		req.Header.Set("X-User-Role", "admin")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body: %v body=%s", err, rr.Body.String())
	}
}

func upload(t *testing.T, handler http.Handler, userID string, categoryID string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("category_id", categoryID)
	_ = writer.WriteField("title", "Harbor lights")
	_ = writer.WriteField("description", "Boats in the harbor after sunset.")
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="harbor.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/photos", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-Id", userID)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestBuildRequiresDatabaseURL(t *testing.T) {
	if _, err := Build(context.Background(), config.Config{DatabaseDriver: "sqlite"}, nil); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestContestFlowAgainstSQLite(t *testing.T) {
	app, cfg := buildSQLiteApp(t)
	handler := app.Handler()

	rr := call(t, handler, http.MethodPost, "/v1/competitions",
		`{"title":"Harbors","start_date":"2026-05-01T00:00:00Z","end_date":"2026-06-01T00:00:00Z"}`, "admin-1", true)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var competition struct {
		CompetitionID string `json:"competition_id"`
	}
	decode(t, rr, &competition)

	rr = call(t, handler, http.MethodPost, "/v1/competitions/"+competition.CompetitionID+"/categories", `{"name":"Night"}`, "admin-1", true)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var category struct {
		CategoryID string `json:"category_id"`
	}
	decode(t, rr, &category)

	rr = upload(t, handler, "user-1", category.CategoryID)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 while draft, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = call(t, handler, http.MethodPost, "/v1/competitions/"+competition.CompetitionID+"/status", `{"status":"open"}`, "admin-1", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = upload(t, handler, "user-1", category.CategoryID)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var photo struct {
		PhotoID string `json:"photo_id"`
		FileURL string `json:"file_url"`
		Status  string `json:"status"`
	}
	decode(t, rr, &photo)
	if photo.Status != "pending" || !strings.HasPrefix(photo.FileURL, "/uploads/") {
		t.Fatalf("unexpected photo %+v", photo)
	}
	if _, err := os.Stat(filepath.Join(cfg.UploadDir, strings.TrimPrefix(photo.FileURL, "/uploads/"))); err != nil {
		t.Fatalf("expected stored file: %v", err)
	}

	rr = call(t, handler, http.MethodPost, "/v1/photos/"+photo.PhotoID+"/votes", "", "user-2", false)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 before approval, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = call(t, handler, http.MethodPost, "/v1/admin/photos/"+photo.PhotoID+"/approve", "", "admin-1", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = call(t, handler, http.MethodPost, "/v1/photos/"+photo.PhotoID+"/votes", "", "user-2", false)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = call(t, handler, http.MethodPost, "/v1/photos/"+photo.PhotoID+"/votes", "", "user-2", false)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate vote, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = call(t, handler, http.MethodGet, "/v1/competitions/"+competition.CompetitionID+"/photos", "", "user-2", false)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var listing struct {
		Items []struct {
			PhotoID      string `json:"photo_id"`
			VoteCount    int    `json:"vote_count"`
			UserHasVoted bool   `json:"user_has_voted"`
			CanVote      bool   `json:"can_vote"`
		} `json:"items"`
		Total int `json:"total"`
	}
	decode(t, rr, &listing)
	if listing.Total != 1 || len(listing.Items) != 1 {
		t.Fatalf("expected one photo, got %+v", listing)
	}
	if item := listing.Items[0]; item.VoteCount != 1 || !item.UserHasVoted || item.CanVote {
		t.Fatalf("unexpected listing item %+v", item)
	}

	rr = call(t, handler, http.MethodGet, "/v1/competitions/"+competition.CompetitionID+"/voting-stats", "", "", false)
	var stats struct {
		TotalVotes int `json:"total_votes"`
		Categories []struct {
			PhotoCount int `json:"photo_count"`
		} `json:"categories"`
	}
	decode(t, rr, &stats)
	if stats.TotalVotes != 1 || len(stats.Categories) != 1 || stats.Categories[0].PhotoCount != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	rr = call(t, handler, http.MethodDelete, "/v1/competitions/"+competition.CompetitionID, "", "admin-1", true)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = call(t, handler, http.MethodGet, "/v1/photos/"+photo.PhotoID+"/votes", "", "user-2", false)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected cascade to remove the photo, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9090": ":9090", ":7070": ":7070", " 8081 ": ":8081"}
	for input, want := range cases {
		if got := normalizeAddr(input); got != want {
			t.Fatalf("normalizeAddr(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestUploadPrefix(t *testing.T) {
	cases := map[string]string{
		"/uploads":                       "/uploads",
		"https://cdn.example.com/media/": "/media",
		"https://cdn.example.com":        "/uploads",
		"":                               "/uploads",
	}
	for input, want := range cases {
		if got := uploadPrefix(input); got != want {
			t.Fatalf("uploadPrefix(%q): expected %q, got %q", input, want, got)
		}
	}
}
