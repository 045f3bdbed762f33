package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
	"photocontest/contexts/photo-contest/voting-engine/ports"
	"photocontest/internal/platform/db"
)

var seedTime = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func newSQLiteRepository(t *testing.T) *Repository {
	t.Helper()
	database, err := db.Connect(db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "voting.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	exec := func(query string, args ...any) {
		t.Helper()
		if err := database.DB.Exec(query, args...).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	exec(`INSERT INTO competitions (id, title, start_date, end_date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"comp-1", "Spring", seedTime, seedTime.Add(48*time.Hour), "voting", seedTime, seedTime)
	exec(`INSERT INTO categories (id, competition_id, name, max_photos_per_user, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"cat-1", "comp-1", "Landscapes", 3, seedTime, seedTime)
	photos := []struct {
		id     string
		title  string
		status string
		offset time.Duration
	}{
		{"p1", "Canyon", "approved", 0},
		{"p2", "Aurora", "approved", time.Hour},
		{"p3", "Bay", "approved", 2 * time.Hour},
		{"p4", "Draft", "pending", 3 * time.Hour},
	}
	for i, photo := range photos {
		created := seedTime.Add(photo.offset)
		exec(`INSERT INTO photos (id, user_id, competition_id, category_id, title, file_url, file_path, mime_type, status, quota_slot, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			photo.id, "owner-1", "comp-1", "cat-1", photo.title, "/uploads/"+photo.id+".jpg", photo.id+".jpg", "image/jpeg", photo.status, i, created, created)
	}
	return NewRepository(database.DB, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func castVote(t *testing.T, repo *Repository, userID string, photoID string) error {
	t.Helper()
	return repo.InsertVote(context.Background(), entities.Vote{
		VoteID:    fmt.Sprintf("vote-%s-%s", userID, photoID),
		UserID:    userID,
		PhotoID:   photoID,
		CreatedAt: seedTime,
	})
}

func TestInsertVoteTranslatesConstraintViolations(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	if err := castVote(t, repo, "voter-1", "p1"); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	err := repo.InsertVote(ctx, entities.Vote{VoteID: "vote-dup", UserID: "voter-1", PhotoID: "p1", CreatedAt: seedTime})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if err := castVote(t, repo, "voter-1", "ghost"); !errors.Is(err, domainerrors.ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}

	count, err := repo.CountVotes(ctx, "p1")
	if err != nil || count != 1 {
		t.Fatalf("expected one vote, got count=%d err=%v", count, err)
	}
	voted, err := repo.HasVoted(ctx, "voter-1", "p1")
	if err != nil || !voted {
		t.Fatalf("expected voter-1 to have voted, got %v err=%v", voted, err)
	}
}

func TestInsertVoteAcceptsOneOfConcurrentDuplicates(t *testing.T) {
	repo := newSQLiteRepository(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.InsertVote(context.Background(), entities.Vote{
				VoteID:    fmt.Sprintf("vote-%d", i),
				UserID:    "voter-1",
				PhotoID:   "p2",
				CreatedAt: seedTime,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domainerrors.ErrAlreadyVoted):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 vote and %d conflicts, got %d and %d", attempts-1, succeeded, conflicts)
	}
}

func TestListApprovedPhotosWithVotesOrdering(t *testing.T) {
	repo := newSQLiteRepository(t)
	for _, vote := range []struct{ user, photo string }{
		{"voter-1", "p3"}, {"voter-2", "p3"}, {"voter-1", "p2"}, {"voter-2", "p1"}, {"voter-1", "p4"},
	} {
		if err := castVote(t, repo, vote.user, vote.photo); err != nil {
			t.Fatalf("seed vote %v: %v", vote, err)
		}
	}

	tests := []struct {
		name  string
		sort  entities.SortField
		order entities.SortOrder
		want  []string
	}{
		{name: "votes desc breaks ties by newest", sort: entities.SortByVotes, order: entities.OrderDesc, want: []string{"p3", "p2", "p1"}},
		{name: "votes asc breaks ties by oldest", sort: entities.SortByVotes, order: entities.OrderAsc, want: []string{"p1", "p2", "p3"}},
		{name: "title asc", sort: entities.SortByTitle, order: entities.OrderAsc, want: []string{"p2", "p3", "p1"}},
		{name: "date desc", sort: entities.SortByDate, order: entities.OrderDesc, want: []string{"p3", "p2", "p1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := repo.ListApprovedPhotosWithVotes(context.Background(), ports.PhotoListFilter{
				CompetitionID: "comp-1",
				Sort:          tc.sort,
				Order:         tc.order,
				Limit:         10,
			})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if total != 3 || len(items) != len(tc.want) {
				t.Fatalf("expected 3 approved photos, got total=%d items=%d", total, len(items))
			}
			for i, id := range tc.want {
				if items[i].Photo.PhotoID != id {
					got := make([]string, 0, len(items))
					for _, item := range items {
						got = append(got, item.Photo.PhotoID)
					}
					t.Fatalf("expected order %v, got %v", tc.want, got)
				}
			}
		})
	}

	items, _, err := repo.ListApprovedPhotosWithVotes(context.Background(), ports.PhotoListFilter{
		CompetitionID: "comp-1",
		Sort:          entities.SortByVotes,
		Order:         entities.OrderDesc,
		Limit:         1,
		Offset:        0,
	})
	if err != nil || len(items) != 1 || items[0].VoteCount != 2 {
		t.Fatalf("expected top photo with 2 votes, got %+v err=%v", items, err)
	}

	stats, err := repo.VotingStats(context.Background(), "comp-1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 || stats[0].PhotoCount != 3 || stats[0].VoteCount != 4 {
		t.Fatalf("expected approved-only stats of 3 photos and 4 votes, got %+v", stats)
	}
}
