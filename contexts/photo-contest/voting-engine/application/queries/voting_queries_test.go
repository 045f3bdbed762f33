package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"photocontest/contexts/photo-contest/voting-engine/adapters/memory"
	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
	"photocontest/contracts/identity"
	"photocontest/contracts/paging"
)

var base = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func addPhoto(store *memory.Store, photoID string, categoryID string, ownerID string, status string, age time.Duration) {
	store.SetPhoto(entities.Photo{
		PhotoID:       photoID,
		UserID:        ownerID,
		CompetitionID: "comp-1",
		CategoryID:    categoryID,
		Title:         "Photo " + photoID,
		Status:        status,
		CreatedAt:     base.Add(age),
	})
}

func vote(t *testing.T, store *memory.Store, userID string, photoID string) {
	t.Helper()
	err := store.InsertVote(context.Background(), entities.Vote{
		VoteID:    userID + "-" + photoID,
		UserID:    userID,
		PhotoID:   photoID,
		CreatedAt: base,
	})
	if err != nil {
		t.Fatalf("seed vote: %v", err)
	}
}

func TestGetUserVoteStatusUsesSharedEligibility(t *testing.T) {
	store := memory.NewStore()
	addPhoto(store, "p1", "cat-1", "owner", entities.PhotoStatusApproved, 0)
	vote(t, store, "voter-1", "p1")
	q := VotingQueries{Votes: store}

	tests := []struct {
		name      string
		actor     identity.Actor
		wantVoted bool
		wantCan   bool
	}{
		{name: "anonymous", actor: identity.Anonymous()},
		{name: "owner", actor: identity.User("owner")},
		{name: "voted", actor: identity.User("voter-1"), wantVoted: true},
		{name: "fresh voter", actor: identity.User("voter-2"), wantCan: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, err := q.GetUserVoteStatus(context.Background(), tc.actor, "p1")
			if err != nil {
				t.Fatalf("expected status, got %v", err)
			}
			if status.VoteCount != 1 || status.UserHasVoted != tc.wantVoted || status.CanVote != tc.wantCan {
				t.Fatalf("unexpected status %+v", status)
			}
		})
	}

	if _, err := q.GetUserVoteStatus(context.Background(), identity.User("voter-2"), "missing"); !errors.Is(err, domainerrors.ErrPhotoNotFound) {
		t.Fatalf("expected photo not found, got %v", err)
	}
}

func TestGetPhotosWithVotesOrdersAndFlagsApprovedPhotos(t *testing.T) {
	store := memory.NewStore()
	addPhoto(store, "p1", "cat-1", "owner-1", entities.PhotoStatusApproved, 0)
	addPhoto(store, "p2", "cat-1", "owner-2", entities.PhotoStatusApproved, time.Hour)
	addPhoto(store, "p3", "cat-2", "viewer", entities.PhotoStatusApproved, 2*time.Hour)
	addPhoto(store, "p4", "cat-1", "owner-1", "pending", 3*time.Hour)
	vote(t, store, "viewer", "p1")
	vote(t, store, "someone", "p1")
	vote(t, store, "someone", "p2")
	vote(t, store, "other", "p3")
	q := VotingQueries{Votes: store}

	page, err := q.GetPhotosWithVotes(context.Background(), identity.User("viewer"), ListPhotosQuery{CompetitionID: "comp-1"})
	if err != nil {
		t.Fatalf("expected listing, got %v", err)
	}
	if page.Total != 3 || len(page.Items) != 3 || page.Limit != paging.DefaultLimit {
		t.Fatalf("expected 3 approved photos with default limit, got total=%d items=%d limit=%d", page.Total, len(page.Items), page.Limit)
	}
	got := []string{page.Items[0].Photo.PhotoID, page.Items[1].Photo.PhotoID, page.Items[2].Photo.PhotoID}
	want := []string{"p1", "p3", "p2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if !page.Items[0].UserHasVoted || page.Items[0].CanVote {
		t.Fatalf("expected p1 voted and not votable, got %+v", page.Items[0])
	}
	if page.Items[1].CanVote {
		t.Fatalf("expected own photo p3 not votable")
	}
	if page.Items[2].UserHasVoted || !page.Items[2].CanVote {
		t.Fatalf("expected p2 votable, got %+v", page.Items[2])
	}

	filtered, err := q.GetPhotosWithVotes(context.Background(), identity.Anonymous(), ListPhotosQuery{
		CompetitionID: "comp-1",
		CategoryID:    "cat-1",
		Sort:          "date",
		Order:         "asc",
		Limit:         1,
		Offset:        1,
	})
	if err != nil {
		t.Fatalf("expected filtered listing, got %v", err)
	}
	if filtered.Total != 2 || len(filtered.Items) != 1 || filtered.Items[0].Photo.PhotoID != "p2" {
		t.Fatalf("unexpected filtered page %+v", filtered)
	}
	if filtered.Items[0].CanVote || filtered.Items[0].UserHasVoted {
		t.Fatalf("expected anonymous flags to be false")
	}
}

func TestGetPhotosWithVotesValidation(t *testing.T) {
	q := VotingQueries{Votes: memory.NewStore()}
	if _, err := q.GetPhotosWithVotes(context.Background(), identity.Anonymous(), ListPhotosQuery{CompetitionID: "ghost"}); !errors.Is(err, domainerrors.ErrCompetitionNotFound) {
		t.Fatalf("expected competition not found, got %v", err)
	}
	if _, err := q.GetPhotosWithVotes(context.Background(), identity.Anonymous(), ListPhotosQuery{CompetitionID: "ghost", Sort: "random"}); !errors.Is(err, domainerrors.ErrInvalidSort) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
	if _, err := q.GetPhotosWithVotes(context.Background(), identity.Anonymous(), ListPhotosQuery{CompetitionID: "ghost", Limit: 500}); !errors.Is(err, paging.ErrInvalidLimit) {
		t.Fatalf("expected invalid limit, got %v", err)
	}
}

func TestGetVotingStatsIncludesEmptyCategories(t *testing.T) {
	store := memory.NewStore()
	store.SetCategory("comp-1", "cat-1", "Landscapes")
	store.SetCategory("comp-1", "cat-2", "Portraits")
	store.SetCategory("comp-1", "cat-3", "Wildlife")
	addPhoto(store, "p1", "cat-1", "owner", entities.PhotoStatusApproved, 0)
	addPhoto(store, "p2", "cat-1", "owner", entities.PhotoStatusApproved, time.Hour)
	addPhoto(store, "p3", "cat-2", "owner", "pending", 0)
	vote(t, store, "v1", "p1")
	vote(t, store, "v2", "p1")
	vote(t, store, "v1", "p3")
	q := VotingQueries{Votes: store}

	stats, err := q.GetVotingStats(context.Background(), "comp-1")
	if err != nil {
		t.Fatalf("expected stats, got %v", err)
	}
	if stats.TotalVotes != 2 {
		t.Fatalf("expected 2 votes on approved photos, got %d", stats.TotalVotes)
	}
	if len(stats.Categories) != 3 {
		t.Fatalf("expected all 3 categories, got %d", len(stats.Categories))
	}
	byName := map[string]entities.CategoryVoteStats{}
	for _, item := range stats.Categories {
		byName[item.Name] = item
	}
	if got := byName["Landscapes"]; got.PhotoCount != 2 || got.VoteCount != 2 {
		t.Fatalf("unexpected landscapes stats %+v", got)
	}
	if got := byName["Portraits"]; got.PhotoCount != 0 || got.VoteCount != 0 {
		t.Fatalf("expected pending photo excluded, got %+v", got)
	}
	if got := byName["Wildlife"]; got.PhotoCount != 0 || got.VoteCount != 0 {
		t.Fatalf("expected empty category with zero counts, got %+v", got)
	}

	if _, err := q.GetVotingStats(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrCompetitionNotFound) {
		t.Fatalf("expected competition not found, got %v", err)
	}
}
