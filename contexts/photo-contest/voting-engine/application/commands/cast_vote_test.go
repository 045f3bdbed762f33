package commands

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"photocontest/contexts/photo-contest/voting-engine/adapters/memory"
	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
	"photocontest/contexts/photo-contest/voting-engine/ports"
	"photocontest/contracts/identity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.EventEnvelope
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

var testNow = time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)

func seedPhoto(store *memory.Store, photoID string, ownerID string, status string) {
	store.SetPhoto(entities.Photo{
		PhotoID:       photoID,
		UserID:        ownerID,
		CompetitionID: "comp-1",
		CategoryID:    "cat-1",
		Title:         "Harbor lights",
		Status:        status,
		CreatedAt:     testNow.Add(-time.Hour),
	})
}

func newCastVoteUseCase(store *memory.Store, publisher ports.EventPublisher) CastVoteUseCase {
	return CastVoteUseCase{
		Votes:     store,
		Publisher: publisher,
		Clock:     fixedClock{now: testNow},
		IDGen:     store,
	}
}

func TestCastVoteScenario(t *testing.T) {
	store := memory.NewStore()
	seedPhoto(store, "photo-1", "user-a", entities.PhotoStatusApproved)
	publisher := &recordingPublisher{}
	uc := newCastVoteUseCase(store, publisher)

	result, err := uc.CastVote(context.Background(), identity.User("user-b"), "photo-1")
	if err != nil {
		t.Fatalf("expected vote to succeed, got %v", err)
	}
	if result.VoteCount != 1 {
		t.Fatalf("expected vote count 1, got %d", result.VoteCount)
	}
	if !result.Vote.CreatedAt.Equal(testNow) {
		t.Fatalf("expected vote timestamp from clock, got %s", result.Vote.CreatedAt)
	}

	if _, err := uc.CastVote(context.Background(), identity.User("user-b"), "photo-1"); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already voted, got %v", err)
	}
	if _, err := uc.CastVote(context.Background(), identity.User("user-a"), "photo-1"); !errors.Is(err, domainerrors.ErrCannotVoteOwnPhoto) {
		t.Fatalf("expected own photo rejection, got %v", err)
	}
	count, _ := store.CountVotes(context.Background(), "photo-1")
	if count != 1 {
		t.Fatalf("expected vote count to stay 1, got %d", count)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.EventType != EventVoteCast || event.PartitionKey != "comp-1" {
		t.Fatalf("unexpected envelope %+v", event)
	}
	var data map[string]any
	if err := json.Unmarshal(event.Data, &data); err != nil {
		t.Fatalf("decode event data: %v", err)
	}
	if data["vote_count"] != float64(1) || data["photo_id"] != "photo-1" {
		t.Fatalf("unexpected event data %v", data)
	}
}

func TestCastVotePreconditions(t *testing.T) {
	store := memory.NewStore()
	seedPhoto(store, "pending", "user-a", "pending")
	seedPhoto(store, "rejected", "user-a", "rejected")
	uc := newCastVoteUseCase(store, nil)

	tests := []struct {
		name    string
		actor   identity.Actor
		photoID string
		want    error
	}{
		{name: "anonymous", actor: identity.Anonymous(), photoID: "pending", want: domainerrors.ErrUnauthenticated},
		{name: "missing photo", actor: identity.User("user-b"), photoID: "nope", want: domainerrors.ErrPhotoNotFound},
		{name: "pending photo", actor: identity.User("user-b"), photoID: "pending", want: domainerrors.ErrPhotoNotApproved},
		{name: "rejected photo", actor: identity.User("user-b"), photoID: "rejected", want: domainerrors.ErrPhotoNotApproved},
		{name: "blank id", actor: identity.User("user-b"), photoID: " ", want: domainerrors.ErrIdentifierRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CastVote(context.Background(), tc.actor, tc.photoID); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCastVoteConcurrentDuplicatesRecordOneVote(t *testing.T) {
	store := memory.NewStore()
	seedPhoto(store, "photo-1", "user-a", entities.PhotoStatusApproved)
	uc := newCastVoteUseCase(store, nil)

	const attempts = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CastVote(context.Background(), identity.User("user-b"), "photo-1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domainerrors.ErrAlreadyVoted):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, successes, conflicts)
	}
	count, _ := store.CountVotes(context.Background(), "photo-1")
	if count != 1 {
		t.Fatalf("expected exactly one stored vote, got %d", count)
	}
}

func TestCastVoteIgnoresPublisherFailure(t *testing.T) {
	store := memory.NewStore()
	seedPhoto(store, "photo-1", "user-a", entities.PhotoStatusApproved)
	uc := newCastVoteUseCase(store, &recordingPublisher{err: errors.New("bus down")})

	if _, err := uc.CastVote(context.Background(), identity.User("user-b"), "photo-1"); err != nil {
		t.Fatalf("expected vote to succeed despite publish failure, got %v", err)
	}
}
