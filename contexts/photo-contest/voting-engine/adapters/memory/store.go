package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"photocontest/contexts/photo-contest/voting-engine/domain/entities"
	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
	"photocontest/contexts/photo-contest/voting-engine/ports"

	"github.com/google/uuid"
)

type category struct {
	categoryID    string
	competitionID string
	name          string
}

type Store struct {
	mu sync.RWMutex

	competitions map[string]struct{}
	categories   map[string]category
	photos       map[string]entities.Photo
	votes        map[string]entities.Vote
	// byIdentity mirrors the (user_id, photo_id) unique index.
	byIdentity map[string]string
}

func NewStore() *Store {
	return &Store{
		competitions: make(map[string]struct{}),
		categories:   make(map[string]category),
		photos:       make(map[string]entities.Photo),
		votes:        make(map[string]entities.Vote),
		byIdentity:   make(map[string]string),
	}
}

func (s *Store) SetCategory(competitionID string, categoryID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions[competitionID] = struct{}{}
	s.categories[categoryID] = category{categoryID: categoryID, competitionID: competitionID, name: name}
}

func (s *Store) SetPhoto(photo entities.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions[photo.CompetitionID] = struct{}{}
	s.photos[photo.PhotoID] = photo
}

// RemovePhoto drops a photo and its votes the way the foreign key cascade does.
func (s *Store) RemovePhoto(photoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.photos, photoID)
	for voteID, vote := range s.votes {
		if vote.PhotoID == photoID {
			delete(s.votes, voteID)
			delete(s.byIdentity, identityKey(vote.UserID, vote.PhotoID))
		}
	}
}

func (s *Store) InsertVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[vote.PhotoID]; !ok {
		return domainerrors.ErrPhotoNotFound
	}
	key := identityKey(vote.UserID, vote.PhotoID)
	if _, exists := s.byIdentity[key]; exists {
		return domainerrors.ErrAlreadyVoted
	}
	s.votes[vote.VoteID] = vote
	s.byIdentity[key] = vote.VoteID
	return nil
}

func (s *Store) CountVotes(_ context.Context, photoID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countVotesLocked(photoID), nil
}

func (s *Store) HasVoted(_ context.Context, userID string, photoID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byIdentity[identityKey(userID, photoID)]
	return ok, nil
}

func (s *Store) GetPhoto(_ context.Context, photoID string) (entities.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photo, ok := s.photos[strings.TrimSpace(photoID)]
	if !ok {
		return entities.Photo{}, domainerrors.ErrPhotoNotFound
	}
	return photo, nil
}

func (s *Store) CompetitionExists(_ context.Context, competitionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.competitions[competitionID]
	return ok, nil
}

func (s *Store) ListApprovedPhotosWithVotes(_ context.Context, filter ports.PhotoListFilter) ([]ports.PhotoVotes, int, error) {
	s.mu.RLock()
	items := make([]entities.PhotoWithVotes, 0)
	for _, photo := range s.photos {
		if photo.CompetitionID != filter.CompetitionID || photo.Status != entities.PhotoStatusApproved {
			continue
		}
		if filter.CategoryID != "" && photo.CategoryID != filter.CategoryID {
			continue
		}
		items = append(items, entities.PhotoWithVotes{Photo: photo, VoteCount: s.countVotesLocked(photo.PhotoID)})
	}
	s.mu.RUnlock()

	entities.SortPhotos(items, filter.Sort, filter.Order)
	total := len(items)
	if filter.Offset >= total {
		return []ports.PhotoVotes{}, total, nil
	}
	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	rows := make([]ports.PhotoVotes, 0, end-filter.Offset)
	for _, item := range items[filter.Offset:end] {
		rows = append(rows, ports.PhotoVotes{Photo: item.Photo, VoteCount: item.VoteCount})
	}
	return rows, total, nil
}

func (s *Store) VotedPhotoIDs(_ context.Context, userID string, photoIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voted := make(map[string]bool, len(photoIDs))
	for _, photoID := range photoIDs {
		if _, ok := s.byIdentity[identityKey(userID, photoID)]; ok {
			voted[photoID] = true
		}
	}
	return voted, nil
}

func (s *Store) VotingStats(_ context.Context, competitionID string) ([]entities.CategoryVoteStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byCategory := make(map[string]*entities.CategoryVoteStats)
	for _, item := range s.categories {
		if item.competitionID != competitionID {
			continue
		}
		byCategory[item.categoryID] = &entities.CategoryVoteStats{CategoryID: item.categoryID, Name: item.name}
	}
	for _, photo := range s.photos {
		stats, ok := byCategory[photo.CategoryID]
		if !ok || photo.Status != entities.PhotoStatusApproved {
			continue
		}
		stats.PhotoCount++
		stats.VoteCount += s.countVotesLocked(photo.PhotoID)
	}
	out := make([]entities.CategoryVoteStats, 0, len(byCategory))
	for _, stats := range byCategory {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out, nil
}

func (s *Store) countVotesLocked(photoID string) int {
	count := 0
	for _, vote := range s.votes {
		if vote.PhotoID == photoID {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func identityKey(userID string, photoID string) string {
	return userID + "\x00" + photoID
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
