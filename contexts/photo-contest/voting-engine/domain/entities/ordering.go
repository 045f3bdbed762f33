package entities

import (
	"sort"
	"strings"

	domainerrors "photocontest/contexts/photo-contest/voting-engine/domain/errors"
)

type SortField string

const (
	SortByVotes SortField = "votes"
	SortByDate  SortField = "date"
	SortByTitle SortField = "title"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func ParseSort(rawField string, rawOrder string) (SortField, SortOrder, error) {
	field := SortField(strings.TrimSpace(strings.ToLower(rawField)))
	switch field {
	case "":
		field = SortByVotes
	case SortByVotes, SortByDate, SortByTitle:
	default:
		return "", "", domainerrors.ErrInvalidSort
	}
	order := SortOrder(strings.TrimSpace(strings.ToLower(rawOrder)))
	switch order {
	case "":
		order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return "", "", domainerrors.ErrInvalidOrder
	}
	return field, order, nil
}

// SortPhotos orders a listing. Every key runs in the requested direction:
// votes sorts by (vote count, created at, id), date by (created at, id) and
// title by (title, created at, id). The id key makes the order total, so
// repeated queries over the same data return the same pages.
func SortPhotos(items []PhotoWithVotes, field SortField, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		cmp := comparePhotos(items[i], items[j], field)
		if order == OrderAsc {
			return cmp < 0
		}
		return cmp > 0
	})
}

func comparePhotos(a PhotoWithVotes, b PhotoWithVotes, field SortField) int {
	switch field {
	case SortByVotes:
		if a.VoteCount != b.VoteCount {
			return compareInts(a.VoteCount, b.VoteCount)
		}
	case SortByTitle:
		if a.Photo.Title != b.Photo.Title {
			return strings.Compare(a.Photo.Title, b.Photo.Title)
		}
	}
	if !a.Photo.CreatedAt.Equal(b.Photo.CreatedAt) {
		if a.Photo.CreatedAt.Before(b.Photo.CreatedAt) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Photo.PhotoID, b.Photo.PhotoID)
}

func compareInts(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
