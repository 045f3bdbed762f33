package paging

import "photocontest/contracts/errkind"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	ErrInvalidLimit  = errkind.New(errkind.Validation, "limit must be between 1 and 100")
	ErrInvalidOffset = errkind.New(errkind.Validation, "offset must not be negative")
)

type Page struct {
	Limit  int
	Offset int
}

// Normalize applies the default limit when none was requested and rejects
// out-of-range values.
func Normalize(limit int, offset int) (Page, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Page{}, ErrInvalidLimit
	}
	if offset < 0 {
		return Page{}, ErrInvalidOffset
	}
	return Page{Limit: limit, Offset: offset}, nil
}
