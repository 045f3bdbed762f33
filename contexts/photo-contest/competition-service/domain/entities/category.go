package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "photocontest/contexts/photo-contest/competition-service/domain/errors"
)

const (
	MaxCategoryNameLength        = 100
	MaxCategoryDescriptionLength = 500
)

type Category struct {
	CategoryID       string
	CompetitionID    string
	Name             string
	Description      string
	MaxPhotosPerUser int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return domainerrors.ErrInvalidCategoryName
	}
	if utf8.RuneCountInString(c.Description) > MaxCategoryDescriptionLength {
		return domainerrors.ErrDescriptionTooLong
	}
	if c.MaxPhotosPerUser < 1 {
		return domainerrors.ErrInvalidPhotoLimit
	}
	return nil
}

// CompetitionDetail is a competition together with its categories.
type CompetitionDetail struct {
	Competition Competition
	Categories  []Category
}
