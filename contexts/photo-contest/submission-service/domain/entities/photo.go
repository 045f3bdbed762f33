package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
)

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
)

func ParsePhotoStatus(raw string) (PhotoStatus, bool) {
	status := PhotoStatus(strings.TrimSpace(strings.ToLower(raw)))
	switch status {
	case PhotoStatusPending, PhotoStatusApproved, PhotoStatusRejected:
		return status, true
	default:
		return "", false
	}
}

const (
	MaxTitleLength       = 200
	MinDescriptionLength = 20
	MaxDescriptionLength = 500
	MaxLocationLength    = 200
	MaxCameraFieldLength = 100
)

type CameraInfo struct {
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Lens         string `json:"lens,omitempty"`
	FocalLength  string `json:"focal_length,omitempty"`
	Aperture     string `json:"aperture,omitempty"`
	ShutterSpeed string `json:"shutter_speed,omitempty"`
	ISO          string `json:"iso,omitempty"`
}

func (c CameraInfo) IsZero() bool {
	return c == CameraInfo{}
}

func (c CameraInfo) fields() []string {
	return []string{c.Make, c.Model, c.Lens, c.FocalLength, c.Aperture, c.ShutterSpeed, c.ISO}
}

type Photo struct {
	PhotoID         string
	UserID          string
	CompetitionID   string
	CategoryID      string
	Title           string
	Description     string
	FileURL         string
	FilePath        string
	FileSize        int64
	MimeType        string
	DateTaken       *time.Time
	Location        string
	Camera          *CameraInfo
	Status          PhotoStatus
	RejectionReason string
	QuotaSlot       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Photo) IsPending() bool {
	return p.Status == PhotoStatusPending
}

// Metadata is the owner-editable part of a photo.
type Metadata struct {
	Title       string
	Description string
	Location    string
	DateTaken   *time.Time
	Camera      *CameraInfo
}

func (p Photo) Metadata() Metadata {
	return Metadata{
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		DateTaken:   p.DateTaken,
		Camera:      p.Camera,
	}
}

func (m Metadata) Validate(now time.Time) error {
	title := strings.TrimSpace(m.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return domainerrors.ErrInvalidTitle
	}
	descriptionLength := utf8.RuneCountInString(strings.TrimSpace(m.Description))
	if descriptionLength < MinDescriptionLength || descriptionLength > MaxDescriptionLength {
		return domainerrors.ErrInvalidDescription
	}
	if utf8.RuneCountInString(strings.TrimSpace(m.Location)) > MaxLocationLength {
		return domainerrors.ErrInvalidLocation
	}
	if m.DateTaken != nil && !now.IsZero() && m.DateTaken.After(now) {
		return domainerrors.ErrInvalidDateTaken
	}
	if m.Camera != nil {
		for _, field := range m.Camera.fields() {
			if utf8.RuneCountInString(strings.TrimSpace(field)) > MaxCameraFieldLength {
				return domainerrors.ErrInvalidCamera
			}
		}
	}
	return nil
}

// FirstFreeSlot returns the lowest quota slot in [0, limit) that is not in
// used. Every stored photo holds one slot and (user, category, slot) is
// unique, so a free slot is a quota admission ticket.
func FirstFreeSlot(used []int, limit int) (int, bool) {
	if limit <= 0 || len(used) >= limit {
		return 0, false
	}
	taken := make(map[int]struct{}, len(used))
	for _, slot := range used {
		taken[slot] = struct{}{}
	}
	for slot := 0; slot < limit; slot++ {
		if _, ok := taken[slot]; !ok {
			return slot, true
		}
	}
	return 0, false
}
