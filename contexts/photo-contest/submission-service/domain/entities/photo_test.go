package entities

import (
	"errors"
	"strings"
	"testing"
	"time"

	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 32)...)
)

func TestFirstFreeSlot(t *testing.T) {
	cases := []struct {
		name   string
		used   []int
		limit  int
		want   int
		wantOK bool
	}{
		{name: "empty", used: nil, limit: 2, want: 0, wantOK: true},
		{name: "gap", used: []int{0, 2}, limit: 3, want: 1, wantOK: true},
		{name: "full", used: []int{0, 1}, limit: 2, wantOK: false},
		{name: "slots above lowered limit", used: []int{3, 4}, limit: 2, wantOK: false},
		{name: "zero limit", used: nil, limit: 0, wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FirstFreeSlot(tc.used, tc.limit)
			if ok != tc.wantOK || (ok && got != tc.want) {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tc.want, tc.wantOK, got, ok)
			}
		})
	}
}

func TestMetadataValidate(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	valid := Metadata{
		Title:       "Harbor at dawn",
		Description: "Fishing boats leaving the harbor at first light.",
	}
	if err := valid.Validate(now); err != nil {
		t.Fatalf("expected valid metadata, got %v", err)
	}

	short := valid
	short.Description = "too short"
	if err := short.Validate(now); !errors.Is(err, domainerrors.ErrInvalidDescription) {
		t.Fatalf("expected invalid description, got %v", err)
	}

	long := valid
	long.Title = strings.Repeat("a", MaxTitleLength+1)
	if err := long.Validate(now); !errors.Is(err, domainerrors.ErrInvalidTitle) {
		t.Fatalf("expected invalid title, got %v", err)
	}

	future := valid
	tomorrow := now.Add(24 * time.Hour)
	future.DateTaken = &tomorrow
	if err := future.Validate(now); !errors.Is(err, domainerrors.ErrInvalidDateTaken) {
		t.Fatalf("expected invalid date taken, got %v", err)
	}
}

func TestValidateFile(t *testing.T) {
	mime, err := ValidateFile(FileUpload{ContentType: "image/png", Data: pngBytes}, 1024)
	if err != nil || mime != "image/png" {
		t.Fatalf("expected png to pass, got %q %v", mime, err)
	}
	mime, err = ValidateFile(FileUpload{ContentType: "image/jpg", Data: jpegBytes}, 1024)
	if err != nil || mime != "image/jpeg" {
		t.Fatalf("expected jpeg alias to pass, got %q %v", mime, err)
	}

	_, err = ValidateFile(FileUpload{ContentType: "image/png", Data: pngBytes}, 8)
	if !errors.Is(err, domainerrors.ErrFileTooLarge) {
		t.Fatalf("expected file too large, got %v", err)
	}
	_, err = ValidateFile(FileUpload{ContentType: "image/gif", Data: []byte("GIF89a....")}, 1024)
	if !errors.Is(err, domainerrors.ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	_, err = ValidateFile(FileUpload{ContentType: "image/jpeg", Data: pngBytes}, 1024)
	if !errors.Is(err, domainerrors.ErrContentMismatch) {
		t.Fatalf("expected content mismatch, got %v", err)
	}
	_, err = ValidateFile(FileUpload{ContentType: "image/png"}, 1024)
	if !errors.Is(err, domainerrors.ErrEmptyFile) {
		t.Fatalf("expected empty file, got %v", err)
	}
}
