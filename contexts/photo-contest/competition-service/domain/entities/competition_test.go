package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "photocontest/contexts/photo-contest/competition-service/domain/errors"
)

func TestCompetitionStatusTransitions(t *testing.T) {
	cases := []struct {
		from CompetitionStatus
		to   CompetitionStatus
		want bool
	}{
		{CompetitionStatusDraft, CompetitionStatusOpen, true},
		{CompetitionStatusOpen, CompetitionStatusVoting, true},
		{CompetitionStatusVoting, CompetitionStatusClosed, true},
		{CompetitionStatusOpen, CompetitionStatusClosed, true},
		{CompetitionStatusOpen, CompetitionStatusDraft, false},
		{CompetitionStatusClosed, CompetitionStatusOpen, false},
		{CompetitionStatusVoting, CompetitionStatusVoting, false},
		{CompetitionStatusDraft, CompetitionStatus("archived"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestCompetitionValidate(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	valid := Competition{
		Title:            "Spring Light",
		StartDate:        start,
		EndDate:          start.Add(30 * 24 * time.Hour),
		MaxPhotosPerUser: 3,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid competition, got %v", err)
	}

	reversed := valid
	reversed.EndDate = start.Add(-time.Hour)
	if err := reversed.Validate(); !errors.Is(err, domainerrors.ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule, got %v", err)
	}

	halfWindow := valid
	votingStart := start.Add(24 * time.Hour)
	halfWindow.VotingStartDate = &votingStart
	if err := halfWindow.Validate(); !errors.Is(err, domainerrors.ErrInvalidVotingWindow) {
		t.Fatalf("expected invalid voting window, got %v", err)
	}

	noLimit := valid
	noLimit.MaxPhotosPerUser = 0
	if err := noLimit.Validate(); !errors.Is(err, domainerrors.ErrInvalidPhotoLimit) {
		t.Fatalf("expected invalid photo limit, got %v", err)
	}
}
