package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
)

func TestModerationTransitionsOnlyLeavePending(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for _, status := range []PhotoStatus{PhotoStatusApproved, PhotoStatusRejected} {
		photo := Photo{PhotoID: "p1", Status: status}
		if err := photo.Approve("admin", now); !errors.Is(err, domainerrors.ErrPhotoAlreadyModerated) {
			t.Fatalf("approve from %s: expected already moderated, got %v", status, err)
		}
		if err := photo.Reject("admin", "reason", now); !errors.Is(err, domainerrors.ErrPhotoAlreadyModerated) {
			t.Fatalf("reject from %s: expected already moderated, got %v", status, err)
		}
		if photo.Status != status {
			t.Fatalf("expected status %s unchanged, got %s", status, photo.Status)
		}
	}

	photo := Photo{PhotoID: "p2", Status: PhotoStatusPending}
	if err := photo.Reject("admin", "blurry", now); err != nil {
		t.Fatalf("expected reject from pending, got %v", err)
	}
	if photo.RejectedAt == nil || !photo.RejectedAt.Equal(now) || photo.RejectionReason != "blurry" {
		t.Fatalf("unexpected rejected photo %+v", photo)
	}
}

func TestReportParsing(t *testing.T) {
	if _, err := ParseResolution("pending"); !errors.Is(err, domainerrors.ErrInvalidResolution) {
		t.Fatalf("expected pending to be rejected as a resolution, got %v", err)
	}
	if status, err := ParseResolution(" Dismissed "); err != nil || status != ReportStatusDismissed {
		t.Fatalf("expected dismissed, got %s err=%v", status, err)
	}
	if _, ok := ParsePhotoAction("publish"); ok {
		t.Fatalf("expected unknown photo action to fail")
	}

	report, err := NewReport("r1", "p1", "u1", "SPAM", "", time.Now())
	if err != nil || report.Reason != ReportReasonSpam || report.Status != ReportStatusPending {
		t.Fatalf("unexpected report %+v err=%v", report, err)
	}
	if err := report.Resolve(ReportStatusResolved, "admin", "", time.Now()); err != nil {
		t.Fatalf("expected resolve, got %v", err)
	}
	if err := report.Resolve(ReportStatusDismissed, "admin", "", time.Now()); !errors.Is(err, domainerrors.ErrReportAlreadyResolved) {
		t.Fatalf("expected already resolved, got %v", err)
	}
}
