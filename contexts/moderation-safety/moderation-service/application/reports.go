package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "photocontest/contexts/moderation-safety/moderation-service/domain/errors"
	"photocontest/contracts/identity"
)

type CreateReportInput struct {
	PhotoID     string
	Reason      string
	Description string
}

type ResolveReportInput struct {
	ReportID          string
	Action            string
	AdminNotes        string
	PhotoAction       string
	PhotoActionReason string
}

type ResolveReportResult struct {
	Report entities.Report
	// ReportRemoved is set when the photo action deleted the photo, which
	// cascades to the report itself. Report then holds the resolved
	// snapshot that was never persisted.
	ReportRemoved bool
	PhotoAction   entities.PhotoAction
}

func (s Service) CreateReport(ctx context.Context, actor identity.Actor, input CreateReportInput) (entities.Report, error) {
	if !actor.Authenticated() {
		return entities.Report{}, domainerrors.ErrUnauthenticated
	}
	photoID, err := requireID(input.PhotoID)
	if err != nil {
		return entities.Report{}, err
	}
	reportID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Report{}, err
	}
	report, err := entities.NewReport(reportID, photoID, actor.UserID, input.Reason, input.Description, s.now())
	if err != nil {
		return entities.Report{}, err
	}
	if _, err := s.Repo.GetPhoto(ctx, photoID); err != nil {
		return entities.Report{}, err
	}
	if err := s.Repo.CreateReport(ctx, report); err != nil {
		return entities.Report{}, err
	}

	resolveLogger(s.Logger).Info("photo reported",
		"event", "moderation_report_created",
		"module", moduleName,
		"layer", "application",
		"report_id", report.ReportID,
		"photo_id", photoID,
		"reporter_id", actor.UserID,
		"reason", string(report.Reason),
	)
	return report, nil
}

// ResolveReport closes a pending report, optionally acting on the photo
// first. A failed photo action leaves the report pending.
func (s Service) ResolveReport(ctx context.Context, actor identity.Actor, input ResolveReportInput) (ResolveReportResult, error) {
	if err := requireAdmin(actor); err != nil {
		return ResolveReportResult{}, err
	}
	reportID, err := requireID(input.ReportID)
	if err != nil {
		return ResolveReportResult{}, err
	}
	status, err := entities.ParseResolution(input.Action)
	if err != nil {
		return ResolveReportResult{}, err
	}
	notes := strings.TrimSpace(input.AdminNotes)
	if utf8.RuneCountInString(notes) > entities.MaxAdminNotesLength {
		return ResolveReportResult{}, domainerrors.ErrAdminNotesTooLong
	}

	var (
		photoAction entities.PhotoAction
		actionNote  string
	)
	if raw := strings.TrimSpace(input.PhotoAction); raw != "" {
		parsed, ok := entities.ParsePhotoAction(raw)
		if !ok {
			return ResolveReportResult{}, domainerrors.ErrInvalidPhotoAction
		}
		photoAction = parsed
		actionNote = strings.TrimSpace(input.PhotoActionReason)
		if photoAction == entities.PhotoActionReject {
			if actionNote == "" {
				actionNote = notes
			}
			actionNote, err = entities.NormalizeRejectionReason(actionNote)
			if err != nil {
				return ResolveReportResult{}, err
			}
		}
	}

	report, err := s.Repo.GetReport(ctx, reportID)
	if err != nil {
		return ResolveReportResult{}, err
	}
	if err := report.Resolve(status, actor.UserID, notes, s.now()); err != nil {
		return ResolveReportResult{}, err
	}
	photo, err := s.Repo.GetPhoto(ctx, report.PhotoID)
	if err != nil {
		return ResolveReportResult{}, err
	}

	result := ResolveReportResult{Report: report, PhotoAction: photoAction}
	if photoAction != "" {
		if err := s.applyPhotoAction(ctx, actor.UserID, report.PhotoID, photoAction, actionNote); err != nil {
			return ResolveReportResult{}, err
		}
	}

	if photoAction == entities.PhotoActionDelete {
		result.ReportRemoved = true
	} else {
		applied, err := s.Repo.ResolvePendingReport(ctx, report)
		if err != nil {
			return ResolveReportResult{}, err
		}
		if !applied {
			return ResolveReportResult{}, s.classifyLostResolution(ctx, reportID)
		}
	}

	resolveLogger(s.Logger).Info("report resolved",
		"event", "moderation_report_resolved",
		"module", moduleName,
		"layer", "application",
		"report_id", reportID,
		"photo_id", report.PhotoID,
		"admin_id", actor.UserID,
		"status", string(status),
		"photo_action", string(photoAction),
		"report_removed", result.ReportRemoved,
	)
	s.publish(ctx, EventReportResolved, photo.CompetitionID, report.UpdatedAt, map[string]any{
		"report_id":      report.ReportID,
		"photo_id":       report.PhotoID,
		"competition_id": photo.CompetitionID,
		"status":         string(status),
		"photo_action":   string(photoAction),
		"report_removed": result.ReportRemoved,
	})
	return result, nil
}

func (s Service) classifyLostResolution(ctx context.Context, reportID string) error {
	if _, err := s.Repo.GetReport(ctx, reportID); err != nil {
		if errors.Is(err, domainerrors.ErrReportNotFound) {
			return domainerrors.ErrReportNotFound
		}
		return err
	}
	return domainerrors.ErrReportAlreadyResolved
}
