package application

import (
	"context"
	"strings"

	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	"photocontest/contexts/moderation-safety/moderation-service/ports"
	"photocontest/contracts/identity"
	"photocontest/contracts/paging"
)

type PendingPhotosQuery struct {
	CompetitionID string
	CategoryID    string
	Limit         int
	Offset        int
}

type ReportsQuery struct {
	Status        string
	CompetitionID string
	PhotoID       string
	Limit         int
	Offset        int
}

type PhotoPage struct {
	Items  []entities.Photo
	Total  int
	Limit  int
	Offset int
}

type ReportPage struct {
	Items  []entities.ReportView
	Total  int
	Limit  int
	Offset int
}

// GetPendingPhotos lists the review queue oldest first.
func (s Service) GetPendingPhotos(ctx context.Context, actor identity.Actor, query PendingPhotosQuery) (PhotoPage, error) {
	if err := requireAdmin(actor); err != nil {
		return PhotoPage{}, err
	}
	page, err := paging.Normalize(query.Limit, query.Offset)
	if err != nil {
		return PhotoPage{}, err
	}
	items, total, err := s.Repo.ListPendingPhotos(ctx, ports.PendingPhotoFilter{
		CompetitionID: strings.TrimSpace(query.CompetitionID),
		CategoryID:    strings.TrimSpace(query.CategoryID),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return PhotoPage{}, err
	}
	return PhotoPage{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// GetReports lists reports newest first.
func (s Service) GetReports(ctx context.Context, actor identity.Actor, query ReportsQuery) (ReportPage, error) {
	if err := requireAdmin(actor); err != nil {
		return ReportPage{}, err
	}
	page, err := paging.Normalize(query.Limit, query.Offset)
	if err != nil {
		return ReportPage{}, err
	}
	filter := ports.ReportFilter{
		CompetitionID: strings.TrimSpace(query.CompetitionID),
		PhotoID:       strings.TrimSpace(query.PhotoID),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status, err := entities.ParseReportStatus(raw)
		if err != nil {
			return ReportPage{}, err
		}
		filter.Status = status
	}
	items, total, err := s.Repo.ListReports(ctx, filter)
	if err != nil {
		return ReportPage{}, err
	}
	return ReportPage{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (s Service) GetModerationStats(ctx context.Context, actor identity.Actor) (entities.ModerationStats, error) {
	if err := requireAdmin(actor); err != nil {
		return entities.ModerationStats{}, err
	}
	return s.Repo.ModerationStats(ctx)
}
