package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"photocontest/contexts/moderation-safety/moderation-service/application"
	"photocontest/contexts/moderation-safety/moderation-service/domain/entities"
	httptransport "photocontest/contexts/moderation-safety/moderation-service/transport/http"
	"photocontest/contracts/errkind"
	"photocontest/contracts/identity"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ApproveHandler(ctx context.Context, actor identity.Actor, photoID string) (httptransport.PhotoResponse, error) {
	photo, err := h.Service.ApprovePhoto(ctx, actor, photoID)
	if err != nil {
		return httptransport.PhotoResponse{}, err
	}
	return httptransport.PhotoResponse{Status: "success", Data: mapPhoto(photo), Timestamp: timestamp()}, nil
}

func (h Handler) RejectHandler(ctx context.Context, actor identity.Actor, photoID string, req httptransport.RejectRequest) (httptransport.PhotoResponse, error) {
	photo, err := h.Service.RejectPhoto(ctx, actor, photoID, req.Reason)
	if err != nil {
		return httptransport.PhotoResponse{}, err
	}
	return httptransport.PhotoResponse{Status: "success", Data: mapPhoto(photo), Timestamp: timestamp()}, nil
}

func (h Handler) DeleteHandler(ctx context.Context, actor identity.Actor, photoID string, req httptransport.DeleteRequest) error {
	return h.Service.DeletePhoto(ctx, actor, photoID, req.Reason)
}

func (h Handler) BulkActionHandler(ctx context.Context, actor identity.Actor, req httptransport.BulkActionRequest) (httptransport.BulkActionResponse, error) {
	result, err := h.Service.BulkPhotoAction(ctx, actor, req.PhotoIDs, req.Action, req.Reason)
	if err != nil {
		return httptransport.BulkActionResponse{}, err
	}
	resp := httptransport.BulkActionResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Processed = result.Processed
	resp.Data.Failed = result.Failed
	resp.Data.Results = make([]httptransport.BulkItem, 0, len(result.Results))
	for _, item := range result.Results {
		entry := httptransport.BulkItem{
			PhotoID: item.PhotoID,
			Success: item.Success,
			Status:  string(item.Status),
		}
		if item.Err != nil {
			body := itemError(item.Err)
			if body.Code == "INTERNAL_ERROR" {
				h.logger().Error("bulk item failed unexpectedly",
					"event", "moderation_bulk_item_failed",
					"module", "moderation-safety/moderation-service",
					"layer", "adapter",
					"photo_id", item.PhotoID,
					"error", item.Err.Error(),
				)
			}
			entry.Error = &body
		}
		resp.Data.Results = append(resp.Data.Results, entry)
	}
	return resp, nil
}

func (h Handler) CreateReportHandler(ctx context.Context, actor identity.Actor, photoID string, req httptransport.CreateReportRequest) (httptransport.ReportResponse, error) {
	report, err := h.Service.CreateReport(ctx, actor, application.CreateReportInput{
		PhotoID:     photoID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	return httptransport.ReportResponse{
		Status:    "success",
		Data:      mapReport(entities.ReportView{Report: report}),
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) ResolveReportHandler(ctx context.Context, actor identity.Actor, reportID string, req httptransport.ResolveReportRequest) (httptransport.ResolveReportResponse, error) {
	result, err := h.Service.ResolveReport(ctx, actor, application.ResolveReportInput{
		ReportID:          reportID,
		Action:            req.Action,
		AdminNotes:        req.AdminNotes,
		PhotoAction:       req.PhotoAction,
		PhotoActionReason: req.PhotoActionReason,
	})
	if err != nil {
		return httptransport.ResolveReportResponse{}, err
	}
	resp := httptransport.ResolveReportResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Report = mapReport(entities.ReportView{Report: result.Report})
	resp.Data.PhotoAction = string(result.PhotoAction)
	resp.Data.ReportRemoved = result.ReportRemoved
	return resp, nil
}

func (h Handler) PendingPhotosHandler(ctx context.Context, actor identity.Actor, req httptransport.ListPendingRequest) (httptransport.PhotoListResponse, error) {
	page, err := h.Service.GetPendingPhotos(ctx, actor, application.PendingPhotosQuery{
		CompetitionID: req.CompetitionID,
		CategoryID:    req.CategoryID,
		Limit:         req.Limit,
		Offset:        req.Offset,
	})
	if err != nil {
		return httptransport.PhotoListResponse{}, err
	}
	resp := httptransport.PhotoListResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Items = make([]httptransport.PhotoData, 0, len(page.Items))
	for _, photo := range page.Items {
		resp.Data.Items = append(resp.Data.Items, mapPhoto(photo))
	}
	resp.Data.Total = page.Total
	resp.Data.Limit = page.Limit
	resp.Data.Offset = page.Offset
	return resp, nil
}

func (h Handler) ReportsHandler(ctx context.Context, actor identity.Actor, req httptransport.ListReportsRequest) (httptransport.ReportListResponse, error) {
	page, err := h.Service.GetReports(ctx, actor, application.ReportsQuery{
		Status:        req.Status,
		CompetitionID: req.CompetitionID,
		PhotoID:       req.PhotoID,
		Limit:         req.Limit,
		Offset:        req.Offset,
	})
	if err != nil {
		return httptransport.ReportListResponse{}, err
	}
	resp := httptransport.ReportListResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Items = make([]httptransport.ReportData, 0, len(page.Items))
	for _, view := range page.Items {
		resp.Data.Items = append(resp.Data.Items, mapReport(view))
	}
	resp.Data.Total = page.Total
	resp.Data.Limit = page.Limit
	resp.Data.Offset = page.Offset
	return resp, nil
}

func (h Handler) StatsHandler(ctx context.Context, actor identity.Actor) (httptransport.StatsResponse, error) {
	stats, err := h.Service.GetModerationStats(ctx, actor)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	resp := httptransport.StatsResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Photos = httptransport.StatusCounts{
		Pending:  stats.Photos.Pending,
		Approved: stats.Photos.Approved,
		Rejected: stats.Photos.Rejected,
		Total:    stats.Photos.Total,
	}
	resp.Data.Reports = httptransport.StatusCounts{
		Pending:   stats.Reports.Pending,
		Resolved:  stats.Reports.Resolved,
		Dismissed: stats.Reports.Dismissed,
		Total:     stats.Reports.Total,
	}
	return resp, nil
}

func (h Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// itemError hides messages of unclassified failures; they are logged instead.
func itemError(err error) httptransport.ErrorBody {
	kind, ok := errkind.KindOf(err)
	if !ok {
		return httptransport.ErrorBody{Code: "INTERNAL_ERROR", Message: "internal error"}
	}
	return httptransport.ErrorBody{Code: string(kind), Message: err.Error()}
}

func mapPhoto(photo entities.Photo) httptransport.PhotoData {
	return httptransport.PhotoData{
		PhotoID:         photo.PhotoID,
		UserID:          photo.UserID,
		CompetitionID:   photo.CompetitionID,
		CategoryID:      photo.CategoryID,
		Title:           photo.Title,
		FileURL:         photo.FileURL,
		Status:          string(photo.Status),
		ApprovedBy:      photo.ApprovedBy,
		ApprovedAt:      formatOptional(photo.ApprovedAt),
		RejectedBy:      photo.RejectedBy,
		RejectedAt:      formatOptional(photo.RejectedAt),
		RejectionReason: photo.RejectionReason,
		CreatedAt:       photo.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapReport(view entities.ReportView) httptransport.ReportData {
	report := view.Report
	return httptransport.ReportData{
		ReportID:      report.ReportID,
		PhotoID:       report.PhotoID,
		ReporterID:    report.ReporterID,
		Reason:        string(report.Reason),
		Description:   report.Description,
		Status:        string(report.Status),
		AdminNotes:    report.AdminNotes,
		ResolvedBy:    report.ResolvedBy,
		ResolvedAt:    formatOptional(report.ResolvedAt),
		CreatedAt:     report.CreatedAt.UTC().Format(time.RFC3339),
		PhotoTitle:    view.PhotoTitle,
		PhotoStatus:   string(view.PhotoStatus),
		CompetitionID: view.CompetitionID,
	}
}

func formatOptional(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
