package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type DeleteRequest struct {
	Reason string `json:"reason,omitempty"`
}

type BulkActionRequest struct {
	PhotoIDs []string `json:"photo_ids"`
	Action   string   `json:"action"`
	Reason   string   `json:"reason,omitempty"`
}

type CreateReportRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
}

type ResolveReportRequest struct {
	Action            string `json:"action"`
	AdminNotes        string `json:"admin_notes,omitempty"`
	PhotoAction       string `json:"photo_action,omitempty"`
	PhotoActionReason string `json:"photo_action_reason,omitempty"`
}

type ListPendingRequest struct {
	CompetitionID string
	CategoryID    string
	Limit         int
	Offset        int
}

type ListReportsRequest struct {
	Status        string
	CompetitionID string
	PhotoID       string
	Limit         int
	Offset        int
}

type PhotoData struct {
	PhotoID         string `json:"photo_id"`
	UserID          string `json:"user_id"`
	CompetitionID   string `json:"competition_id"`
	CategoryID      string `json:"category_id"`
	Title           string `json:"title"`
	FileURL         string `json:"file_url"`
	Status          string `json:"status"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	ApprovedAt      string `json:"approved_at,omitempty"`
	RejectedBy      string `json:"rejected_by,omitempty"`
	RejectedAt      string `json:"rejected_at,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type PhotoResponse struct {
	Status    string    `json:"status"`
	Data      PhotoData `json:"data"`
	Timestamp string    `json:"timestamp"`
}

type PhotoListData struct {
	Items  []PhotoData `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type PhotoListResponse struct {
	Status    string        `json:"status"`
	Data      PhotoListData `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type BulkItem struct {
	PhotoID string     `json:"photo_id"`
	Success bool       `json:"success"`
	Status  string     `json:"status,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type BulkData struct {
	Processed int        `json:"processed"`
	Failed    int        `json:"failed"`
	Results   []BulkItem `json:"results"`
}

type BulkActionResponse struct {
	Status    string   `json:"status"`
	Data      BulkData `json:"data"`
	Timestamp string   `json:"timestamp"`
}

type ReportData struct {
	ReportID      string `json:"report_id"`
	PhotoID       string `json:"photo_id"`
	ReporterID    string `json:"reporter_id"`
	Reason        string `json:"reason"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	AdminNotes    string `json:"admin_notes,omitempty"`
	ResolvedBy    string `json:"resolved_by,omitempty"`
	ResolvedAt    string `json:"resolved_at,omitempty"`
	CreatedAt     string `json:"created_at"`
	PhotoTitle    string `json:"photo_title,omitempty"`
	PhotoStatus   string `json:"photo_status,omitempty"`
	CompetitionID string `json:"competition_id,omitempty"`
}

type ReportResponse struct {
	Status    string     `json:"status"`
	Data      ReportData `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type ResolveReportData struct {
	Report        ReportData `json:"report"`
	PhotoAction   string     `json:"photo_action,omitempty"`
	ReportRemoved bool       `json:"report_removed"`
}

type ResolveReportResponse struct {
	Status    string            `json:"status"`
	Data      ResolveReportData `json:"data"`
	Timestamp string            `json:"timestamp"`
}

type ReportListData struct {
	Items  []ReportData `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type ReportListResponse struct {
	Status    string         `json:"status"`
	Data      ReportListData `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type StatusCounts struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved,omitempty"`
	Rejected  int `json:"rejected,omitempty"`
	Resolved  int `json:"resolved,omitempty"`
	Dismissed int `json:"dismissed,omitempty"`
	Total     int `json:"total"`
}

type StatsData struct {
	Photos  StatusCounts `json:"photos"`
	Reports StatusCounts `json:"reports"`
}

type StatsResponse struct {
	Status    string    `json:"status"`
	Data      StatsData `json:"data"`
	Timestamp string    `json:"timestamp"`
}
