package http

import "time"

type CameraInfo struct {
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Lens         string `json:"lens,omitempty"`
	FocalLength  string `json:"focal_length,omitempty"`
	Aperture     string `json:"aperture,omitempty"`
	ShutterSpeed string `json:"shutter_speed,omitempty"`
	ISO          string `json:"iso,omitempty"`
}

// UploadPhotoRequest is assembled by the server from a multipart form.
type UploadPhotoRequest struct {
	CategoryID  string
	Title       string
	Description string
	Location    string
	DateTaken   *time.Time
	Camera      *CameraInfo
	Filename    string
	ContentType string
	Data        []byte
}

type UpdatePhotoRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Location    *string     `json:"location,omitempty"`
	DateTaken   *time.Time  `json:"date_taken,omitempty"`
	Camera      *CameraInfo `json:"camera,omitempty"`
}

type ListUserPhotosRequest struct {
	CompetitionID string
	Status        string
	Limit         int
	Offset        int
}

type PhotoResponse struct {
	PhotoID         string      `json:"photo_id"`
	UserID          string      `json:"user_id"`
	CompetitionID   string      `json:"competition_id"`
	CategoryID      string      `json:"category_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	FileURL         string      `json:"file_url"`
	FileSize        int64       `json:"file_size"`
	MimeType        string      `json:"mime_type"`
	DateTaken       *time.Time  `json:"date_taken,omitempty"`
	Location        string      `json:"location,omitempty"`
	Camera          *CameraInfo `json:"camera,omitempty"`
	Status          string      `json:"status"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type PhotoListResponse struct {
	Items  []PhotoResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type CategoryQuotaResponse struct {
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	CompetitionID string `json:"competition_id"`
	Count         int    `json:"count"`
	Limit         int    `json:"limit"`
	Remaining     int    `json:"remaining"`
}

type SubmissionCountsResponse struct {
	Items []CategoryQuotaResponse `json:"items"`
}
