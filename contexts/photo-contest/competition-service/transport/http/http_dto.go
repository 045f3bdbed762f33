package http

import "time"

type CreateCompetitionRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	VotingStartDate  *time.Time `json:"voting_start_date,omitempty"`
	VotingEndDate    *time.Time `json:"voting_end_date,omitempty"`
	MaxPhotosPerUser int        `json:"max_photos_per_user,omitempty"`
}

type UpdateCompetitionRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	VotingStartDate  *time.Time `json:"voting_start_date,omitempty"`
	VotingEndDate    *time.Time `json:"voting_end_date,omitempty"`
	MaxPhotosPerUser *int       `json:"max_photos_per_user,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type ListCompetitionsRequest struct {
	Status string
	Limit  int
	Offset int
}

type CreateCategoryRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	MaxPhotosPerUser int    `json:"max_photos_per_user,omitempty"`
}

type UpdateCategoryRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	MaxPhotosPerUser *int    `json:"max_photos_per_user,omitempty"`
}

type CategoryResponse struct {
	CategoryID       string    `json:"category_id"`
	CompetitionID    string    `json:"competition_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	MaxPhotosPerUser int       `json:"max_photos_per_user"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CompetitionResponse struct {
	CompetitionID    string             `json:"competition_id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          time.Time          `json:"end_date"`
	VotingStartDate  *time.Time         `json:"voting_start_date,omitempty"`
	VotingEndDate    *time.Time         `json:"voting_end_date,omitempty"`
	Status           string             `json:"status"`
	MaxPhotosPerUser int                `json:"max_photos_per_user"`
	Categories       []CategoryResponse `json:"categories,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type CompetitionListResponse struct {
	Items  []CompetitionResponse `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
