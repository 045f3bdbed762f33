package errors

import "photocontest/contracts/errkind"

var (
	ErrCompetitionNotFound     = errkind.New(errkind.NotFound, "competition not found")
	ErrCategoryNotFound        = errkind.New(errkind.NotFound, "category not found")
	ErrInvalidTitle            = errkind.New(errkind.Validation, "title is required and must be at most 200 characters")
	ErrDescriptionTooLong      = errkind.New(errkind.Validation, "description is too long")
	ErrInvalidSchedule         = errkind.New(errkind.Validation, "end date must be after start date")
	ErrInvalidVotingWindow     = errkind.New(errkind.Validation, "voting window needs both dates and must end after it starts")
	ErrInvalidPhotoLimit       = errkind.New(errkind.Validation, "max photos per user must be at least 1")
	ErrInvalidCategoryName     = errkind.New(errkind.Validation, "category name is required and must be at most 100 characters")
	ErrInvalidStatus           = errkind.New(errkind.Validation, "unknown competition status")
	ErrInvalidStatusTransition = errkind.New(errkind.InvalidState, "competition status can only move forward")
	ErrCompetitionClosed       = errkind.New(errkind.InvalidState, "competition is closed")
	ErrStatusChanged           = errkind.New(errkind.InvalidState, "competition status changed concurrently")
	ErrUnauthenticated         = errkind.New(errkind.Unauthenticated, "authentication required")
	ErrForbidden               = errkind.New(errkind.Forbidden, "admin access required")
)
