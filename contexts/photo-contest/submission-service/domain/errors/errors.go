package errors

import (
	"errors"
	"fmt"

	"photocontest/contracts/errkind"
)

var (
	ErrPhotoNotFound           = errkind.New(errkind.NotFound, "photo not found")
	ErrCategoryNotFound        = errkind.New(errkind.NotFound, "category not found")
	ErrCompetitionNotFound     = errkind.New(errkind.NotFound, "competition not found")
	ErrCompetitionNotActive    = errkind.New(errkind.InvalidState, "competition is not accepting submissions")
	ErrPhotoNotEditable        = errkind.New(errkind.InvalidState, "cannot edit moderated photos")
	ErrSubmissionLimitExceeded = errkind.New(errkind.QuotaExceeded, "submission limit reached for this category")
	ErrNotPhotoOwner           = errkind.New(errkind.Forbidden, "you do not own this photo")
	ErrUnauthenticated         = errkind.New(errkind.Unauthenticated, "authentication required")

	ErrInvalidTitle       = errkind.New(errkind.Validation, "title is required and must be at most 200 characters")
	ErrInvalidDescription = errkind.New(errkind.Validation, "description must be between 20 and 500 characters")
	ErrInvalidLocation    = errkind.New(errkind.Validation, "location must be at most 200 characters")
	ErrInvalidCamera      = errkind.New(errkind.Validation, "camera metadata fields must be at most 100 characters")
	ErrInvalidDateTaken   = errkind.New(errkind.Validation, "date taken cannot be in the future")
	ErrEmptyFile          = errkind.New(errkind.Validation, "file is required")
	ErrFileTooLarge       = errkind.New(errkind.Validation, "file is too large")
	ErrUnsupportedType    = errkind.New(errkind.Validation, "only JPEG and PNG images are accepted")
	ErrContentMismatch    = errkind.New(errkind.Validation, "file content does not match its declared type")
	ErrInvalidStatus      = errkind.New(errkind.Validation, "unknown photo status")
	ErrIdentifierRequired = errkind.New(errkind.Validation, "identifier is required")
)

// SubmissionLimitError is the quota failure with the limit that was hit. It
// matches ErrSubmissionLimitExceeded under errors.Is.
type SubmissionLimitError struct {
	Limit int
}

func (e SubmissionLimitError) Error() string {
	return fmt.Sprintf("submission limit of %d photos reached for this category", e.Limit)
}

func (e SubmissionLimitError) Kind() errkind.Kind {
	return errkind.QuotaExceeded
}

func (e SubmissionLimitError) Is(target error) bool {
	return target == ErrSubmissionLimitExceeded
}

// FileTooLargeError carries the configured upload ceiling.
type FileTooLargeError struct {
	MaxBytes int64
}

func (e FileTooLargeError) Error() string {
	return fmt.Sprintf("file exceeds the maximum size of %d bytes", e.MaxBytes)
}

func (e FileTooLargeError) Kind() errkind.Kind {
	return errkind.Validation
}

func (e FileTooLargeError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// LimitOf extracts the quota limit from a submission limit failure.
func LimitOf(err error) (int, bool) {
	var limitErr SubmissionLimitError
	if errors.As(err, &limitErr) {
		return limitErr.Limit, true
	}
	return 0, false
}
