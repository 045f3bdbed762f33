package errors

import "photocontest/contracts/errkind"

var (
	ErrPhotoNotFound         = errkind.New(errkind.NotFound, "photo not found")
	ErrReportNotFound        = errkind.New(errkind.NotFound, "report not found")
	ErrPhotoAlreadyModerated = errkind.New(errkind.InvalidState, "photo has already been moderated")
	ErrReportAlreadyResolved = errkind.New(errkind.InvalidState, "report has already been resolved")
	ErrAlreadyReported       = errkind.New(errkind.Conflict, "You have already reported this photo")

	ErrRejectionReasonRequired = errkind.New(errkind.Validation, "rejection reason is required")
	ErrReasonTooLong           = errkind.New(errkind.Validation, "reason must be at most 500 characters")
	ErrInvalidReportReason     = errkind.New(errkind.Validation, "reason must be one of inappropriate, spam, offensive, copyright, other")
	ErrDescriptionTooLong      = errkind.New(errkind.Validation, "description must be at most 500 characters")
	ErrAdminNotesTooLong       = errkind.New(errkind.Validation, "admin notes must be at most 1000 characters")
	ErrInvalidResolution       = errkind.New(errkind.Validation, "action must be resolved or dismissed")
	ErrInvalidPhotoAction      = errkind.New(errkind.Validation, "photo action must be approve, reject or delete")
	ErrInvalidBulkAction       = errkind.New(errkind.Validation, "action must be approve, reject or delete")
	ErrBulkEmpty               = errkind.New(errkind.Validation, "at least one photo id is required")
	ErrBulkTooLarge            = errkind.New(errkind.Validation, "at most 100 photo ids per request")
	ErrInvalidReportStatus     = errkind.New(errkind.Validation, "status must be pending, resolved or dismissed")
	ErrIdentifierRequired      = errkind.New(errkind.Validation, "identifier is required")

	ErrUnauthenticated = errkind.New(errkind.Unauthenticated, "authentication required")
	ErrForbidden       = errkind.New(errkind.Forbidden, "admin access required")
)
