package errors

import "photocontest/contracts/errkind"

var (
	ErrPhotoNotFound       = errkind.New(errkind.NotFound, "photo not found")
	ErrCompetitionNotFound = errkind.New(errkind.NotFound, "competition not found")
	ErrPhotoNotApproved    = errkind.New(errkind.InvalidState, "only approved photos can be voted on")
	ErrCannotVoteOwnPhoto  = errkind.New(errkind.Conflict, "you cannot vote for your own photo")
	ErrAlreadyVoted        = errkind.New(errkind.Conflict, "you have already voted for this photo")
	ErrUnauthenticated     = errkind.New(errkind.Unauthenticated, "authentication required")
	ErrInvalidSort         = errkind.New(errkind.Validation, "sort must be one of votes, date, title")
	ErrInvalidOrder        = errkind.New(errkind.Validation, "order must be asc or desc")
	ErrIdentifierRequired  = errkind.New(errkind.Validation, "identifier is required")
)
