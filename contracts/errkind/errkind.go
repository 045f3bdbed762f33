// Package errkind classifies business errors so transports can map them
// without knowing every sentinel a bounded context declares.
package errkind

import "errors"

type Kind string

const (
	NotFound        Kind = "NOT_FOUND"
	QuotaExceeded   Kind = "QUOTA_EXCEEDED"
	InvalidState    Kind = "INVALID_STATE"
	Conflict        Kind = "CONFLICT"
	Validation      Kind = "VALIDATION_FAILED"
	Forbidden       Kind = "FORBIDDEN"
	Unauthenticated Kind = "UNAUTHENTICATED"
)

// Error is a business error tagged with its Kind. Sentinels are compared by
// identity, so two Errors with equal text are still distinct.
type Error struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

type kinded interface {
	Kind() Kind
}

// KindOf reports the kind of the first classified error in err's chain.
func KindOf(err error) (Kind, bool) {
	var target kinded
	if errors.As(err, &target) {
		return target.Kind(), true
	}
	return "", false
}

// IsBusiness reports whether err carries a classification. Unclassified
// errors are storage or programming failures.
func IsBusiness(err error) bool {
	_, ok := KindOf(err)
	return ok
}
