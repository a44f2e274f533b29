package errs

import "errors"

// Kind is a stable machine-readable failure category. Every non-2xx API
// response names one of these in its body.
type Kind string

const (
	ConstraintViolation    Kind = "constraint_violation"
	InvalidStateTransition Kind = "invalid_state_transition"
	RequestNotOpen         Kind = "request_not_open"
	Unauthenticated        Kind = "unauthenticated"
	Forbidden              Kind = "forbidden"
	InvalidCredentials     Kind = "invalid_credentials"
	NotFound               Kind = "not_found"
	StorageUnavailable     Kind = "storage_unavailable"
	Internal               Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a human-readable message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the human-readable message, hiding wrapped detail for
// errors that never passed through this package.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
