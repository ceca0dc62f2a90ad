package rag

import "errors"

// Kind classifies pipeline failures so callers can map them to a response
// without inspecting dynamic types.
type Kind int

const (
	// KindService covers embedding or completion failures and any
	// unclassified fault during orchestration.
	KindService Kind = iota

	// KindEmptyQuery means the query was empty after trimming. User error.
	KindEmptyQuery

	// KindInappropriateQuery means moderation flagged the query. User error.
	KindInappropriateQuery

	// KindRetrieval means the vector store collection is missing or the
	// vector query failed. Infrastructure fault.
	KindRetrieval
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindEmptyQuery:
		return "empty_query"
	case KindInappropriateQuery:
		return "inappropriate_query"
	case KindRetrieval:
		return "retrieval"
	default:
		return "service"
	}
}

// Error is the tagged error variant for every pipeline failure. No component
// retries; errors propagate immediately to the caller.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// NewError builds a pipeline error. msg is the user-facing message; cause may
// be nil for user-correctable failures.
func NewError(kind Kind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Message returns the user-facing message without the wrapped cause.
func (e *Error) Message() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the failure kind from err. Errors that did not originate in
// the pipeline report KindService.
func KindOf(err error) Kind {
	var ragErr *Error
	if errors.As(err, &ragErr) {
		return ragErr.Kind()
	}
	return KindService
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ragErr *Error
	return errors.As(err, &ragErr) && ragErr.Kind() == kind
}
