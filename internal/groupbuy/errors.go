package groupbuy

import "errors"

var (
	// ErrEmptyTitle rejects a group buy without a title.
	ErrEmptyTitle = errors.New("group buy title is required")

	// ErrInvalidOrder rejects order input that fails validation.
	// The wrapping error names the offending field.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrNotFound means the referenced group buy or order does not exist.
	// Callers treat it as a no-op: a stale id from a double click is expected.
	ErrNotFound = errors.New("not found")

	// ErrUnknownAction rejects an intent the reducer does not understand.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidCollection rejects an imported collection that breaks a model invariant.
	ErrInvalidCollection = errors.New("invalid collection")

	// ErrDuplicateID means the id generator kept returning ids already in use.
	ErrDuplicateID = errors.New("could not generate a unique id")
)
