package maat

import "errors"

// Sentinel errors callers can match with errors.Is, for when switching
// on identity is more convenient than parsing an AppError's Message.
var (
	// ErrEmptyRing is wrapped by the NotFound returned from Route when
	// no physical node has ever been accepted (or all have since been
	// removed).
	ErrEmptyRing = errors.New("ring is empty")

	// ErrUnknownNode is wrapped by the NotFound returned from Remove
	// when the given node's id was never accepted.
	ErrUnknownNode = errors.New("node not found")
)
