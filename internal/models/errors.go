package models

import "errors"

// Validation error kinds. Callers match these with errors.Is; every
// wrapped error carries the offending field or identifier in its message.
var (
	// ErrInvalidDuration indicates a session duration outside [10, 300] minutes.
	ErrInvalidDuration = errors.New("invalid session duration")

	// ErrInsufficientParticipants indicates fewer than 2 participant identifiers.
	ErrInsufficientParticipants = errors.New("insufficient participants")

	// ErrDuplicateParticipant indicates a repeated identifier in a roster.
	ErrDuplicateParticipant = errors.New("duplicate participant")

	// ErrInvalidProfile indicates a participant profile violating a field invariant.
	ErrInvalidProfile = errors.New("invalid participant profile")

	// ErrInvalidParameter indicates an out-of-range configuration or call parameter.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidEvent indicates an interaction event violating a field invariant.
	ErrInvalidEvent = errors.New("invalid interaction event")

	// ErrSessionNotFound indicates an unknown session identifier in the archive.
	ErrSessionNotFound = errors.New("session not found")
)
