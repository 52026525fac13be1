package game

import "errors"

// Sentinel errors for game rule violations. Controllers map these onto HTTP
// statuses; none of them are fatal to the process.
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a missing habit, equipment item, or theme.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyCompletedToday marks a repeated completion or check-in
	// within the same calendar day.
	ErrAlreadyCompletedToday = errors.New("already completed today")
	// ErrNotUnlocked marks an action on an item the user does not own.
	ErrNotUnlocked = errors.New("not unlocked")
	// ErrPermissionDenied marks an ownership mismatch.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrIntegrityConflict marks duplicate resource creation, e.g. during
	// seeding.
	ErrIntegrityConflict = errors.New("resource already exists")
)
