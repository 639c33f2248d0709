package usecase

import "errors"

var (
	// ErrInvalidInput rejects a run or query before anything is read.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the league has no reference data to verify against.
	ErrNotFound = errors.New("resource not found")
	// ErrInconsistentData marks reference data that cannot be trusted, such as
	// one alias mapped to two participants.
	ErrInconsistentData = errors.New("inconsistent reference data")
	// ErrDependencyUnavailable wraps failures of the store or source reader.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
