package repository

import "errors"

// Lookup errors. Each one covers both "does not exist" and "exists but belongs to
// someone else"; callers must not be able to tell the two apart.
var (
	ErrBoardNotFound = errors.New("board not found or access denied")

	ErrListNotFound = errors.New("list not found or access denied")

	ErrCardNotFound = errors.New("card not found or access denied")

	// ErrDestinationNotFound is returned by CardRepository.Move when the target list
	// is missing or not owned by the caller.
	ErrDestinationNotFound = errors.New("destination list not found or access denied")
)
