package usecases

import "errors"

// Validation errors surfaced to the user as re-prompts; they never reach
// the store.
var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrUnknownDirection = errors.New("direction is not in the catalog")
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrTeamNotFound     = errors.New("team not found")
)
