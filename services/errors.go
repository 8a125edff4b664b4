package services

import (
	"errors"
	"fmt"
)

// Errors shared by the scoring engine, the scoreboard service and the HTTP mapping.
var (
	// Malformed input data. Surfaced to the caller, never repaired.
	ErrValidationFailed = errors.New("validation failed")
	ErrGroupSizeInvalid = fmt.Errorf("%w: group classification needs exactly %d teams", ErrValidationFailed, groupSize)

	// Data-integrity errors: the snapshot references something it does not contain.
	ErrReferenceMissing = errors.New("snapshot reference missing")
	ErrMatchNotFound    = fmt.Errorf("%w: match not found", ErrReferenceMissing)
	ErrTeamNotFound     = fmt.Errorf("%w: team not found", ErrReferenceMissing)

	ErrPlayerNotFound        = errors.New("player not found")
	ErrUnknownMatch          = errors.New("no such match")
	ErrScoreboardNotReady    = errors.New("scoreboard has not been computed yet")
	ErrFetchFailed           = errors.New("failed to fetch tournament data")
	ErrPredictionsLoadFailed = errors.New("failed to load predictions")
)
