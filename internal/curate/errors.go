package curate

import "errors"

var (
	// ErrAlreadyApplied rejects a second apply in the same run.
	ErrAlreadyApplied = errors.New("saved selections have already been applied in this run")

	// ErrNoSavedSelections rejects apply when nothing is saved for the current level.
	ErrNoSavedSelections = errors.New("no saved selections for this level")
)
