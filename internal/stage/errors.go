package stage

import "errors"

// Sentinel errors for stage failures. All of them abort the pipeline.
var (
	// ErrBadPattern is returned when a filter pattern is not a valid regular expression.
	ErrBadPattern = errors.New("invalid pattern")

	// ErrMissingCommand is returned when the do stage has nothing to run.
	ErrMissingCommand = errors.New("no command to run")

	// ErrProjectNotFound is returned when no project matches the add project pattern.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoIssuesDir is returned when the add target has no marker directory.
	ErrNoIssuesDir = errors.New("no issues directory found")

	// ErrInvalidName is returned when an issue name would escape its directory.
	ErrInvalidName = errors.New("invalid issue name")
)
