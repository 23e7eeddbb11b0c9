package storage

import "errors"

// Sentinel errors for the storage package. Using sentinels instead of ad-hoc
// fmt.Errorf allows callers to match with errors.Is for reliable error handling.
var (
	// ErrIssueExists is returned when creating an issue whose file is already present.
	ErrIssueExists = errors.New("issue already exists")

	// ErrIssueNotFound is returned when commenting on a file that does not exist.
	ErrIssueNotFound = errors.New("issue not found")
)
