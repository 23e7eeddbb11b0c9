// Package storage creates issue files and appends comments to them.
//
// Issue files are plain text. They are created empty, only ever appended
// to, and never rewritten or deleted.
package storage

import "time"

// TimestampFormat is the layout of the time in a comment header.
const TimestampFormat = "2006-01-02 15:04:05"

// Comment is one block appended to an issue file.
type Comment struct {
	// User is written in the header line.
	User string

	// Time is written in the header line using TimestampFormat.
	Time time.Time

	// Message is the free text below the header (may be empty).
	Message string
}

// Storage is the interface for persisting issue files.
type Storage interface {
	// Create makes an empty issue file, creating parent directories.
	// Returns ErrIssueExists if the file is already there.
	Create(path string) error

	// AppendComment adds a comment block to an existing issue file.
	// Returns ErrIssueNotFound if there is no such file.
	AppendComment(path string, c Comment) error
}
