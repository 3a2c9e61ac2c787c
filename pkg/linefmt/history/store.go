// Package history records generator runs so repeated runs over the same
// input can be compared.
package history

import (
	"errors"
	"time"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Record describes one generator run.
type Record struct {
	RunID      string
	Input      string
	Output     string
	Lines      int
	Bytes      int64
	Digest     string // hex SHA-256 of the output, empty on failure
	Status     Status
	ErrorKind  string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store persists run records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a record, replacing any record with the same RunID.
	Save(rec Record) error

	// Load retrieves a record by run ID.
	// Returns ErrNotFound if the run doesn't exist.
	Load(runID string) (Record, error)

	// Latest returns the most recent successful run for input.
	// Returns ErrNotFound if there is none.
	Latest(input string) (Record, error)

	// List returns up to limit records, newest first. A limit <= 0 returns
	// every record.
	List(limit int) ([]Record, error)

	// Delete removes a record. Returns nil if it doesn't exist.
	Delete(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for history operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("run not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")

	// ErrInvalidRecord indicates a record without a run ID.
	ErrInvalidRecord = errors.New("record requires a run ID")
)
