package store

import (
	"time"

	"github.com/cogbench/cogbench/trial"
)

// DB is the results storage interface.
type DB interface {
	// SaveResult persists a completed session and its summary. An
	// existing record with the same start time is overwritten.
	SaveResult(res *Result) error
	// GetResults returns saved results according to the time and game
	// constraints
	GetResults(
		startTime, endTime time.Time,
		games []trial.GameID,
	) ([]Result, error)
	// DeleteResults deletes one or more saved results
	DeleteResults(results []Result) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
