// Package store is the persistence boundary: named JSON documents with
// optimistic read-modify-write updates. Two backends are provided, Redis
// and Postgres, plus an in-memory one for tests.
package store

import (
	"context"
	"errors"
)

// Document keys used by the engine.
const (
	KeyRoutineState      = "routine_state"
	KeyDebugRoutineState = "debug_routine_state"
	KeyTaskBase          = "task_base"
	KeyEmployees         = "employees"
	KeyDutyAssignments   = "weekly_duty_assignments"
	KeyTaskAssignments   = "task_assignments"
	KeySpecialDates      = "special_dates"
)

// ErrConflict is returned by Update when another writer changed the
// document on every retry attempt.
var ErrConflict = errors.New("store: concurrent modification")

// maxUpdateRetries bounds the optimistic-concurrency retry loop.
const maxUpdateRetries = 5

// Store is a flat key-to-document blob store. Documents are whole JSON
// blobs; there are no field-level operations.
type Store interface {
	// Get returns the raw document, or nil with no error if the key is
	// absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Update applies fn to the current document (nil if absent) and
	// persists the result, retrying on concurrent modification. An error
	// from fn aborts the update and is returned unchanged.
	Update(ctx context.Context, key string, fn func(cur []byte) ([]byte, error)) error

	// Ping verifies connectivity. Callers treat a failed Ping at startup
	// as fatal.
	Ping(ctx context.Context) error

	Close() error
}
