// Package routine owns the per-day completion session: one mutable record
// per track, valid only for the calendar date it was opened on.
package routine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"sup-routine-backend/internal/store"
)

// Track selects one of the two parallel session states.
type Track string

const (
	Production Track = "production"
	Debug      Track = "debug"
)

func (t Track) storeKey() string {
	if t == Debug {
		return store.KeyDebugRoutineState
	}
	return store.KeyRoutineState
}

// Session is the stored per-day completion state.
type Session struct {
	Date      string                `json:"date"` // ISO date the session was opened on
	ThreadTS  string                `json:"thread_ts"`
	Completed map[string]Completion `json:"completed"`
}

// Completion records who marked a task done and at what time of day.
type Completion struct {
	User string `json:"user"`
	Time string `json:"time"` // "HH:MM"
}

var (
	// ErrStaleSession means the stored session was opened on an earlier
	// date: a new morning, no active thread.
	ErrStaleSession = errors.New("session is stale: new day, no active thread")

	// ErrAlreadyCompleted means the task was marked done earlier today.
	ErrAlreadyCompleted = errors.New("task was already marked as completed")
)

// Tracker reads and writes the session of each track.
type Tracker struct {
	store store.Store
	now   func() time.Time
}

func NewTracker(st store.Store, loc *time.Location) *Tracker {
	return &Tracker{
		store: st,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// NewTrackerWithClock is used by tests to pin today.
func NewTrackerWithClock(st store.Store, now func() time.Time) *Tracker {
	return &Tracker{store: st, now: now}
}

// Open starts a fresh session for today, discarding whatever the track
// held before. A new day's thread means a hard reset.
func (t *Tracker) Open(ctx context.Context, track Track, threadTS string) error {
	session := Session{
		Date:      t.today(),
		ThreadTS:  threadTS,
		Completed: map[string]Completion{},
	}
	return t.store.Update(ctx, track.storeKey(), func([]byte) ([]byte, error) {
		return json.Marshal(session)
	})
}

// Record marks a task completed by a user, at most once per task per day.
// Returns ErrStaleSession when the session is not today's and
// ErrAlreadyCompleted on a duplicate; neither mutates state.
func (t *Tracker) Record(ctx context.Context, track Track, taskKey, user string) error {
	today := t.today()
	at := t.now().Format("15:04")

	return t.store.Update(ctx, track.storeKey(), func(cur []byte) ([]byte, error) {
		session := decodeSession(cur, track)

		if session.Date != today {
			return nil, ErrStaleSession
		}
		if session.Completed == nil {
			session.Completed = map[string]Completion{}
		}
		if _, done := session.Completed[taskKey]; done {
			return nil, ErrAlreadyCompleted
		}

		session.Completed[taskKey] = Completion{User: user, Time: at}
		return json.Marshal(session)
	})
}

// Completions returns today's completion map for the track; empty when no
// session is open or nothing was recorded.
func (t *Tracker) Completions(ctx context.Context, track Track) map[string]Completion {
	session := t.Session(ctx, track)
	if session.Completed == nil {
		return map[string]Completion{}
	}
	return session.Completed
}

// ThreadTS returns the thread reference of the track's current session.
func (t *Tracker) ThreadTS(ctx context.Context, track Track) string {
	return t.Session(ctx, track).ThreadTS
}

// Session returns the raw stored session; a zero Session when absent or
// corrupted.
func (t *Tracker) Session(ctx context.Context, track Track) Session {
	data, err := t.store.Get(ctx, track.storeKey())
	if err != nil {
		slog.Error("cannot load routine state", "track", track, "error", err)
		return Session{}
	}
	return decodeSession(data, track)
}

func (t *Tracker) today() string {
	return t.now().Format("2006-01-02")
}

func decodeSession(data []byte, track Track) Session {
	if data == nil {
		return Session{}
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		slog.Error("corrupted routine state", "track", track, "error", err)
		return Session{}
	}
	return session
}
