package routine

import (
	"encoding/json"
	"errors"
	"net/http"

	"sup-routine-backend/internal/catalog"
)

// Handler exposes the completion tracker to the dispatch collaborator.
type Handler struct {
	Tracker *Tracker
	Catalog *catalog.Catalog
}

func NewHandler(tracker *Tracker, cat *catalog.Catalog) *Handler {
	return &Handler{Tracker: tracker, Catalog: cat}
}

func trackFrom(debug bool) Track {
	if debug {
		return Debug
	}
	return Production
}

// OpenSession handles POST /session/open: a new day's thread was posted.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		ThreadTS string `json:"thread_ts"`
		Debug    bool   `json:"debug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.ThreadTS == "" {
		http.Error(w, "thread_ts is required", http.StatusBadRequest)
		return
	}

	if err := h.Tracker.Open(r.Context(), trackFrom(body.Debug), body.ThreadTS); err != nil {
		http.Error(w, "cannot open session", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// RecordCompletion handles POST /session/complete. The dispatch layer may
// send the task key directly, or the raw message text to extract it from.
func (h *Handler) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		Task  string `json:"task"`
		Text  string `json:"text"`
		User  string `json:"user"`
		Debug bool   `json:"debug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.User == "" {
		http.Error(w, "user is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	taskKey := body.Task
	if taskKey == "" && body.Text != "" {
		taskKey = h.Catalog.FindInText(ctx, body.Text)
	}
	if taskKey == "" {
		json.NewEncoder(w).Encode(recordResult{Ok: false, Message: "could not tell which task is meant"})
		return
	}

	err := h.Tracker.Record(ctx, trackFrom(body.Debug), taskKey, body.User)
	switch {
	case errors.Is(err, ErrStaleSession):
		json.NewEncoder(w).Encode(recordResult{Ok: false, Task: taskKey, Message: ErrStaleSession.Error()})
		return
	case errors.Is(err, ErrAlreadyCompleted):
		json.NewEncoder(w).Encode(recordResult{Ok: false, Task: taskKey, Message: ErrAlreadyCompleted.Error()})
		return
	case err != nil:
		http.Error(w, "cannot record completion", http.StatusInternalServerError)
		return
	}

	result := recordResult{Ok: true, Task: taskKey}
	deadline := h.Catalog.Deadlines(ctx)[taskKey]
	if delay, late := Lateness(deadline, h.Tracker.now()); late {
		result.Late = true
		result.Delay = FormatDelay(delay)
	}
	json.NewEncoder(w).Encode(result)
}

type recordResult struct {
	Ok      bool   `json:"ok"`
	Task    string `json:"task,omitempty"`
	Late    bool   `json:"late,omitempty"`
	Delay   string `json:"delay,omitempty"`
	Message string `json:"message,omitempty"`
}

// Completions handles GET /session/completions?debug=1.
func (h *Handler) Completions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	track := trackFrom(r.URL.Query().Get("debug") == "1")
	session := h.Tracker.Session(r.Context(), track)
	if session.Completed == nil {
		session.Completed = map[string]Completion{}
	}
	json.NewEncoder(w).Encode(session)
}

// Outstanding handles GET /session/outstanding: the reminder view of
// still-open and overdue tasks for today.
func (h *Handler) OutstandingTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	track := trackFrom(r.URL.Query().Get("debug") == "1")
	ctx := r.Context()
	now := h.Tracker.now()

	tasks := h.Catalog.RegularForWeekday(ctx, now.Weekday().String())
	incomplete, overdue := Outstanding(tasks, h.Tracker.Completions(ctx, track), now)

	json.NewEncoder(w).Encode(struct {
		Incomplete []catalog.Task `json:"incomplete"`
		Overdue    []catalog.Task `json:"overdue"`
	}{incomplete, overdue})
}
