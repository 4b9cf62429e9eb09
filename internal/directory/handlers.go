package directory

import (
	"encoding/json"
	"net/http"
)

// Handler serves directory lookups and the per-task assignment map.
type Handler struct {
	Dir *Directory
}

func NewHandler(d *Directory) *Handler {
	return &Handler{Dir: d}
}

// Working handles GET /employees/working?date=dd/mm&period=morning.
func (h *Handler) Working(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query()
	date, period := q.Get("date"), q.Get("period")
	if date == "" || period == "" {
		http.Error(w, "date and period are required", http.StatusBadRequest)
		return
	}

	employees := h.Dir.WorkingOn(r.Context(), date, period)
	if employees == nil {
		employees = []Employee{}
	}
	json.NewEncoder(w).Encode(employees)
}

// Assignments handles the per-task assignee map:
// GET returns the whole map, POST sets or (with empty user_id) removes
// one assignment.
func (h *Handler) Assignments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(h.Dir.TaskAssignments(ctx))

	case http.MethodPost:
		var body struct {
			Task   string `json:"task"`
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Task == "" {
			http.Error(w, "task is required", http.StatusBadRequest)
			return
		}
		if err := h.Dir.SetAssignment(ctx, body.Task, body.UserID); err != nil {
			http.Error(w, "cannot save assignment", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// SpecialDate handles GET /special?date=dd/mm.
func (h *Handler) SpecialDate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	sd, ok := h.Dir.CheckSpecialDate(r.Context(), date)
	json.NewEncoder(w).Encode(struct {
		Special     bool   `json:"special"`
		Type        string `json:"type,omitempty"`
		Description string `json:"description,omitempty"`
	}{ok, sd.Type, sd.Description})
}
