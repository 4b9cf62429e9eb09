package remote

import (
	"encoding/json"
	"net/http"

	"sup-routine-backend/internal/week"
)

// Handler exposes the remote-day scheduler to the dispatch collaborator.
type Handler struct {
	Scheduler *Scheduler
	Weeks     *week.Resolver
}

func NewHandler(s *Scheduler, weeks *week.Resolver) *Handler {
	return &Handler{Scheduler: s, Weeks: weeks}
}

type remoteResult struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Set handles POST /remote/set.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		Employee string   `json:"employee"` // directory id or messaging id
		Week     string   `json:"week"`
		Dates    []string `json:"dates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if body.Week == "" {
		body.Week = "next"
	}
	monday, err := h.Weeks.Monday(body.Week)
	if err != nil {
		json.NewEncoder(w).Encode(remoteResult{Ok: false,
			Message: "cannot determine week, use: current, next or dd/mm"})
		return
	}

	ok, msg := h.Scheduler.Set(r.Context(), body.Employee, monday, body.Dates)
	json.NewEncoder(w).Encode(remoteResult{Ok: ok, Message: msg})
}

// Clear handles POST /remote/clear.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		Employee string `json:"employee"`
		Week     string `json:"week"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if body.Week == "" {
		body.Week = "next"
	}
	monday, err := h.Weeks.Monday(body.Week)
	if err != nil {
		json.NewEncoder(w).Encode(remoteResult{Ok: false,
			Message: "cannot determine week, use: current, next or dd/mm"})
		return
	}

	ok, msg := h.Scheduler.Clear(r.Context(), body.Employee, monday)
	json.NewEncoder(w).Encode(remoteResult{Ok: ok, Message: msg})
}

// OnDate handles GET /remote/on?date=dd/mm.
func (h *Handler) OnDate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	employees := h.Scheduler.OnDate(r.Context(), date)
	json.NewEncoder(w).Encode(employees)
}

// Summary handles GET /remote/summary?week=next (the default).
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ref := r.URL.Query().Get("week")
	var (
		sum WeekSummary
		err error
	)
	if ref == "" || ref == "next" {
		sum, err = h.Scheduler.NextWeekSummary(r.Context())
	} else {
		var monday string
		monday, err = h.Weeks.Monday(ref)
		if err == nil {
			sum, err = h.Scheduler.Summary(r.Context(), monday)
		}
	}
	if err != nil {
		http.Error(w, "cannot determine week", http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(sum)
}
