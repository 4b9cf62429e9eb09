package catalog

import (
	"encoding/json"
	"net/http"

	"sup-routine-backend/internal/week"
)

// Handler serves the task catalog views used to build daily and weekly
// messages.
type Handler struct {
	Catalog *Catalog
	Weeks   *week.Resolver
}

func NewHandler(c *Catalog, weeks *week.Resolver) *Handler {
	return &Handler{Catalog: c, Weeks: weeks}
}

// Tasks handles GET /tasks?day=Monday&duties=1. Without a day override
// it serves today's weekday; without duties=1 duty tasks are filtered
// out, as in the daily channel message.
func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	day := r.URL.Query().Get("day")
	if day == "" {
		day = h.Weeks.Now().Weekday().String()
	}

	ctx := r.Context()
	var tasks []Task
	if r.URL.Query().Get("duties") == "1" {
		tasks = h.Catalog.ForWeekday(ctx, day)
	} else {
		tasks = h.Catalog.RegularForWeekday(ctx, day)
	}
	if tasks == nil {
		tasks = []Task{}
	}

	json.NewEncoder(w).Encode(struct {
		Day   string `json:"day"`
		Tasks []Task `json:"tasks"`
	}{day, tasks})
}

// Duties handles GET /tasks/duties: the duty tasks of the catalog.
func (h *Handler) Duties(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	duties := h.Catalog.DutyTasks(r.Context())
	if duties == nil {
		duties = []Task{}
	}
	json.NewEncoder(w).Encode(duties)
}
