package duty

import (
	"encoding/json"
	"net/http"
	"strings"

	"sup-routine-backend/internal/directory"
	"sup-routine-backend/internal/week"
)

// Handler exposes duty rotation to the dispatch collaborator, mirroring
// the /set-duty command flow: resolve the duty type, the employee and the
// week, validate eligibility, then assign.
type Handler struct {
	Manager *Manager
	Dir     *directory.Directory
	Weeks   *week.Resolver
}

func NewHandler(m *Manager, dir *directory.Directory, weeks *week.Resolver) *Handler {
	return &Handler{Manager: m, Dir: dir, Weeks: weeks}
}

type dutyResult struct {
	Ok      bool   `json:"ok"`
	Duty    string `json:"duty,omitempty"`
	Week    string `json:"week,omitempty"`
	User    string `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// resolveDuty accepts either a short alias ("fin") or a full duty name.
func resolveDuty(input string) (string, bool) {
	if name, ok := ResolveType(input); ok {
		return name, true
	}
	if input == "" {
		return "", false
	}
	return strings.ToUpper(input), true
}

// Assign handles POST /duty/assign.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		Duty     string `json:"duty"`
		Week     string `json:"week"`
		Username string `json:"username"`
		UserID   string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	dutyName, ok := resolveDuty(body.Duty)
	if !ok {
		json.NewEncoder(w).Encode(dutyResult{Ok: false,
			Message: "unknown duty type, available: " + strings.Join(TypeAliases(), ", ")})
		return
	}

	ctx := r.Context()
	slackID := body.UserID
	if slackID == "" {
		emp, found := h.Dir.FindByUsername(ctx, body.Username)
		if !found {
			json.NewEncoder(w).Encode(dutyResult{Ok: false, Message: "employee not found"})
			return
		}
		slackID = emp.SlackID
	}

	weekMonday, err := h.Weeks.Monday(body.Week)
	if err != nil {
		json.NewEncoder(w).Encode(dutyResult{Ok: false,
			Message: "cannot determine week, use: current, next or dd/mm"})
		return
	}

	if ok, reason := h.Manager.CanAssign(ctx, slackID, weekMonday); !ok {
		json.NewEncoder(w).Encode(dutyResult{Ok: false, Duty: dutyName, Week: weekMonday, Message: reason})
		return
	}

	if err := h.Manager.Assign(ctx, dutyName, weekMonday, slackID); err != nil {
		http.Error(w, "cannot save assignment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(dutyResult{Ok: true, Duty: dutyName, Week: weekMonday, User: slackID})
}

// Remove handles POST /duty/remove.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		Duty string `json:"duty"`
		Week string `json:"week"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	dutyName, ok := resolveDuty(body.Duty)
	if !ok {
		json.NewEncoder(w).Encode(dutyResult{Ok: false,
			Message: "unknown duty type, available: " + strings.Join(TypeAliases(), ", ")})
		return
	}

	weekMonday, err := h.Weeks.Monday(body.Week)
	if err != nil {
		json.NewEncoder(w).Encode(dutyResult{Ok: false,
			Message: "cannot determine week, use: current, next or dd/mm"})
		return
	}

	if err := h.Manager.Remove(r.Context(), dutyName, weekMonday); err != nil {
		http.Error(w, "cannot save assignment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(dutyResult{Ok: true, Duty: dutyName, Week: weekMonday})
}

// Week handles GET /duty/week?week=current.
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ref := r.URL.Query().Get("week")
	if ref == "" {
		ref = "current"
	}
	weekMonday, err := h.Weeks.Monday(ref)
	if err != nil {
		http.Error(w, "cannot determine week", http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(struct {
		Week        string            `json:"week"`
		Assignments map[string]string `json:"assignments"`
	}{weekMonday, h.Manager.ForWeek(r.Context(), weekMonday)})
}
