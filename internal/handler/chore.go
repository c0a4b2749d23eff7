package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mossfield/hearth/internal/layout"
	"github.com/mossfield/hearth/internal/model"
	"github.com/mossfield/hearth/internal/notify"
	"github.com/mossfield/hearth/internal/schedule"
	"github.com/mossfield/hearth/internal/store"
	"github.com/mossfield/hearth/internal/websocket"
)

type ChoreHandler struct {
	choreStore  *store.ChoreStore
	memberStore *store.FamilyMemberStore
	detector    *notify.Detector
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewChoreHandler(cs *store.ChoreStore, ms *store.FamilyMemberStore, detector *notify.Detector, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{choreStore: cs, memberStore: ms, detector: detector, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type choreRequest struct {
	Name             string          `json:"name"`
	Icon             string          `json:"icon"`
	CustomIconURL    string          `json:"custom_icon_url"`
	NotificationTime string          `json:"notification_time"`
	DueDate          *time.Time      `json:"due_date"`
	ReminderHours    *int            `json:"reminder_hours"`
	AssignedTo       string          `json:"assigned_to"`
	AssignedToName   string          `json:"assigned_to_name"`
	EstimatedTime    int             `json:"estimated_time"`
	Location         string          `json:"location"`
	Description      string          `json:"description"`
	Position         *model.Position `json:"position"`
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.NotificationTime == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "notification_time is required"})
		return
	}

	if req.AssignedTo != "" {
		member, err := h.memberStore.GetByID(req.AssignedTo)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check family member"})
			return
		}
		if member == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "family member not found"})
			return
		}
		req.AssignedToName = member.Name
	}

	// New chores take the first free window; none free means list-only.
	position := req.Position
	if position == nil {
		existing, err := h.choreStore.List()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
			return
		}
		position = layout.AvailableWindow(existing)
	}

	chore, err := h.choreStore.Create(model.Chore{
		Name:             req.Name,
		Icon:             req.Icon,
		CustomIconURL:    req.CustomIconURL,
		Position:         position,
		NotificationTime: req.NotificationTime,
		DueDate:          req.DueDate,
		ReminderHours:    req.ReminderHours,
		AssignedTo:       req.AssignedTo,
		AssignedToName:   req.AssignedToName,
		EstimatedTime:    req.EstimatedTime,
		Location:         req.Location,
		Description:      req.Description,
	})
	if err != nil {
		h.logger.Error("create chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create chore"})
		return
	}

	h.broadcast(websocket.NewMessage("chore", "created", chore.ID, nil))

	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	chores, err := h.choreStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.choreStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get chore"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	chore, err := h.choreStore.Update(id, model.Chore{
		Name:             req.Name,
		Icon:             req.Icon,
		CustomIconURL:    req.CustomIconURL,
		Position:         req.Position,
		NotificationTime: req.NotificationTime,
		DueDate:          req.DueDate,
		ReminderHours:    req.ReminderHours,
		AssignedTo:       req.AssignedTo,
		AssignedToName:   req.AssignedToName,
		EstimatedTime:    req.EstimatedTime,
		Location:         req.Location,
		Description:      req.Description,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update chore"})
		return
	}

	h.broadcast(websocket.NewMessage("chore", "updated", id, nil))

	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.choreStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get chore"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	if err := h.choreStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete chore"})
		return
	}

	h.detector.ClearChore(id)
	h.broadcast(websocket.NewMessage("chore", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.choreStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get chore"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	var req struct {
		CompletedBy     string `json:"completed_by"`
		CompletedByName string `json:"completed_by_name"`
		TimeSpent       int    `json:"time_spent"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	if req.CompletedBy != "" && req.CompletedByName == "" {
		if member, err := h.memberStore.GetByID(req.CompletedBy); err == nil && member != nil {
			req.CompletedByName = member.Name
		}
	}

	chore, err := h.choreStore.Complete(id, req.CompletedBy, req.CompletedByName, req.TimeSpent, time.Now())
	if err != nil {
		h.logger.Error("complete chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to complete chore"})
		return
	}

	// Completion re-arms the chore's notification thresholds.
	h.detector.ClearChore(id)
	h.broadcast(websocket.NewMessage("chore", "completed", id, nil))

	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Uncomplete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	chore, err := h.choreStore.Uncomplete(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to undo completion"})
		return
	}
	if chore == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	h.broadcast(websocket.NewMessage("chore", "completion_undone", id, nil))

	writeJSON(w, http.StatusOK, chore)
}

// ResetDay clears every chore's completion state and re-arms all
// notification markers.
func (h *ChoreHandler) ResetDay(w http.ResponseWriter, r *http.Request) {
	if err := h.choreStore.ResetDay(); err != nil {
		h.logger.Error("reset day", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset day"})
		return
	}

	h.detector.Reset()
	h.broadcast(websocket.NewMessage("chore", "day_reset", "", nil))

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// dashboardEntry pairs a chore with its assigned grid cell.
type dashboardEntry struct {
	model.Chore
	GridPosition model.Position   `json:"grid_position"`
	Urgency      schedule.Urgency `json:"urgency"`
	DueSoon      bool             `json:"due_soon"`
}

// Dashboard returns the bounded, ordered home-screen subset with grid
// slots assigned in sort order.
func (h *ChoreHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	chores, err := h.choreStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}

	now := time.Now()
	displayed := schedule.Displayed(chores, now)

	entries := make([]dashboardEntry, 0, len(displayed))
	for i, c := range displayed {
		entries = append(entries, dashboardEntry{
			Chore:        c,
			GridPosition: schedule.GridSlots[i],
			Urgency:      schedule.Rank(c, now),
			DueSoon:      schedule.IsDueSoon(c, now),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"chores": entries})
}

func (h *ChoreHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user query parameter is required"})
		return
	}

	chores, err := h.choreStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}

	writeJSON(w, http.StatusOK, schedule.UserTodayStats(chores, userID, time.Now()))
}

func (h *ChoreHandler) FamilyStats(w http.ResponseWriter, r *http.Request) {
	chores, err := h.choreStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}

	writeJSON(w, http.StatusOK, schedule.FamilyTodayStats(chores, time.Now()))
}

// AdjustPositions runs the overlap-repair pass over every chore and
// persists the result.
func (h *ChoreHandler) AdjustPositions(w http.ResponseWriter, r *http.Request) {
	chores, err := h.choreStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}

	adjusted := layout.AdjustOverlapping(chores)
	if err := h.choreStore.SaveAll(adjusted); err != nil {
		h.logger.Error("adjust positions", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save positions"})
		return
	}

	h.broadcast(websocket.NewMessage("chore", "positions_adjusted", "", nil))

	writeJSON(w, http.StatusOK, adjusted)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
