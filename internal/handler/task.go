package handler

import (
	"net/http"
	"strings"

	"github.com/skovlund/choreboard/internal/store"
)

type TaskHandler struct {
	store *store.Store
}

func NewTaskHandler(s *store.Store) *TaskHandler {
	return &TaskHandler{store: s}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Tasks())
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.Task(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type createTaskRequest struct {
	Title          string   `json:"title"`
	Points         int      `json:"points"`
	Description    string   `json:"description"`
	Due            string   `json:"due"`
	AssignedTo     string   `json:"assigned_to"`
	Icon           string   `json:"icon"`
	RepeatDays     []any    `json:"repeat_days"`
	ScheduleMode   string   `json:"schedule_mode"`
	RepeatChildIDs []string `json:"repeat_child_ids"`
	CategoryIDs    []string `json:"category_ids"`

	PersistUntilCompleted bool `json:"persist_until_completed"`
	QuickComplete         bool `json:"quick_complete"`
	SkipApproval          bool `json:"skip_approval"`
	FastestWins           bool `json:"fastest_wins"`
	MarkOverdue           bool `json:"mark_overdue"`

	BonusEnabled bool `json:"bonus_enabled"`
	BonusDays    int  `json:"bonus_days"`
	BonusPoints  int  `json:"bonus_points"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	t, err := h.store.CreateTask(store.CreateTaskParams{
		Title:          req.Title,
		Points:         req.Points,
		Description:    req.Description,
		Due:            req.Due,
		AssignedTo:     req.AssignedTo,
		Icon:           req.Icon,
		RepeatDays:     req.RepeatDays,
		ScheduleMode:   req.ScheduleMode,
		RepeatChildIDs: req.RepeatChildIDs,
		CategoryIDs:    req.CategoryIDs,

		PersistUntilCompleted: req.PersistUntilCompleted,
		QuickComplete:         req.QuickComplete,
		SkipApproval:          req.SkipApproval,
		FastestWins:           req.FastestWins,
		MarkOverdue:           req.MarkOverdue,

		BonusEnabled: req.BonusEnabled,
		BonusDays:    req.BonusDays,
		BonusPoints:  req.BonusPoints,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

type assignRequest struct {
	ChildID string `json:"child_id"`
}

func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.store.AssignTask(r.PathValue("id"), req.ChildID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type statusRequest struct {
	Status      string `json:"status"`
	CompletedTS *int64 `json:"completed_ts"`
}

func (h *TaskHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.store.SetTaskStatus(r.PathValue("id"), req.Status, req.CompletedTS)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.ApproveTask(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type updateTaskRequest struct {
	Title       *string   `json:"title"`
	Points      *int      `json:"points"`
	Description *string   `json:"description"`
	Due         *string   `json:"due"`
	Icon        *string   `json:"icon"`
	CategoryIDs *[]string `json:"category_ids"`

	PersistUntilCompleted *bool `json:"persist_until_completed"`
	QuickComplete         *bool `json:"quick_complete"`
	SkipApproval          *bool `json:"skip_approval"`
	FastestWins           *bool `json:"fastest_wins"`
	MarkOverdue           *bool `json:"mark_overdue"`

	BonusEnabled *bool `json:"bonus_enabled"`
	BonusDays    *int  `json:"bonus_days"`
	BonusPoints  *int  `json:"bonus_points"`
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.store.UpdateTask(r.PathValue("id"), store.UpdateTaskParams{
		Title:       req.Title,
		Points:      req.Points,
		Description: req.Description,
		Due:         req.Due,
		Icon:        req.Icon,
		CategoryIDs: req.CategoryIDs,

		PersistUntilCompleted: req.PersistUntilCompleted,
		QuickComplete:         req.QuickComplete,
		SkipApproval:          req.SkipApproval,
		FastestWins:           req.FastestWins,
		MarkOverdue:           req.MarkOverdue,

		BonusEnabled: req.BonusEnabled,
		BonusDays:    req.BonusDays,
		BonusPoints:  req.BonusPoints,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type repeatRequest struct {
	Days     []any    `json:"days"`
	ChildIDs []string `json:"child_ids"`
	Mode     string   `json:"mode"`
}

func (h *TaskHandler) SetRepeat(w http.ResponseWriter, r *http.Request) {
	var req repeatRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.store.SetTaskRepeat(r.PathValue("id"), req.Days, req.ChildIDs, req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type iconRequest struct {
	Icon string `json:"icon"`
}

func (h *TaskHandler) SetIcon(w http.ResponseWriter, r *http.Request) {
	var req iconRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.SetTaskIcon(r.PathValue("id"), req.Icon); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTask(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rollover triggers the daily housekeeping pass manually.
func (h *TaskHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DailyRollover(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
