package model

// Task statuses. A task with no assignment is a template and never enters
// the status machine.
const (
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusAwaiting   = "awaiting_approval"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

// ValidStatus reports whether s is one of the five task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusAwaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Schedule modes. ModeRepeat is the ad-hoc weekday-set mode; ModeWeekly
// forces Mondays and ModeMonthly the first of the month.
const (
	ModeRepeat  = "repeat"
	ModeWeekly  = "weekly"
	ModeMonthly = "monthly"
)

// Task is either a concrete per-child instance or, when AssignedTo is
// empty, a template that only defines a recurrence/reward shape.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Points      int    `json:"points"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Created     string `json:"created"`                // RFC3339
	Due         string `json:"due,omitempty"`          // YYYY-MM-DD
	ApprovedAt  string `json:"approved_at,omitempty"`  // RFC3339
	Icon        string `json:"icon,omitempty"`

	// Recurrence. RepeatDays uses 0=Mon .. 6=Sun.
	RepeatDays     []int    `json:"repeat_days,omitempty"`
	ScheduleMode   string   `json:"schedule_mode,omitempty"`
	RepeatChildIDs []string `json:"repeat_child_ids,omitempty"`
	// Back-link from a spawned instance to its template.
	RepeatTemplateID string `json:"repeat_template_id,omitempty"`

	CategoryIDs []string `json:"category_ids,omitempty"`

	PersistUntilCompleted bool `json:"persist_until_completed,omitempty"`
	QuickComplete         bool `json:"quick_complete,omitempty"`
	SkipApproval          bool `json:"skip_approval,omitempty"`
	FastestWins           bool `json:"fastest_wins,omitempty"`
	MarkOverdue           bool `json:"mark_overdue,omitempty"`

	BonusEnabled bool `json:"bonus_enabled,omitempty"`
	BonusDays    int  `json:"bonus_days,omitempty"`
	BonusPoints  int  `json:"bonus_points,omitempty"`

	CompletedTS int64 `json:"completed_ts,omitempty"` // ms epoch, 0 = unset
	CarriedOver bool  `json:"carried_over,omitempty"`

	// Fastest-wins claim state, shared across sibling instances.
	FastestWinsTemplateID string `json:"fastest_wins_template_id,omitempty"`
	ClaimedBy             string `json:"claimed_by,omitempty"`
	ClaimedByName         string `json:"claimed_by_name,omitempty"`
	ClaimTS               int64  `json:"claim_ts,omitempty"` // ms epoch
}

// IsTemplate reports whether the task is an unassigned template.
func (t *Task) IsTemplate() bool {
	return t.AssignedTo == ""
}

// Active reports whether an instance still occupies its slot: assigned,
// started, or waiting on approval.
func (t *Task) Active() bool {
	switch t.Status {
	case StatusAssigned, StatusInProgress, StatusAwaiting:
		return true
	}
	return false
}

// BonusEligible reports whether the early-completion bonus is configured.
func (t *Task) BonusEligible() bool {
	return t.BonusEnabled && t.BonusDays > 0 && t.BonusPoints > 0
}
