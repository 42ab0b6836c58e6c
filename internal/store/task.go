package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skovlund/choreboard/internal/bonus"
	"github.com/skovlund/choreboard/internal/claim"
	"github.com/skovlund/choreboard/internal/model"
	"github.com/skovlund/choreboard/internal/recurrence"
)

const dueLayout = "2006-01-02"

// CreateTaskParams carries the create_task command arguments. RepeatDays
// accepts mixed weekday tokens (ints or day names); bad tokens and unknown
// category ids are filtered silently.
type CreateTaskParams struct {
	Title          string
	Points         int
	Description    string
	Due            string
	AssignedTo     string
	Icon           string
	RepeatDays     []any
	ScheduleMode   string
	RepeatChildIDs []string
	CategoryIDs    []string

	PersistUntilCompleted bool
	QuickComplete         bool
	SkipApproval          bool
	FastestWins           bool
	MarkOverdue           bool

	BonusEnabled bool
	BonusDays    int
	BonusPoints  int
}

// CreateTask builds a task with normalized recurrence fields. A task
// created without an assignment is a template; a bonus-eligible template
// immediately spawns instances for its target children.
func (s *Store) CreateTask(p CreateTaskParams) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.AssignedTo != "" && s.childIndex(p.AssignedTo) < 0 {
		return nil, ErrNotFound
	}
	for _, cid := range p.RepeatChildIDs {
		if s.childIndex(cid) < 0 {
			return nil, ErrNotFound
		}
	}

	mode, days := recurrence.Normalize(p.ScheduleMode, recurrence.NormalizeDays(p.RepeatDays))
	t := model.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(p.Title),
		Points:      p.Points,
		AssignedTo:  p.AssignedTo,
		Description: strings.TrimSpace(p.Description),
		Created:     s.nowRFC3339(),
		Due:         strings.TrimSpace(p.Due),
		Icon:        strings.TrimSpace(p.Icon),

		RepeatDays:     days,
		ScheduleMode:   mode,
		RepeatChildIDs: append([]string(nil), p.RepeatChildIDs...),
		CategoryIDs:    s.knownCategories(p.CategoryIDs),

		PersistUntilCompleted: p.PersistUntilCompleted,
		QuickComplete:         p.QuickComplete,
		SkipApproval:          p.SkipApproval,
		FastestWins:           p.FastestWins,
		MarkOverdue:           p.MarkOverdue,

		BonusEnabled: p.BonusEnabled,
		BonusDays:    p.BonusDays,
		BonusPoints:  p.BonusPoints,
	}
	if t.AssignedTo != "" {
		t.Status = model.StatusAssigned
	}
	// Weekly/monthly templates hand carry-over control to the schedule.
	if t.IsTemplate() && (mode == model.ModeWeekly || mode == model.ModeMonthly) {
		t.PersistUntilCompleted = false
	}
	s.snap.Tasks = append(s.snap.Tasks, t)

	if t.IsTemplate() && t.BonusEligible() {
		s.spawnBonusInstances(t.ID)
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := cloneTask(&s.snap.Tasks[s.taskIndex(t.ID)])
	return &out, nil
}

// AssignTask assigns a task to a child. A template is never mutated:
// assigning one spawns a fresh instance copying its reward shape. An
// existing instance is reassigned in place and reset to assigned.
func (s *Store) AssignTask(taskID, childID string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.taskIndex(taskID)
	if ti < 0 || s.childIndex(childID) < 0 {
		return nil, ErrNotFound
	}

	if s.snap.Tasks[ti].IsTemplate() {
		tpl := cloneTask(&s.snap.Tasks[ti])
		inst := s.spawnInstance(tpl, childID, spawnOpts{
			due:     tpl.Due,
			persist: tpl.PersistUntilCompleted,
			link:    recurrence.Scheduled(&tpl),
		})
		if err := s.save(); err != nil {
			return nil, err
		}
		s.dataChanged()
		return &inst, nil
	}

	t := &s.snap.Tasks[ti]
	t.AssignedTo = childID
	t.Status = model.StatusAssigned
	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := cloneTask(t)
	return &out, nil
}

// SetTaskStatus moves a task through the status machine. For fastest-wins
// tasks leaving assigned, the claim is resolved first: losing the race
// persists the winner's identity on this copy and fails ErrAlreadyClaimed
// with no status change. Re-entering assigned resets the creation
// timestamp; reaching awaiting_approval on a skip-approval task cascades
// straight into approval.
func (s *Store) SetTaskStatus(taskID, status string, completedTS *int64) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	ti := s.taskIndex(taskID)
	if ti < 0 {
		return nil, ErrNotFound
	}
	if s.snap.Tasks[ti].IsTemplate() {
		return nil, ErrNotAssigned
	}

	t := &s.snap.Tasks[ti]
	leavingAssigned := t.Status == model.StatusAssigned &&
		(status == model.StatusInProgress || status == model.StatusAwaiting)
	if t.FastestWins && leavingAssigned {
		var name string
		if ci := s.childIndex(t.AssignedTo); ci >= 0 {
			name = s.snap.Children[ci].Name
		}
		res := claim.Resolve(s.snap.Tasks, ti, t.AssignedTo, name,
			s.clock.Now().UnixMilli(), s.clock.Now().Location())
		if !res.Won {
			// The loser's copy keeps the claim metadata so callers can
			// show who got there first.
			if err := s.save(); err != nil {
				return nil, err
			}
			s.dataChanged()
			return nil, ErrAlreadyClaimed
		}
	}

	t.Status = status
	switch status {
	case model.StatusAssigned:
		t.Created = s.nowRFC3339()
		t.CompletedTS = 0
	case model.StatusAwaiting:
		if completedTS != nil {
			t.CompletedTS = *completedTS
		} else if t.CompletedTS == 0 {
			t.CompletedTS = s.clock.Now().UnixMilli()
		}
	default:
		if completedTS != nil {
			t.CompletedTS = *completedTS
		}
	}

	if status == model.StatusAwaiting && t.SkipApproval {
		return s.approveLocked(ti)
	}

	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := cloneTask(t)
	return &out, nil
}

// ApproveTask marks a task approved and credits the assignee with its
// points plus any early-completion bonus.
func (s *Store) ApproveTask(taskID string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.taskIndex(taskID)
	if ti < 0 {
		return nil, ErrNotFound
	}
	return s.approveLocked(ti)
}

// approveLocked finishes an approval with mu held. If the task links to a
// scheduled template, the child's next occurrence is spawned ahead of the
// rollover so the early-completion window stays open continuously.
func (s *Store) approveLocked(ti int) (*model.Task, error) {
	t := &s.snap.Tasks[ti]
	if t.AssignedTo == "" {
		return nil, ErrNotAssigned
	}
	ci := s.childIndex(t.AssignedTo)
	if ci < 0 {
		return nil, ErrNotFound
	}

	t.Status = model.StatusApproved
	t.ApprovedAt = s.nowRFC3339()
	t.CarriedOver = false

	award := t.Points + bonus.Compute(t, s.clock.Now().Location())
	s.snap.Children[ci].Points += award
	s.logger.Debug("task approved", "task_id", t.ID, "child_id", t.AssignedTo, "award", award)

	taskID, childID, tplID := t.ID, t.AssignedTo, t.RepeatTemplateID
	if tplID != "" {
		if pi := s.taskIndex(tplID); pi >= 0 {
			tpl := cloneTask(&s.snap.Tasks[pi])
			if tpl.IsTemplate() && recurrence.Scheduled(&tpl) {
				s.spawnNextOccurrence(tpl, childID)
			}
		}
	}

	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := cloneTask(&s.snap.Tasks[s.taskIndex(taskID)])
	return &out, nil
}

// UpdateTaskParams carries partial task updates; nil fields are untouched.
type UpdateTaskParams struct {
	Title       *string
	Points      *int
	Description *string
	Due         *string
	Icon        *string
	CategoryIDs *[]string

	PersistUntilCompleted *bool
	QuickComplete         *bool
	SkipApproval          *bool
	FastestWins           *bool
	MarkOverdue           *bool

	BonusEnabled *bool
	BonusDays    *int
	BonusPoints  *int
}

func applyTaskUpdate(t *model.Task, p UpdateTaskParams, categories []string) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Points != nil {
		t.Points = *p.Points
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Due != nil {
		t.Due = strings.TrimSpace(*p.Due)
	}
	if p.Icon != nil {
		t.Icon = strings.TrimSpace(*p.Icon)
	}
	if p.CategoryIDs != nil {
		t.CategoryIDs = append([]string(nil), categories...)
	}
	if p.PersistUntilCompleted != nil {
		t.PersistUntilCompleted = *p.PersistUntilCompleted
	}
	if p.QuickComplete != nil {
		t.QuickComplete = *p.QuickComplete
	}
	if p.SkipApproval != nil {
		t.SkipApproval = *p.SkipApproval
	}
	if p.FastestWins != nil {
		t.FastestWins = *p.FastestWins
	}
	if p.MarkOverdue != nil {
		t.MarkOverdue = *p.MarkOverdue
	}
	if p.BonusEnabled != nil {
		t.BonusEnabled = *p.BonusEnabled
	}
	if p.BonusDays != nil {
		t.BonusDays = *p.BonusDays
	}
	if p.BonusPoints != nil {
		t.BonusPoints = *p.BonusPoints
	}
}

// UpdateTask mutates only the supplied fields. Editing a template
// propagates the changed display and behavior fields (never status or
// history) to every non-approved instance linked to it, and re-triggers
// the eager bonus spawn.
func (s *Store) UpdateTask(taskID string, p UpdateTaskParams) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.taskIndex(taskID)
	if ti < 0 {
		return nil, ErrNotFound
	}

	var categories []string
	if p.CategoryIDs != nil {
		categories = s.knownCategories(*p.CategoryIDs)
	}

	t := &s.snap.Tasks[ti]
	applyTaskUpdate(t, p, categories)

	if t.IsTemplate() {
		for i := range s.snap.Tasks {
			inst := &s.snap.Tasks[i]
			if inst.RepeatTemplateID != taskID || inst.Status == model.StatusApproved {
				continue
			}
			applyTaskUpdate(inst, p, categories)
		}
		if s.snap.Tasks[ti].BonusEligible() {
			s.spawnBonusInstances(taskID)
		}
	}

	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := cloneTask(&s.snap.Tasks[s.taskIndex(taskID)])
	return &out, nil
}

// SetTaskRepeat replaces a task's schedule: weekday tokens are normalized
// (bad tokens dropped), weekly mode forces Monday, monthly mode drops the
// weekday set, and weekly/monthly templates cannot retain
// persist-until-completed.
func (s *Store) SetTaskRepeat(taskID string, days []any, childIDs []string, mode string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.taskIndex(taskID)
	if ti < 0 {
		return nil, ErrNotFound
	}
	for _, cid := range childIDs {
		if s.childIndex(cid) < 0 {
			return nil, ErrNotFound
		}
	}

	normMode, normDays := recurrence.Normalize(mode, recurrence.NormalizeDays(days))
	t := &s.snap.Tasks[ti]
	t.ScheduleMode = normMode
	t.RepeatDays = normDays
	t.RepeatChildIDs = append([]string(nil), childIDs...)
	if t.IsTemplate() && (normMode == model.ModeWeekly || normMode == model.ModeMonthly) {
		t.PersistUntilCompleted = false
	}

	if t.IsTemplate() && t.BonusEligible() {
		s.spawnBonusInstances(taskID)
	}

	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := cloneTask(&s.snap.Tasks[s.taskIndex(taskID)])
	return &out, nil
}

// SetTaskIcon replaces a task's icon.
func (s *Store) SetTaskIcon(taskID, icon string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.taskIndex(taskID)
	if ti < 0 {
		return ErrNotFound
	}
	s.snap.Tasks[ti].Icon = strings.TrimSpace(icon)
	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}

// DeleteTask removes a task unconditionally. No cascade: instances spawned
// from a deleted template live on.
func (s *Store) DeleteTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.taskIndex(taskID)
	if ti < 0 {
		return ErrNotFound
	}
	s.snap.Tasks = append(s.snap.Tasks[:ti], s.snap.Tasks[ti+1:]...)
	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}

// --- Spawning (mu held) ---

type spawnOpts struct {
	due     string
	persist bool
	link    bool
}

// spawnInstance appends a fresh instance copying the template's reward
// shape. Repeat fields are never copied; the back-link is set only when
// the template is scheduled.
func (s *Store) spawnInstance(tpl model.Task, childID string, opts spawnOpts) model.Task {
	inst := model.Task{
		ID:          uuid.NewString(),
		Title:       tpl.Title,
		Points:      tpl.Points,
		AssignedTo:  childID,
		Status:      model.StatusAssigned,
		Description: tpl.Description,
		Created:     s.nowRFC3339(),
		Due:         opts.due,
		Icon:        tpl.Icon,
		CategoryIDs: append([]string(nil), tpl.CategoryIDs...),

		PersistUntilCompleted: opts.persist,
		QuickComplete:         tpl.QuickComplete,
		SkipApproval:          tpl.SkipApproval,
		FastestWins:           tpl.FastestWins,
		MarkOverdue:           tpl.MarkOverdue,

		BonusEnabled: tpl.BonusEnabled,
		BonusDays:    tpl.BonusDays,
		BonusPoints:  tpl.BonusPoints,
	}
	if opts.link {
		inst.RepeatTemplateID = tpl.ID
	}
	if tpl.FastestWins {
		inst.FastestWinsTemplateID = tpl.ID
	}
	s.snap.Tasks = append(s.snap.Tasks, inst)
	return inst
}

// hasActiveInstance reports whether childID already has an active instance
// of the template. The primary check is the repeat_template_id back-link;
// legacy instances without one match on same-day creation and title.
func (s *Store) hasActiveInstance(tpl model.Task, childID string, today time.Time) bool {
	for i := range s.snap.Tasks {
		t := &s.snap.Tasks[i]
		if t.IsTemplate() || t.AssignedTo != childID || !t.Active() {
			continue
		}
		if t.RepeatTemplateID == tpl.ID {
			return true
		}
		if t.RepeatTemplateID == "" && t.Title == tpl.Title {
			if created, ok := s.localDate(t.Created); ok && created.Equal(today) {
				return true
			}
		}
	}
	return false
}

// spawnBonusInstances is the eager spawn path: a bonus-eligible template
// immediately materializes an instance per target child, due on the next
// schedule occurrence (today included), with persist-until-completed
// forced so the instance survives rollovers until its day.
func (s *Store) spawnBonusInstances(tplID string) {
	pi := s.taskIndex(tplID)
	if pi < 0 {
		return
	}
	tpl := cloneTask(&s.snap.Tasks[pi])
	if !tpl.IsTemplate() || !tpl.BonusEligible() {
		return
	}
	mode, days := recurrence.Normalize(tpl.ScheduleMode, tpl.RepeatDays)
	today := s.clock.Today()
	due := recurrence.NextOccurrence(mode, days, today).Format(dueLayout)
	for _, childID := range tpl.RepeatChildIDs {
		if s.childIndex(childID) < 0 {
			s.logger.Debug("bonus spawn: unknown target child", "template_id", tplID, "child_id", childID)
			continue
		}
		if s.hasActiveInstance(tpl, childID, today) {
			continue
		}
		s.spawnInstance(tpl, childID, spawnOpts{due: due, persist: true, link: true})
	}
}

// spawnNextOccurrence pre-spawns the child's next instance after an
// approval, due strictly after today so the same slot is not doubled.
func (s *Store) spawnNextOccurrence(tpl model.Task, childID string) {
	if s.childIndex(childID) < 0 {
		return
	}
	today := s.clock.Today()
	if s.hasActiveInstance(tpl, childID, today) {
		return
	}
	mode, days := recurrence.Normalize(tpl.ScheduleMode, tpl.RepeatDays)
	next := recurrence.NextOccurrence(mode, days, today.AddDate(0, 0, 1))
	s.spawnInstance(tpl, childID, spawnOpts{due: next.Format(dueLayout), persist: true, link: true})
}
