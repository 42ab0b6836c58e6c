// Package store owns the household aggregate: children, tasks, categories,
// shop items, purchases and settings. Every mutation runs under one mutex
// (single logical writer), persists the full snapshot synchronously, then
// emits change notifications. Reads clone under the same mutex so display
// code always sees a consistent snapshot.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skovlund/choreboard/internal/actions"
	"github.com/skovlund/choreboard/internal/clock"
	"github.com/skovlund/choreboard/internal/model"
)

// Persister loads and saves full snapshots.
type Persister interface {
	Load() (*model.Snapshot, error)
	Save(*model.Snapshot) error
}

// Notifier receives fire-and-forget change signals after successful
// mutations.
type Notifier interface {
	DataChanged()
	ChildrenChanged()
}

// ActionRunner executes a purchase's step sequence.
type ActionRunner interface {
	Run(ctx context.Context, steps []model.ActionStep)
}

// ImageStore removes shop item image assets.
type ImageStore interface {
	Remove(ref string) error
}

// Options collects the store's collaborators. Persister and Clock are
// required; the rest degrade to no-ops when nil.
type Options struct {
	Persister Persister
	Clock     clock.Clock
	Notifier  Notifier
	Actions   ActionRunner
	Images    ImageStore
	Logger    *slog.Logger
}

// Store is the single owned aggregate.
type Store struct {
	mu      sync.Mutex
	snap    model.Snapshot
	persist Persister
	clock   clock.Clock
	notify  Notifier
	runner  ActionRunner
	images  ImageStore
	logger  *slog.Logger

	// Context for in-flight action sequences; cancelled on Close.
	actionCtx    context.Context
	actionCancel context.CancelFunc
}

func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		snap: model.Snapshot{
			Version:  model.SnapshotVersion,
			Settings: make(map[string]string),
		},
		persist:      opts.Persister,
		clock:        opts.Clock,
		notify:       opts.Notifier,
		runner:       opts.Actions,
		images:       opts.Images,
		logger:       logger,
		actionCtx:    ctx,
		actionCancel: cancel,
	}
}

// Load replaces the in-memory aggregate with the persisted snapshot, if
// one exists.
func (s *Store) Load() error {
	snap, err := s.persist.Load()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if snap == nil {
		return nil
	}
	s.mu.Lock()
	s.snap = *snap
	if s.snap.Settings == nil {
		s.snap.Settings = make(map[string]string)
	}
	s.mu.Unlock()
	return nil
}

// Close abandons any in-flight purchase action sequences.
func (s *Store) Close() {
	s.actionCancel()
}

// save persists the snapshot synchronously. Must be called with mu held.
func (s *Store) save() error {
	if err := s.persist.Save(&s.snap); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Store) dataChanged() {
	if s.notify != nil {
		s.notify.DataChanged()
	}
}

func (s *Store) childrenChanged() {
	if s.notify != nil {
		s.notify.ChildrenChanged()
	}
}

func (s *Store) nowRFC3339() string {
	return s.clock.Now().Format(time.RFC3339)
}

// localDate parses an RFC3339 timestamp and truncates it to local
// midnight in the clock's location.
func (s *Store) localDate(ts string) (time.Time, bool) {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false
	}
	parsed = parsed.In(s.clock.Now().Location())
	return clock.StartOfDay(parsed), true
}

// --- Lookup helpers (mu held) ---

func (s *Store) childIndex(id string) int {
	for i := range s.snap.Children {
		if s.snap.Children[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) taskIndex(id string) int {
	for i := range s.snap.Tasks {
		if s.snap.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) categoryIndex(id string) int {
	for i := range s.snap.Categories {
		if s.snap.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) itemIndex(id string) int {
	for i := range s.snap.Items {
		if s.snap.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// --- Read accessors ---

// Snapshot returns a deep copy of the aggregate for display.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSnapshot(&s.snap)
}

// Children returns a copy of the children list.
func (s *Store) Children() []model.Child {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Child, len(s.snap.Children))
	copy(out, s.snap.Children)
	return out
}

// Tasks returns a deep copy of the task list.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.snap.Tasks))
	for i := range s.snap.Tasks {
		out[i] = cloneTask(&s.snap.Tasks[i])
	}
	return out
}

// Task returns a copy of one task.
func (s *Store) Task(id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	t := cloneTask(&s.snap.Tasks[i])
	return &t, nil
}

func cloneTask(t *model.Task) model.Task {
	out := *t
	out.RepeatDays = append([]int(nil), t.RepeatDays...)
	out.RepeatChildIDs = append([]string(nil), t.RepeatChildIDs...)
	out.CategoryIDs = append([]string(nil), t.CategoryIDs...)
	return out
}

func cloneSnapshot(snap *model.Snapshot) model.Snapshot {
	out := model.Snapshot{Version: snap.Version}
	out.Children = append([]model.Child(nil), snap.Children...)
	out.Categories = append([]model.Category(nil), snap.Categories...)
	out.Purchases = append([]model.Purchase(nil), snap.Purchases...)
	out.Tasks = make([]model.Task, len(snap.Tasks))
	for i := range snap.Tasks {
		out.Tasks[i] = cloneTask(&snap.Tasks[i])
	}
	out.Items = make([]model.ShopItem, len(snap.Items))
	for i := range snap.Items {
		out.Items[i] = snap.Items[i]
		out.Items[i].Actions = append([]model.ActionStep(nil), snap.Items[i].Actions...)
	}
	out.Settings = make(map[string]string, len(snap.Settings))
	for k, v := range snap.Settings {
		out.Settings[k] = v
	}
	return out
}

var _ ActionRunner = (*actions.Runner)(nil)
