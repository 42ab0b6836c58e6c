// Package storage persists the household aggregate as a single versioned
// JSON snapshot row. The full snapshot is written on every mutation, which
// keeps recovery trivial and matches the single-writer store discipline.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/skovlund/choreboard/internal/model"
)

type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Load reads the stored snapshot, applying additive schema migration for
// older versions. Returns nil when nothing has been saved yet.
func (s *SnapshotStore) Load() (*model.Snapshot, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	migrate(&snap)
	return &snap, nil
}

// Save writes the full snapshot synchronously as the current version.
func (s *SnapshotStore) Save(snap *model.Snapshot) error {
	snap.Version = model.SnapshotVersion
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (id, version, data, updated_at) VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET version = excluded.version, data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		snap.Version, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// migrate fills explicit defaults for fields that older snapshot versions
// left implicit, instead of presence-probing at every use site.
func migrate(snap *model.Snapshot) {
	if snap.Settings == nil {
		snap.Settings = make(map[string]string)
	}
	for i := range snap.Children {
		if snap.Children[i].Slug == "" {
			snap.Children[i].Slug = model.Slugify(snap.Children[i].Name)
		}
	}
	for i := range snap.Tasks {
		t := &snap.Tasks[i]
		if t.ScheduleMode == "" && len(t.RepeatDays) > 0 {
			t.ScheduleMode = model.ModeRepeat
		}
		if !t.IsTemplate() && t.Status == "" {
			t.Status = model.StatusAssigned
		}
		// Pre-v2 snapshots had no explicit enabled flag; a configured
		// threshold and reward meant enabled.
		if snap.Version < 2 && !t.BonusEnabled && t.BonusDays > 0 && t.BonusPoints > 0 {
			t.BonusEnabled = true
		}
	}
	snap.Version = model.SnapshotVersion
}
