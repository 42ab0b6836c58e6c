package model

// SnapshotVersion is the current snapshot schema version. Older snapshots
// are migrated additively at load time.
const SnapshotVersion = 2

// Snapshot is the full persisted state of one household.
type Snapshot struct {
	Version    int               `json:"version"`
	Children   []Child           `json:"children"`
	Tasks      []Task            `json:"tasks"`
	Categories []Category        `json:"categories"`
	Items      []ShopItem        `json:"items"`
	Purchases  []Purchase        `json:"purchases"`
	Settings   map[string]string `json:"settings"`
}
