package db

import "time"

// Snapshot is a stored copy of an ingested keymap.
type Snapshot struct {
	ID         string
	Label      string
	SourcePath string
	KeymapName string
	Digest     string
	Categories int
	Actions    int
	CreatedAt  time.Time
}

// SnapshotAction is one stored action row. Shortcuts holds the bindings in
// kglobalshortcutsrc field form and is re-tokenized on load.
type SnapshotAction struct {
	SnapshotID string
	Category   string
	Position   int
	Name       string
	Shortcuts  string
}
