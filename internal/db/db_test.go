package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gerunddev/exabind/internal/keymap"
	"github.com/gerunddev/exabind/internal/keys"
)

// newTestDB creates a new in-memory database for testing.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}

const testDocument = `[kwin]
_k_friendly_name=KWin
Overview=Meta+W,Meta+W,Toggle Overview
Window Close=Alt+F4\tCtrl+Q,Alt+F4,Close Window
Expose=none,Ctrl+F9,Toggle Present Windows
[mediacontrol]
_k_friendly_name=Media Controller
nextmedia=Media Next,Media Next,Media playback next
`

func testKeyMap(t *testing.T) *keymap.KeyMap {
	t.Helper()
	km, err := keymap.Parse(testDocument)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	return km
}

// =============================================================================
// Database Connection Tests
// =============================================================================

func TestNew(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() returned error: %v", err)
		}
	}()

	if db.conn == nil {
		t.Error("New() returned DB with nil connection")
	}
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshots.db")

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

func TestNew_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	s := &Snapshot{Label: "before", SourcePath: "/tmp/kglobalshortcutsrc"}
	if err := first.SaveSnapshot(ctx, s, testKeyMap(t)); err != nil {
		t.Fatalf("SaveSnapshot() returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}

	// Migrations must be idempotent against an existing schema
	second, err := New(path)
	if err != nil {
		t.Fatalf("New() on existing database returned error: %v", err)
	}
	defer func() {
		if err := second.Close(); err != nil {
			t.Errorf("Close() returned error: %v", err)
		}
	}()

	got, err := second.GetSnapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSnapshot() returned error: %v", err)
	}
	if got.Label != "before" {
		t.Errorf("Label = %q, want %q", got.Label, "before")
	}
}

func TestClose(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}

	// Double close should not panic or error
	if err := db.Close(); err != nil {
		t.Errorf("Double Close() returned error: %v", err)
	}
}

// =============================================================================
// Snapshot Tests
// =============================================================================

func TestSaveSnapshot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := &Snapshot{Label: "fresh install", SourcePath: "/home/user/.config/kglobalshortcutsrc"}
	if err := db.SaveSnapshot(ctx, s, testKeyMap(t)); err != nil {
		t.Fatalf("SaveSnapshot() returned error: %v", err)
	}

	if s.ID == "" {
		t.Error("SaveSnapshot() did not assign an ID")
	}
	if s.KeymapName != keymap.KDE {
		t.Errorf("KeymapName = %q, want %q", s.KeymapName, keymap.KDE)
	}
	if s.Categories != 2 {
		t.Errorf("Categories = %d, want 2", s.Categories)
	}
	if s.Actions != 3 {
		t.Errorf("Actions = %d, want 3", s.Actions)
	}
	if s.Digest == "" {
		t.Error("SaveSnapshot() did not compute a digest")
	}
	if s.CreatedAt.IsZero() {
		t.Error("SaveSnapshot() did not set CreatedAt")
	}
}

func TestSaveSnapshot_KeepsGivenID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := &Snapshot{ID: "fixed-id", SourcePath: "x"}
	if err := db.SaveSnapshot(ctx, s, testKeyMap(t)); err != nil {
		t.Fatalf("SaveSnapshot() returned error: %v", err)
	}
	if s.ID != "fixed-id" {
		t.Errorf("ID = %q, want %q", s.ID, "fixed-id")
	}

	// Duplicate primary key must fail and leave no partial rows behind
	dup := &Snapshot{ID: "fixed-id", SourcePath: "y"}
	if err := db.SaveSnapshot(ctx, dup, testKeyMap(t)); err == nil {
		t.Error("SaveSnapshot() with duplicate ID should return error")
	}
	rows, err := db.GetSnapshotActions(ctx, "fixed-id")
	if err != nil {
		t.Fatalf("GetSnapshotActions() returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}
}

func TestGetSnapshot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := &Snapshot{Label: "one", SourcePath: "/src"}
	if err := db.SaveSnapshot(ctx, s, testKeyMap(t)); err != nil {
		t.Fatalf("SaveSnapshot() returned error: %v", err)
	}

	got, err := db.GetSnapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSnapshot() returned error: %v", err)
	}
	if got.ID != s.ID || got.Label != "one" || got.SourcePath != "/src" {
		t.Errorf("GetSnapshot() = %+v, want fields of %+v", got, s)
	}
	if got.Digest != s.Digest {
		t.Errorf("Digest = %q, want %q", got.Digest, s.Digest)
	}
	if !got.CreatedAt.Equal(s.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, s.CreatedAt)
	}
}

func TestGetSnapshot_Prefix(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"abc123", "abd456", "abc"} {
		if err := db.SaveSnapshot(ctx, &Snapshot{ID: id, SourcePath: "x"}, testKeyMap(t)); err != nil {
			t.Fatalf("SaveSnapshot(%s) returned error: %v", id, err)
		}
	}

	tests := []struct {
		prefix  string
		wantID  string
		wantErr error
	}{
		{prefix: "abd", wantID: "abd456"},
		{prefix: "abc1", wantID: "abc123"},
		{prefix: "abc", wantID: "abc"},
		{prefix: "ab", wantErr: ErrAmbiguousID},
		{prefix: "zzz", wantErr: ErrNotFound},
		{prefix: "", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := db.GetSnapshot(ctx, tt.prefix)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetSnapshot(%q) error = %v, want %v", tt.prefix, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetSnapshot(%q) returned error: %v", tt.prefix, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("GetSnapshot(%q).ID = %q, want %q", tt.prefix, got.ID, tt.wantID)
			}
		})
	}
}

func TestListSnapshots(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	snapshots, err := db.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots() returned error: %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("ListSnapshots() on empty db returned %d items", len(snapshots))
	}

	for _, label := range []string{"first", "second", "third"} {
		if err := db.SaveSnapshot(ctx, &Snapshot{Label: label, SourcePath: "x"}, testKeyMap(t)); err != nil {
			t.Fatalf("SaveSnapshot(%s) returned error: %v", label, err)
		}
	}

	snapshots, err = db.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots() returned error: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("len(snapshots) = %d, want 3", len(snapshots))
	}
	if snapshots[0].Label != "third" {
		t.Errorf("newest snapshot = %q, want %q", snapshots[0].Label, "third")
	}
}

func TestLatestSnapshot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.LatestSnapshot(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestSnapshot() on empty db error = %v, want ErrNotFound", err)
	}

	s := &Snapshot{Label: "only", SourcePath: "x"}
	if err := db.SaveSnapshot(ctx, s, testKeyMap(t)); err != nil {
		t.Fatalf("SaveSnapshot() returned error: %v", err)
	}
	got, err := db.LatestSnapshot(ctx)
	if err != nil {
		t.Fatalf("LatestSnapshot() returned error: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("LatestSnapshot().ID = %q, want %q", got.ID, s.ID)
	}
}

func TestLoadKeyMap_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	original := testKeyMap(t)

	s := &Snapshot{SourcePath: "x"}
	if err := db.SaveSnapshot(ctx, s, original); err != nil {
		t.Fatalf("SaveSnapshot() returned error: %v", err)
	}

	loaded, got, err := db.LoadKeyMap(ctx, s.ID)
	if err != nil {
		t.Fatalf("LoadKeyMap() returned error: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("snapshot ID = %q, want %q", got.ID, s.ID)
	}
	if loaded.String() != original.String() {
		t.Errorf("LoadKeyMap() =\n%s\nwant\n%s", loaded, original)
	}
	if Digest(loaded) != s.Digest {
		t.Error("digest of reloaded keymap differs from stored digest")
	}
	if changes := keymap.Diff(original, loaded); len(changes) != 0 {
		t.Errorf("Diff(original, loaded) = %v, want no changes", changes)
	}

	closeActions := loaded.ActionsByCategory("KWin")
	if len(closeActions) != 2 {
		t.Fatalf("len(KWin) = %d, want 2", len(closeActions))
	}
	shortcuts := closeActions[1].Shortcuts()
	if len(shortcuts) != 2 {
		t.Fatalf("len(Close Window shortcuts) = %d, want 2", len(shortcuts))
	}
	if !shortcuts[1].Contains(keys.Char('q')) {
		t.Errorf("second binding = %s, want Ctrl+Q", shortcuts[1])
	}
}

func TestLoadKeyMap_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, _, err := db.LoadKeyMap(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadKeyMap() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := &Snapshot{SourcePath: "x"}
	if err := db.SaveSnapshot(ctx, s, testKeyMap(t)); err != nil {
		t.Fatalf("SaveSnapshot() returned error: %v", err)
	}

	if err := db.DeleteSnapshot(ctx, s.ID); err != nil {
		t.Fatalf("DeleteSnapshot() returned error: %v", err)
	}
	if _, err := db.GetSnapshot(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSnapshot() after delete error = %v, want ErrNotFound", err)
	}
	rows, err := db.GetSnapshotActions(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSnapshotActions() returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("GetSnapshotActions() after delete returned %d rows", len(rows))
	}

	if err := db.DeleteSnapshot(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteSnapshot() error = %v, want ErrNotFound", err)
	}
}

func TestDigest_Stable(t *testing.T) {
	a := testKeyMap(t)
	b := testKeyMap(t)
	if Digest(a) != Digest(b) {
		t.Error("Digest() differs for identical documents")
	}

	other, err := keymap.Parse("[x]\na=Ctrl+A,none,A\n")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if Digest(a) == Digest(other) {
		t.Error("Digest() equal for different keymaps")
	}
}
