// Package db stores keymap snapshots in SQLite.
package db

import (
	"cmp"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gerunddev/exabind/internal/keymap"
	"github.com/gerunddev/exabind/internal/keys"
	"github.com/gerunddev/exabind/internal/log"
)

// ErrNotFound is returned when a requested record is not found.
var ErrNotFound = errors.New("record not found")

// ErrAmbiguousID is returned when an id prefix matches more than one snapshot.
var ErrAmbiguousID = errors.New("ambiguous snapshot id")

const memoryPath = ":memory:"

// DB holds the database connection and provides methods for data access.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection.
// If the path is ":memory:", an in-memory database is created.
// Otherwise, the parent directory is created if it doesn't exist.
func New(path string) (*DB, error) {
	if path != memoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every pooled connection would get its own empty in-memory database
	if path == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Warn("failed to close connection after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.Migrate(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Warn("failed to close connection after migration failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// Digest returns a stable content hash of a keymap.
func Digest(km *keymap.KeyMap) string {
	sum := sha256.Sum256([]byte(km.String()))
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Snapshot Methods
// =============================================================================

// SaveSnapshot stores km together with the metadata in s. ID, KeymapName,
// Digest, counts and CreatedAt are filled in on s.
func (d *DB) SaveSnapshot(ctx context.Context, s *Snapshot, km *keymap.KeyMap) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.KeymapName = km.Name()
	s.Digest = Digest(km)
	s.Categories = len(km.Categories())
	s.Actions = km.Len()
	s.CreatedAt = time.Now()

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Warn("failed to roll back snapshot", "id", s.ID, "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, label, source_path, keymap_name, digest, categories, actions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Label, s.SourcePath, s.KeymapName, s.Digest, s.Categories, s.Actions, s.CreatedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_actions (snapshot_id, category, position, name, shortcuts)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn("failed to close statement", "operation", "SaveSnapshot", "error", closeErr)
		}
	}()

	categories := km.Categories()
	slices.SortFunc(categories, func(a, b keymap.CategoryCount) int {
		return cmp.Compare(a.Name, b.Name)
	})
	for _, c := range categories {
		for i, a := range km.ActionsByCategory(c.Name) {
			if _, err := stmt.ExecContext(ctx, s.ID, c.Name, i, a.Name(), keys.FormatField(a.Shortcuts())); err != nil {
				return fmt.Errorf("failed to insert action %q: %w", a.Name(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	log.Debug("saved snapshot", "id", s.ID, "actions", s.Actions)
	return nil
}

const snapshotColumns = `id, label, source_path, keymap_name, digest, categories, actions, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	s := &Snapshot{}
	var created int64
	if err := row.Scan(&s.ID, &s.Label, &s.SourcePath, &s.KeymapName, &s.Digest,
		&s.Categories, &s.Actions, &created); err != nil {
		return nil, err
	}
	s.CreatedAt = time.Unix(0, created)
	return s, nil
}

// GetSnapshot retrieves a snapshot by full id or unique id prefix.
func (d *DB) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	rows, err := d.conn.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots WHERE id = ? OR substr(id, 1, length(?)) = ?
		ORDER BY id = ? DESC LIMIT 2`, id, id, id, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", "operation", "GetSnapshot", "error", closeErr)
		}
	}()

	var found []*Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(found) == 0:
		return nil, ErrNotFound
	case found[0].ID == id, len(found) == 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// LatestSnapshot returns the most recently saved snapshot.
func (d *DB) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	s, err := scanSnapshot(d.conn.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSnapshots returns all snapshots ordered by created_at descending.
func (d *DB) ListSnapshots(ctx context.Context) ([]*Snapshot, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", "operation", "ListSnapshots", "error", closeErr)
		}
	}()

	var snapshots []*Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// GetSnapshotActions returns the stored action rows of a snapshot, ordered by
// category and position.
func (d *DB) GetSnapshotActions(ctx context.Context, snapshotID string) ([]*SnapshotAction, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT snapshot_id, category, position, name, shortcuts
		FROM snapshot_actions WHERE snapshot_id = ?
		ORDER BY category, position`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", "operation", "GetSnapshotActions", "error", closeErr)
		}
	}()

	var actions []*SnapshotAction
	for rows.Next() {
		a := &SnapshotAction{}
		if err := rows.Scan(&a.SnapshotID, &a.Category, &a.Position, &a.Name, &a.Shortcuts); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// LoadKeyMap rebuilds the keymap stored under a snapshot id or id prefix.
func (d *DB) LoadKeyMap(ctx context.Context, id string) (*keymap.KeyMap, *Snapshot, error) {
	s, err := d.GetSnapshot(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rows, err := d.GetSnapshotActions(ctx, s.ID)
	if err != nil {
		return nil, nil, err
	}

	categories := make(map[string][]keymap.Action)
	for _, row := range rows {
		a, ok := keymap.NewAction(row.Name, keys.ParseField(row.Shortcuts)...)
		if !ok {
			log.Warn("stored action has no usable binding", "snapshot", s.ID, "action", row.Name)
			continue
		}
		categories[row.Category] = append(categories[row.Category], a)
	}
	return keymap.New(s.KeymapName, categories), s, nil
}

// DeleteSnapshot removes a snapshot and its actions.
func (d *DB) DeleteSnapshot(ctx context.Context, id string) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Warn("failed to roll back delete", "id", id, "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_actions WHERE snapshot_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
