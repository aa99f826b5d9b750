package db

import "github.com/gerunddev/exabind/internal/log"

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL DEFAULT '',
    source_path TEXT NOT NULL,
    keymap_name TEXT NOT NULL,
    categories INTEGER NOT NULL DEFAULT 0,
    actions INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_actions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    snapshot_id TEXT NOT NULL,
    category TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    shortcuts TEXT NOT NULL,
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_snapshot_actions_snapshot ON snapshot_actions(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
`

// Migrate runs all database migrations to ensure the schema is up to date.
func (d *DB) Migrate() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return err
	}
	return d.runMigrations()
}

// runMigrations applies incremental schema changes for existing databases.
func (d *DB) runMigrations() error {
	// digest was added after the first release
	if exists, err := d.columnExists("snapshots", "digest"); err != nil {
		return err
	} else if !exists {
		if _, err := d.conn.Exec(`
			ALTER TABLE snapshots ADD COLUMN digest TEXT NOT NULL DEFAULT '';
		`); err != nil {
			return err
		}
	}
	return nil
}

// columnExists checks if a column exists in the specified table.
func (d *DB) columnExists(table, column string) (bool, error) {
	rows, err := d.conn.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return false, err
	}
	defer func() { log.CloseError("table_info rows", rows.Close()) }()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue any
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
