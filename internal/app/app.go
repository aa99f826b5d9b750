// Package app provides the application orchestration for exabind.
// It connects configuration, the keymap pipeline, the snapshot store and
// the terminal views.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/gerunddev/exabind/internal/config"
	"github.com/gerunddev/exabind/internal/db"
	"github.com/gerunddev/exabind/internal/keymap"
	"github.com/gerunddev/exabind/internal/log"
	"github.com/gerunddev/exabind/internal/render"
	"github.com/gerunddev/exabind/internal/tui"
)

// ErrUnknownCategory is returned when a requested category has no actions.
var ErrUnknownCategory = errors.New("unknown category")

// App orchestrates loading, display and snapshot storage.
type App struct {
	cfg      *config.Config
	out      io.Writer
	renderer *render.Renderer

	shortcutsOverride string

	// db is opened on first use
	db *db.DB
}

// Config holds configuration for creating a new App.
type Config struct {
	// ConfigPath is the config file to read. If empty, the default
	// location is used.
	ConfigPath string

	// ShortcutsFile overrides shortcuts_file from the config file.
	ShortcutsFile string

	// LogLevel overrides log_level from the config file.
	LogLevel string

	// DatabasePath overrides database_path from the config file.
	DatabasePath string

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

// New loads configuration and creates an App.
func New(cfg Config) (*App, error) {
	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	appConfig, err := config.LoadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.LogLevel != "" {
		appConfig.LogLevel = cfg.LogLevel
	}
	level, err := log.ParseLevel(appConfig.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	if cfg.DatabasePath != "" {
		appConfig.DatabasePath = cfg.DatabasePath
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	return &App{
		cfg: appConfig,
		out: out,
		renderer: render.New(render.Theme{
			Accent: appConfig.Theme.Accent,
			Keycap: appConfig.Theme.Keycap,
		}),
		shortcutsOverride: cfg.ShortcutsFile,
	}, nil
}

// Close releases resources.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// LoadKeyMap resolves the shortcuts file and ingests it. It returns the
// keymap and the path that was read.
func (a *App) LoadKeyMap() (*keymap.KeyMap, string, error) {
	path, err := a.cfg.ResolveShortcutsPath(a.shortcutsOverride)
	if err != nil {
		return nil, "", err
	}

	var stats keymap.Stats
	km, err := keymap.LoadFile(path,
		keymap.WithCategoryMode(keymap.CategoryMode(a.cfg.FriendlyNames)),
		keymap.WithStats(&stats))
	if err != nil {
		return nil, "", err
	}

	if stats.Unrecognized > 0 {
		log.Debug("skipped unrecognized key names", "count", stats.Unrecognized, "path", path)
	}
	log.Debug("loaded shortcuts", "path", path, "actions", stats.Actions, "unbound", stats.Unbound)
	return km, path, nil
}

// Browse opens the interactive browser on the current shortcuts file.
// Log output is discarded while the browser owns the terminal.
func (a *App) Browse() error {
	km, path, err := a.LoadKeyMap()
	if err != nil {
		return err
	}

	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	return tui.Run(km, tui.Options{
		Source: path,
		Sort:   a.cfg.Show.Sort,
		Theme: render.Theme{
			Accent: a.cfg.Theme.Accent,
			Keycap: a.cfg.Theme.Keycap,
		},
	})
}

// Show prints the categories of the current shortcuts file, or the actions
// of one category. An empty sort uses the configured order.
func (a *App) Show(category, sort string) error {
	km, _, err := a.LoadKeyMap()
	if err != nil {
		return err
	}
	return a.printKeyMap(km, category, sort)
}

func (a *App) printKeyMap(km *keymap.KeyMap, category, sort string) error {
	if sort == "" {
		sort = a.cfg.Show.Sort
	}

	if category != "" {
		if !km.HasCategory(category) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		_, err := fmt.Fprint(a.out, a.renderer.ActionTable(category, km.ActionsByCategory(category)))
		return err
	}

	_, err := fmt.Fprint(a.out, a.renderer.CategoryList(render.SortCategories(km.Categories(), sort)))
	return err
}

// =============================================================================
// Snapshot Operations
// =============================================================================

// store opens the snapshot database on first use.
func (a *App) store() (*db.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	d, err := db.New(a.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	a.db = d
	return d, nil
}

// SaveSnapshot stores the current shortcuts file under label.
func (a *App) SaveSnapshot(ctx context.Context, label string) (*db.Snapshot, error) {
	km, path, err := a.LoadKeyMap()
	if err != nil {
		return nil, err
	}
	store, err := a.store()
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	latest, err := store.LatestSnapshot(ctx)
	switch {
	case err == nil && latest.Digest == db.Digest(km):
		log.Info("shortcuts unchanged since last snapshot", "id", latest.ID)
	case err != nil && !errors.Is(err, db.ErrNotFound):
		return nil, fmt.Errorf("failed to read latest snapshot: %w", err)
	}

	s := &db.Snapshot{Label: label, SourcePath: absPath}
	if err := store.SaveSnapshot(ctx, s, km); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	_, err = fmt.Fprintf(a.out, "saved snapshot %s (%d categories, %d actions)\n",
		shortID(s.ID), s.Categories, s.Actions)
	return s, err
}

// ListSnapshots prints every stored snapshot, newest first.
func (a *App) ListSnapshots(ctx context.Context) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	snapshots, err := store.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		_, err := fmt.Fprintln(a.out, "no snapshots")
		return err
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "CREATED", "ACTIONS", "LABEL", "SOURCE")
	for _, s := range snapshots {
		t.Row(shortID(s.ID), humanize.Time(s.CreatedAt), humanize.Comma(int64(s.Actions)), s.Label, s.SourcePath)
	}
	_, err = fmt.Fprintln(a.out, t.Render())
	return err
}

// ShowSnapshot prints a stored snapshot the same way Show prints the
// current file.
func (a *App) ShowSnapshot(ctx context.Context, id, category, sort string) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	km, _, err := store.LoadKeyMap(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}
	return a.printKeyMap(km, category, sort)
}

// DiffSnapshot prints the changes from snapshot fromID to snapshot toID.
// An empty toID compares against the current shortcuts file.
func (a *App) DiffSnapshot(ctx context.Context, fromID, toID string) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	before, _, err := store.LoadKeyMap(ctx, fromID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot %s: %w", fromID, err)
	}

	var after *keymap.KeyMap
	if toID == "" {
		after, _, err = a.LoadKeyMap()
		if err != nil {
			return err
		}
	} else {
		after, _, err = store.LoadKeyMap(ctx, toID)
		if err != nil {
			return fmt.Errorf("failed to load snapshot %s: %w", toID, err)
		}
	}

	_, err = fmt.Fprint(a.out, a.renderer.Changes(keymap.Diff(before, after)))
	return err
}

// DeleteSnapshot removes a snapshot by id or unique id prefix.
func (a *App) DeleteSnapshot(ctx context.Context, id string) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	s, err := store.GetSnapshot(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find snapshot %s: %w", id, err)
	}
	if err := store.DeleteSnapshot(ctx, s.ID); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", s.ID, err)
	}
	_, err = fmt.Fprintf(a.out, "deleted snapshot %s\n", shortID(s.ID))
	return err
}

// shortID abbreviates a snapshot id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
