package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gerunddev/exabind/internal/app"
	"github.com/gerunddev/exabind/internal/db"
)

// executeCommand is a test helper that executes a cobra command with args.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err = root.Execute()
	return buf.String(), err
}

// fakeApp records calls instead of touching files.
type fakeApp struct {
	out    io.Writer
	calls  []string
	err    error
	closed bool
}

func (f *fakeApp) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeApp) Browse() error { return f.record("browse") }

func (f *fakeApp) Show(category, sort string) error {
	fmt.Fprintln(f.out, "shown")
	return f.record("show %q %q", category, sort)
}

func (f *fakeApp) SaveSnapshot(ctx context.Context, label string) (*db.Snapshot, error) {
	return &db.Snapshot{Label: label}, f.record("save %q", label)
}

func (f *fakeApp) ListSnapshots(ctx context.Context) error { return f.record("list") }

func (f *fakeApp) ShowSnapshot(ctx context.Context, id, category, sort string) error {
	return f.record("snapshot-show %s %q %q", id, category, sort)
}

func (f *fakeApp) DiffSnapshot(ctx context.Context, fromID, toID string) error {
	return f.record("diff %s %q", fromID, toID)
}

func (f *fakeApp) DeleteSnapshot(ctx context.Context, id string) error {
	return f.record("delete %s", id)
}

func (f *fakeApp) Close() error {
	f.closed = true
	return nil
}

// useFakeApp swaps appFactory for the duration of the test and returns the
// fake and a pointer to the last app.Config it was created with.
func useFakeApp(t *testing.T) (*fakeApp, *app.Config) {
	t.Helper()
	fake := &fakeApp{}
	var got app.Config
	orig := appFactory
	appFactory = func(cfg app.Config) (App, error) {
		got = cfg
		fake.out = cfg.Out
		return fake, nil
	}
	t.Cleanup(func() { appFactory = orig })
	return fake, &got
}

// =============================================================================
// Root Command Tests
// =============================================================================

func TestCLI_Help(t *testing.T) {
	output, err := executeCommand(newRootCmd(), "--help")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	expectedStrings := []string{
		"exabind",
		"kglobalshortcutsrc",
		"-f, --shortcuts-file",
		"--log-level",
		"--config",
		"show",
		"snapshot",
		"Examples:",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Help should contain %q, got:\n%s", expected, output)
		}
	}
}

func TestCLI_NoArgsBrowses(t *testing.T) {
	fake, cfg := useFakeApp(t)

	_, err := executeCommand(newRootCmd(), "--shortcuts-file", "/tmp/kglobalshortcutsrc", "--log-level", "debug")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(fake.calls) != 1 || fake.calls[0] != "browse" {
		t.Errorf("Expected browse call, got %v", fake.calls)
	}
	if cfg.ShortcutsFile != "/tmp/kglobalshortcutsrc" {
		t.Errorf("Expected ShortcutsFile to be passed, got %q", cfg.ShortcutsFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel debug, got %q", cfg.LogLevel)
	}
	if !fake.closed {
		t.Error("Expected app to be closed")
	}
}

func TestCLI_RejectsPositionalArgs(t *testing.T) {
	fake, _ := useFakeApp(t)

	_, err := executeCommand(newRootCmd(), "kglobalshortcutsrc")
	if err == nil {
		t.Error("Expected error for positional argument")
	}
	if len(fake.calls) != 0 {
		t.Errorf("App should not run, got %v", fake.calls)
	}
}

func TestCLI_AppErrorPropagates(t *testing.T) {
	fake, _ := useFakeApp(t)
	fake.err = errors.New("boom")

	_, err := executeCommand(newRootCmd(), "show")
	if err == nil || err.Error() != "boom" {
		t.Errorf("Expected boom error, got %v", err)
	}
	if !fake.closed {
		t.Error("Expected app to be closed after error")
	}
}

func TestCLI_FactoryError(t *testing.T) {
	orig := appFactory
	appFactory = func(app.Config) (App, error) { return nil, errors.New("bad config") }
	t.Cleanup(func() { appFactory = orig })

	_, err := executeCommand(newRootCmd(), "show")
	if err == nil || !strings.Contains(err.Error(), "bad config") {
		t.Errorf("Expected factory error, got %v", err)
	}
}

// =============================================================================
// Show Command Tests
// =============================================================================

func TestCLI_Show(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"show"}, `show "" ""`},
		{"category", []string{"show", "--category", "KWin"}, `show "KWin" ""`},
		{"short flags", []string{"show", "-c", "Audio Volume", "-s", "count"}, `show "Audio Volume" "count"`},
		{"sort name", []string{"show", "--sort=name"}, `show "" "name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, _ := useFakeApp(t)

			output, err := executeCommand(newRootCmd(), tt.args...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(fake.calls) != 1 || fake.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", fake.calls, tt.want)
			}
			if !strings.Contains(output, "shown") {
				t.Errorf("Expected app output on command writer, got %q", output)
			}
		})
	}
}

func TestCLI_Show_InvalidSort(t *testing.T) {
	fake, _ := useFakeApp(t)

	_, err := executeCommand(newRootCmd(), "show", "--sort", "size")
	if err == nil || !strings.Contains(err.Error(), "--sort") {
		t.Errorf("Expected --sort error, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("App should not run, got %v", fake.calls)
	}
}

// =============================================================================
// Snapshot Command Tests
// =============================================================================

func TestCLI_Snapshot(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"save", []string{"snapshot", "save"}, `save ""`},
		{"save label", []string{"snapshot", "save", "--label", "clean install"}, `save "clean install"`},
		{"list", []string{"snapshot", "list"}, "list"},
		{"ls alias", []string{"snapshot", "ls"}, "list"},
		{"show", []string{"snapshot", "show", "1a2b"}, `snapshot-show 1a2b "" ""`},
		{"show category", []string{"snapshot", "show", "1a2b", "-c", "KWin", "--sort", "count"}, `snapshot-show 1a2b "KWin" "count"`},
		{"diff current", []string{"snapshot", "diff", "1a2b"}, `diff 1a2b ""`},
		{"diff two", []string{"snapshot", "diff", "1a2b", "3c4d"}, `diff 1a2b "3c4d"`},
		{"delete", []string{"snapshot", "delete", "1a2b"}, "delete 1a2b"},
		{"rm alias", []string{"snapshot", "rm", "1a2b"}, "delete 1a2b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, _ := useFakeApp(t)

			if _, err := executeCommand(newRootCmd(), tt.args...); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(fake.calls) != 1 || fake.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", fake.calls, tt.want)
			}
		})
	}
}

func TestCLI_Snapshot_ArgCounts(t *testing.T) {
	tests := [][]string{
		{"snapshot", "show"},
		{"snapshot", "diff"},
		{"snapshot", "diff", "a", "b", "c"},
		{"snapshot", "delete"},
		{"snapshot", "list", "extra"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			fake, _ := useFakeApp(t)

			if _, err := executeCommand(newRootCmd(), args...); err == nil {
				t.Error("Expected argument count error")
			}
			if len(fake.calls) != 0 {
				t.Errorf("App should not run, got %v", fake.calls)
			}
		})
	}
}

func TestCLI_Snapshot_DatabaseFlag(t *testing.T) {
	_, cfg := useFakeApp(t)

	if _, err := executeCommand(newRootCmd(), "snapshot", "list", "--database", "/tmp/s.db"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.DatabasePath != "/tmp/s.db" {
		t.Errorf("Expected DatabasePath to be passed, got %q", cfg.DatabasePath)
	}
}
