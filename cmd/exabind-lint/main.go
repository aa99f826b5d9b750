// Command exabind-lint checks kglobalshortcutsrc files. It reports grammar
// violations and key names outside the vocabulary, and prints a summary of
// every file that parses.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gerunddev/exabind/internal/keymap"
	"github.com/gerunddev/exabind/internal/keys"
	"github.com/gerunddev/exabind/internal/log"
	"github.com/gerunddev/exabind/internal/parser"
)

// errLintFailed is returned when at least one file failed its check.
var errLintFailed = errors.New("lint failed")

type lintOptions struct {
	mode   string
	strict bool
	quiet  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errLintFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "exabind-lint <file>...",
		Short: "Check kglobalshortcutsrc files",
		Long: `exabind-lint parses each file and prints the number of categories,
actions and unbound records it contains. Unrecognized key names are
reported as warnings.

The exit status is 1 when any file fails to parse, or with --strict when
any warning was reported.

Examples:
  exabind-lint ~/.config/kglobalshortcutsrc
  exabind-lint --strict --mode section testdata/*.rc`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := keymap.CategoryMode(opts.mode)
			if !mode.Valid() {
				return fmt.Errorf("--mode must be %q or %q, got %q",
					keymap.CategoryPositional, keymap.CategorySection, opts.mode)
			}

			out := cmd.OutOrStdout()
			failed := false
			for _, path := range args {
				if !lintFile(out, path, mode, opts) {
					failed = true
				}
			}
			if failed {
				return errLintFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", string(keymap.CategoryPositional),
		"Friendly name resolution: positional or section")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print problems")

	return cmd
}

// lintFile checks one file and reports whether it passed.
func lintFile(out io.Writer, path string, mode keymap.CategoryMode, opts *lintOptions) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}
	input := string(data)

	var stats keymap.Stats
	km, err := keymap.Parse(input, keymap.WithCategoryMode(mode), keymap.WithStats(&stats))
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}

	warnings := unrecognizedKeys(out, path, input)

	if !opts.quiet {
		fmt.Fprintf(out, "%s: %d categories, %d actions, %d unbound\n",
			path, len(km.Categories()), stats.Actions, stats.Unbound)
	}
	log.Debug("linted shortcuts file", "path", path, "records", stats.Records, "warnings", warnings)

	return warnings == 0 || !opts.strict
}

// unrecognizedKeys prints a warning for every key name outside the
// vocabulary and returns the number printed. input is known to parse.
func unrecognizedKeys(out io.Writer, path, input string) int {
	lines, err := parser.Parse(input)
	if err != nil {
		return 0
	}

	count := 0
	for _, line := range lines {
		if line.Kind != parser.Shortcut {
			continue
		}
		for _, name := range keys.Unrecognized(line.Record.Field) {
			fmt.Fprintf(out, "%s:%d: warning: unrecognized key %q in %q\n",
				path, line.Number, name, line.Record.ID)
			count++
		}
	}
	return count
}
