// Package main is the entry point for the exabind CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gerunddev/exabind/internal/app"
	"github.com/gerunddev/exabind/internal/db"
	"github.com/gerunddev/exabind/internal/render"
)

// appFactory is the function used to create a new App.
// It can be replaced in tests to mock app creation.
var appFactory = defaultAppFactory

// defaultAppFactory is the production app factory implementation.
func defaultAppFactory(cfg app.Config) (App, error) {
	return app.New(cfg)
}

// App interface defines the methods needed from app.App for testing.
type App interface {
	Browse() error
	Show(category, sort string) error
	SaveSnapshot(ctx context.Context, label string) (*db.Snapshot, error)
	ListSnapshots(ctx context.Context) error
	ShowSnapshot(ctx context.Context, id, category, sort string) error
	DiffSnapshot(ctx context.Context, fromID, toID string) error
	DeleteSnapshot(ctx context.Context, id string) error
	Close() error
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath    string
	shortcutsFile string
	databasePath  string
	logLevel      string
}

// newApp creates an App writing command output to out.
func (f *globalFlags) newApp(out io.Writer) (App, error) {
	return appFactory(app.Config{
		ConfigPath:    f.configPath,
		ShortcutsFile: f.shortcutsFile,
		DatabasePath:  f.databasePath,
		LogLevel:      f.logLevel,
		Out:           out,
	})
}

// withApp creates an App for cmd, runs fn and closes the App.
func (f *globalFlags) withApp(cmd *cobra.Command, fn func(App) error) (err error) {
	a, err := f.newApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(a)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "exabind",
		Short: "Browse and track KDE global shortcuts",
		Long: `exabind reads the KDE global shortcut configuration (kglobalshortcutsrc)
and shows every bound action grouped by application.

Examples:
  exabind                               # Browse shortcuts interactively
  exabind --shortcuts-file ./kglobalshortcutsrc
  exabind show                          # List categories
  exabind show --category KWin          # List the actions of one category
  exabind snapshot save --label clean   # Store the current shortcuts
  exabind snapshot diff 1a2b3c4d        # Compare a snapshot with the current file`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withApp(cmd, func(a App) error {
				return a.Browse()
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"Config file (default $XDG_CONFIG_HOME/exabind/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flags.shortcutsFile, "shortcuts-file", "f", "",
		"Shortcuts file to read (default $XDG_CONFIG_HOME/kglobalshortcutsrc)")
	rootCmd.PersistentFlags().StringVar(&flags.databasePath, "database", "",
		"Snapshot database (default $XDG_DATA_HOME/exabind/snapshots.db)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(showCmd(flags))
	rootCmd.AddCommand(snapshotCmd(flags))

	return rootCmd
}

// validateSort rejects unknown category orders. Empty means the configured
// default.
func validateSort(sort string) error {
	switch sort {
	case "", render.SortName, render.SortCount:
		return nil
	default:
		return fmt.Errorf("--sort must be %q or %q, got %q", render.SortName, render.SortCount, sort)
	}
}

// showCmd creates the show subcommand.
func showCmd(flags *globalFlags) *cobra.Command {
	var category, sort string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print categories or the actions of one category",
		Long: `Print every category with its number of bound actions, or with
--category the actions of that category and their shortcuts.

Examples:
  exabind show
  exabind show --sort count
  exabind show --category "Audio Volume"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSort(sort); err != nil {
				return err
			}
			return flags.withApp(cmd, func(a App) error {
				return a.Show(category, sort)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to print")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "Category order: name or count")

	return cmd
}
