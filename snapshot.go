package main

import "github.com/spf13/cobra"

// snapshotCmd creates the snapshot subcommand group.
func snapshotCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot management commands",
		Long: `Snapshot management commands for storing, listing, comparing and
deleting copies of the shortcut configuration.

Snapshot IDs may be abbreviated to any unique prefix.`,
	}

	cmd.AddCommand(snapshotSaveCmd(flags))
	cmd.AddCommand(snapshotListCmd(flags))
	cmd.AddCommand(snapshotShowCmd(flags))
	cmd.AddCommand(snapshotDiffCmd(flags))
	cmd.AddCommand(snapshotDeleteCmd(flags))

	return cmd
}

func snapshotSaveCmd(flags *globalFlags) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store the current shortcuts",
		Long: `Store the current shortcuts in the snapshot database.

Examples:
  exabind snapshot save
  exabind snapshot save --label "before plasma upgrade"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withApp(cmd, func(a App) error {
				_, err := a.SaveSnapshot(cmd.Context(), label)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label stored with the snapshot")

	return cmd
}

func snapshotListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored snapshots, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withApp(cmd, func(a App) error {
				return a.ListSnapshots(cmd.Context())
			})
		},
	}
}

func snapshotShowCmd(flags *globalFlags) *cobra.Command {
	var category, sort string

	cmd := &cobra.Command{
		Use:   "show <snapshot-id>",
		Short: "Print a stored snapshot",
		Long: `Print the categories of a stored snapshot, or with --category the
actions of one category.

Examples:
  exabind snapshot show 1a2b3c4d
  exabind snapshot show 1a2b --category KWin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSort(sort); err != nil {
				return err
			}
			return flags.withApp(cmd, func(a App) error {
				return a.ShowSnapshot(cmd.Context(), args[0], category, sort)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to print")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "Category order: name or count")

	return cmd
}

func snapshotDiffCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from-id> [to-id]",
		Short: "Compare two snapshots, or a snapshot with the current file",
		Long: `Print the actions added, removed and rebound between two snapshots.
Without a second ID the snapshot is compared with the current shortcuts file.

Examples:
  exabind snapshot diff 1a2b3c4d
  exabind snapshot diff 1a2b3c4d 5e6f7a8b`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := ""
			if len(args) == 2 {
				to = args[1]
			}
			return flags.withApp(cmd, func(a App) error {
				return a.DiffSnapshot(cmd.Context(), args[0], to)
			})
		},
	}
}

func snapshotDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <snapshot-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withApp(cmd, func(a App) error {
				return a.DeleteSnapshot(cmd.Context(), args[0])
			})
		},
	}
}
