package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"discovery/internal/config"
	"discovery/internal/store"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage database backups",
	}

	cmd.AddCommand(newBackupCreateCommand(ctx))
	cmd.AddCommand(newBackupListCommand(ctx))
	cmd.AddCommand(newBackupRestoreCommand(ctx))
	return cmd
}

func newBackupCreateCommand(ctx *commandContext) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Copy the database into the backup directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Open the store first so the copy never races a writer.
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				path, err := ctx.backupManager(cfg).Create(reason)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "manual", "Tag recorded in the backup filename")
	return cmd
}

func newBackupListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			entries, err := ctx.backupManager(cfg).List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Path,
					entry.Reason,
					entry.CreatedAt.Format("2006-01-02 15:04:05"),
					strconv.FormatInt(entry.SizeBytes/1024, 10) + " KiB",
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Path", "Reason", "Created", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	return cmd
}

func newBackupRestoreCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace the database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd, fmt.Sprintf("Replace %s with %s?", cfg.DatabasePath(), args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled")
				return nil
			}

			// The current database is snapshotted before it is replaced.
			if err := ctx.backupManager(cfg).Restore(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database restored")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
