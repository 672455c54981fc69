package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"discovery/internal/config"
	"discovery/internal/importers"
	"discovery/internal/recon"
	"discovery/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var skipBackup bool

	cmd := &cobra.Command{
		Use:   "import <source> <file>",
		Short: "Import a service export into the catalog",
		Long: "Parse a source export file and reconcile its records into the catalog.\n" +
			"Available sources: " + strings.Join(importers.Names(), ", ") + ".",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer, err := importers.Lookup(args[0])
			if err != nil {
				return err
			}

			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open export: %w", err)
			}
			defer file.Close()

			records, err := importer.Parse(file)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			return ctx.withSession(func(cfg *config.Config, st *store.Store, session *recon.Session) error {
				if cfg.Imports.BackupBeforeImport && !skipBackup {
					if _, err := ctx.backupManager(cfg).Create("pre_import"); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				for _, batch := range importers.GroupByCategory(records) {
					report, err := session.Run(cmd.Context(), batch.Category, slices.Values(batch.Records))
					if err != nil {
						return err
					}
					printReport(out, string(batch.Category), report)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&skipBackup, "no-backup", false, "Skip the automatic pre-import backup")
	return cmd
}

func printReport(out io.Writer, category string, report *recon.Report) {
	rows := [][]string{
		{"Created", strconv.Itoa(report.Created)},
		{"Updated", strconv.Itoa(report.Updated)},
		{"Unchanged", strconv.Itoa(report.Unchanged)},
		{"Skipped", strconv.Itoa(report.Skipped)},
		{"Failed", strconv.Itoa(len(report.Failures))},
	}
	if len(report.PrunedWishlist) > 0 {
		rows = append(rows, []string{"Wishlist pruned", strconv.Itoa(len(report.PrunedWishlist))})
	}
	fmt.Fprintf(out, "%s\n", category)
	fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

	for _, failure := range report.Failures {
		fmt.Fprintf(out, "  failed: %s (%s): %s\n", failure.Title, failure.Source, failure.Reason)
	}
	for _, pruned := range report.PrunedWishlist {
		fmt.Fprintf(out, "  wishlist satisfied: %s\n", pruned.Title)
	}
}
