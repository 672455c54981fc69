package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog totals per category and source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				out := cmd.OutOrStdout()

				byCategory, err := st.CategoryCounts(cmd.Context())
				if err != nil {
					return err
				}
				wishlistTotal, err := st.WishlistCount(cmd.Context(), "")
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(byCategory))
				for _, category := range catalog.Categories() {
					stats, ok := byCategory[category]
					if !ok {
						continue
					}
					rows = append(rows, []string{
						string(category),
						strconv.Itoa(stats.Total),
						strconv.Itoa(stats.Loved),
					})
				}
				printSectionHeader(out, "Catalog")
				if len(rows) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
				} else {
					fmt.Fprintln(out, renderTable(
						[]string{"Category", "Items", "Loved"},
						rows,
						[]columnAlignment{alignLeft, alignRight, alignRight},
					))
				}

				bySource, err := st.SourceCounts(cmd.Context())
				if err != nil {
					return err
				}
				if len(bySource) > 0 {
					printSectionHeader(out, "Sources")
					sourceRows := make([][]string, 0, len(bySource))
					for _, source := range catalog.Sources() {
						count, ok := bySource[source]
						if !ok {
							continue
						}
						sourceRows = append(sourceRows, []string{string(source), strconv.Itoa(count)})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Source", "Items"},
						sourceRows,
						[]columnAlignment{alignLeft, alignRight},
					))
				}

				fmt.Fprintf(out, "Wishlist entries: %d\n", wishlistTotal)
				fmt.Fprintf(out, "Database: %s\n", st.Path())
				return nil
			})
		},
	}
	return cmd
}
