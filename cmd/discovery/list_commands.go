package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/store"
)

type itemView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Creator  string `json:"creator,omitempty"`
	Loved    string `json:"loved,omitempty"`
	Stars    int    `json:"stars,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		lovedOnly bool
		creator   string
		limit     int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List catalog items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := store.ItemFilter{Creator: creator, Limit: limit}
			if len(args) == 1 {
				category, err := parseCategoryArg(args[0])
				if err != nil {
					return err
				}
				filter.Category = category
			}
			if lovedOnly {
				loved := catalog.Loved
				filter.State = &loved
			}
			return printItems(ctx, cmd, filter, asJSON)
		},
	}

	cmd.Flags().BoolVar(&lovedOnly, "loved", false, "Only loved items")
	cmd.Flags().StringVar(&creator, "creator", "", "Filter by creator substring")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of items")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		categoryArg string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search items by title or creator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := store.ItemFilter{Search: args[0]}
			if categoryArg != "" {
				category, err := parseCategoryArg(categoryArg)
				if err != nil {
					return err
				}
				filter.Category = category
			}
			return printItems(ctx, cmd, filter, asJSON)
		},
	}

	cmd.Flags().StringVar(&categoryArg, "category", "", "Restrict to one category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var creator string

	cmd := &cobra.Command{
		Use:   "show <category> <title>",
		Short: "Show one item with its sources and rating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				item, err := resolveItem(cmd.Context(), st, category, args[1], creator)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n", item.Title)
				fmt.Fprintf(out, "  category: %s\n", item.Category)
				fmt.Fprintf(out, "  creator:  %s\n", orUnknown(item.Creator))
				if item.Notes != "" {
					fmt.Fprintf(out, "  notes:    %s\n", item.Notes)
				}
				fmt.Fprintf(out, "  id:       %s\n", item.ID)

				rating, err := st.GetRating(cmd.Context(), item.ID)
				if err != nil {
					return err
				}
				if rating != nil {
					if label := lovedLabel(rating.State); label != "" {
						fmt.Fprintf(out, "  state:    %s\n", label)
					}
					if rating.Stars > 0 {
						fmt.Fprintf(out, "  stars:    %s\n", starsString(rating.Stars))
					}
				}

				edges, err := st.ItemSources(cmd.Context(), item.ID)
				if err != nil {
					return err
				}
				if len(edges) > 0 {
					rows := make([][]string, 0, len(edges))
					for _, edge := range edges {
						rows = append(rows, []string{
							edge.Source.String(),
							edge.RawTitle,
							edge.ImportedAt.Format("2006-01-02"),
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Source", "As", "Imported"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignLeft},
					))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "Disambiguate by creator")
	return cmd
}

func printItems(ctx *commandContext, cmd *cobra.Command, filter store.ItemFilter, asJSON bool) error {
	return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
		items, err := st.QueryItems(cmd.Context(), filter)
		if err != nil {
			return err
		}

		views := make([]itemView, 0, len(items))
		for _, item := range items {
			view := itemView{
				ID:       item.ID,
				Category: string(item.Category),
				Title:    item.Title,
				Creator:  item.Creator,
				Notes:    item.Notes,
			}
			rating, err := st.GetRating(cmd.Context(), item.ID)
			if err != nil {
				return err
			}
			if rating != nil {
				view.Loved = lovedLabel(rating.State)
				view.Stars = rating.Stars
			}
			views = append(views, view)
		}

		if asJSON {
			return writeJSON(cmd, views)
		}

		if len(views) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No items found")
			return nil
		}

		rows := make([][]string, 0, len(views))
		for _, view := range views {
			rows = append(rows, []string{
				view.Category,
				view.Title,
				orUnknown(view.Creator),
				view.Loved,
				starsString(view.Stars),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Category", "Title", "Creator", "State", "Stars"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
		))
		return nil
	})
}
