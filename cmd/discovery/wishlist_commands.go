package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/recon"
	"discovery/internal/store"
	"discovery/internal/textnorm"
)

func newWishlistCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Track items you want but do not own yet",
	}

	cmd.AddCommand(newWishlistAddCommand(ctx))
	cmd.AddCommand(newWishlistListCommand(ctx))
	cmd.AddCommand(newWishlistRemoveCommand(ctx))
	cmd.AddCommand(newWishlistPruneCommand(ctx))
	return cmd
}

func newWishlistAddCommand(ctx *commandContext) *cobra.Command {
	var (
		creator string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add <category> <title>",
		Short: "Add a wishlist entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}

			return ctx.withSession(func(cfg *config.Config, st *store.Store, session *recon.Session) error {
				entry := catalog.WishlistItem{
					ID:        uuid.NewString(),
					Category:  category,
					Title:     args[1],
					Creator:   creator,
					Notes:     notes,
					CreatedAt: time.Now().UTC(),
				}

				// Owning the item already makes the entry pointless.
				satisfied, err := session.WishlistSatisfied(cmd.Context(), entry)
				if err != nil {
					return err
				}
				if satisfied {
					return fmt.Errorf("%q is already in the catalog", entry.Title)
				}

				if err := st.AddWishlistItem(cmd.Context(), &entry); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wishlisted %s %q\n", category, entry.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "Artist, author, developer, or director")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newWishlistListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List wishlist entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var category catalog.Category
			if len(args) == 1 {
				parsed, err := parseCategoryArg(args[0])
				if err != nil {
					return err
				}
				category = parsed
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				entries, err := st.WishlistItems(cmd.Context(), category)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Wishlist is empty")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						string(entry.Category),
						entry.Title,
						orUnknown(entry.Creator),
						entry.CreatedAt.Format("2006-01-02"),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Category", "Title", "Creator", "Added"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newWishlistRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <category> <title>",
		Short: "Remove a wishlist entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				entries, err := st.WishlistItems(cmd.Context(), category)
				if err != nil {
					return err
				}

				for _, entry := range entries {
					if !textnorm.LooseEqual(entry.Title, args[1]) {
						continue
					}
					removed, err := st.RemoveWishlistItem(cmd.Context(), entry.ID)
					if err != nil {
						return err
					}
					if removed {
						fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from the wishlist\n", entry.Title)
					}
					return nil
				}
				return fmt.Errorf("no %s wishlist entry titled %q", category, args[1])
			})
		},
	}
	return cmd
}

func newWishlistPruneCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune [category]",
		Short: "Drop wishlist entries already covered by the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := catalog.Categories()
			if len(args) == 1 {
				category, err := parseCategoryArg(args[0])
				if err != nil {
					return err
				}
				categories = []catalog.Category{category}
			}

			return ctx.withSession(func(cfg *config.Config, st *store.Store, session *recon.Session) error {
				out := cmd.OutOrStdout()
				total := 0
				for _, category := range categories {
					pruned, err := session.PruneWishlist(cmd.Context(), category)
					if err != nil {
						return err
					}
					for _, entry := range pruned {
						fmt.Fprintf(out, "Pruned %s %q\n", entry.Category, entry.Title)
					}
					total += len(pruned)
				}
				if total == 0 {
					fmt.Fprintln(out, "Nothing to prune")
				}
				return nil
			})
		},
	}
	return cmd
}
