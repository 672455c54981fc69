package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/recon"
	"discovery/internal/store"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		creator string
		notes   string
		stars   int
		loved   bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "add <category> <title>",
		Short: "Add an item to the catalog",
		Long: "Add an item by hand. Before creating anything the catalog is searched\n" +
			"for likely duplicates and you are asked whether to reuse the existing\n" +
			"item; --force skips the prompt and always creates a new one.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			if stars < 0 || stars > 5 {
				return fmt.Errorf("stars must be between 1 and 5")
			}

			rec := recon.Record{
				Category: category,
				Title:    args[1],
				Creator:  creator,
				Notes:    notes,
				Source:   catalog.SourceManual,
				Stars:    stars,
				Explicit: stars > 0 || loved,
			}
			if loved {
				v := true
				rec.Loved = &v
			}

			return ctx.withSession(func(cfg *config.Config, st *store.Store, session *recon.Session) error {
				out := cmd.OutOrStdout()

				var existing *catalog.Item
				if !force {
					match, err := session.Matcher().FindMatch(cmd.Context(), category, rec.Title, rec.Creator, recon.ModeLoose)
					if err != nil {
						return err
					}
					if match != nil {
						question := fmt.Sprintf("Similar item exists: %q by %s (score %d). Use it instead of adding a new one?",
							match.Title, orUnknown(match.Creator), match.Score)
						if confirm(cmd, question) {
							existing, err = st.GetItem(cmd.Context(), match.ItemID)
							if err != nil {
								return err
							}
						}
					}
				}

				id, action, err := session.Merger().Merge(cmd.Context(), existing, rec)
				if err != nil {
					return err
				}

				switch action {
				case recon.ActionCreated:
					fmt.Fprintf(out, "Added %s %q (%s)\n", category, rec.Title, id)
				case recon.ActionUpdated:
					fmt.Fprintf(out, "Updated existing item %s\n", id)
				default:
					fmt.Fprintf(out, "Item %s already up to date\n", id)
				}

				pruned, err := session.PruneWishlist(cmd.Context(), category)
				if err != nil {
					return err
				}
				for _, entry := range pruned {
					fmt.Fprintf(out, "Wishlist satisfied: %s\n", entry.Title)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "Artist, author, developer, or director")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&stars, "stars", 0, "Star rating 1-5")
	cmd.Flags().BoolVar(&loved, "loved", false, "Mark the item loved")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the duplicate prompt and add as new")
	return cmd
}
