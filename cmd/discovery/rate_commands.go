package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/store"
)

func newLoveCommand(ctx *commandContext) *cobra.Command {
	var creator string
	cmd := &cobra.Command{
		Use:   "love <category> <title>",
		Short: "Mark an item loved",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setLovedState(ctx, cmd, args[0], args[1], creator, catalog.Loved)
		},
	}
	cmd.Flags().StringVar(&creator, "creator", "", "Disambiguate by creator")
	return cmd
}

func newDislikeCommand(ctx *commandContext) *cobra.Command {
	var creator string
	cmd := &cobra.Command{
		Use:   "dislike <category> <title>",
		Short: "Mark an item disliked",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setLovedState(ctx, cmd, args[0], args[1], creator, catalog.Disliked)
		},
	}
	cmd.Flags().StringVar(&creator, "creator", "", "Disambiguate by creator")
	return cmd
}

func newUnloveCommand(ctx *commandContext) *cobra.Command {
	var creator string
	cmd := &cobra.Command{
		Use:   "unlove <category> <title>",
		Short: "Clear an item's loved or disliked state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setLovedState(ctx, cmd, args[0], args[1], creator, catalog.LovedNeutral)
		},
	}
	cmd.Flags().StringVar(&creator, "creator", "", "Disambiguate by creator")
	return cmd
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	var creator string
	cmd := &cobra.Command{
		Use:   "rate <category> <title> <stars>",
		Short: "Give an item a 1-5 star rating",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			stars, err := strconv.Atoi(args[2])
			if err != nil || stars < 1 || stars > 5 {
				return fmt.Errorf("stars must be a number between 1 and 5")
			}

			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				item, err := resolveItem(cmd.Context(), st, category, args[1], creator)
				if err != nil {
					return err
				}

				rating, err := st.GetRating(cmd.Context(), item.ID)
				if err != nil {
					return err
				}
				if rating == nil {
					rating = &catalog.Rating{ItemID: item.ID}
				}
				rating.Stars = stars
				rating.UserSet = true
				rating.RatedAt = time.Now().UTC()
				if err := st.UpsertRating(cmd.Context(), rating); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Rated %q %s\n", item.Title, starsString(stars))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&creator, "creator", "", "Disambiguate by creator")
	return cmd
}

// setLovedState applies an explicit user judgment. Explicit actions set the
// user_set marker so later imports cannot override them.
func setLovedState(ctx *commandContext, cmd *cobra.Command, categoryArg, title, creator string, state catalog.LovedState) error {
	category, err := parseCategoryArg(categoryArg)
	if err != nil {
		return err
	}

	return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
		item, err := resolveItem(cmd.Context(), st, category, title, creator)
		if err != nil {
			return err
		}

		rating, err := st.GetRating(cmd.Context(), item.ID)
		if err != nil {
			return err
		}
		if rating == nil {
			rating = &catalog.Rating{ItemID: item.ID}
		}
		rating.State = state
		rating.UserSet = true
		rating.RatedAt = time.Now().UTC()
		if err := st.UpsertRating(cmd.Context(), rating); err != nil {
			return err
		}

		label := lovedLabel(state)
		if label == "" {
			label = "neutral"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %q %s\n", item.Title, label)
		return nil
	})
}
