package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"discovery/internal/catalog"
	"discovery/internal/store"
	"discovery/internal/textnorm"
)

// resolveItem finds the single catalog item a user named on the command line.
// Lookup is by loosely equal title within the category; an ambiguous title
// needs the creator to disambiguate.
func resolveItem(ctx context.Context, st *store.Store, category catalog.Category, title, creator string) (*catalog.Item, error) {
	items, err := st.QueryItems(ctx, store.ItemFilter{Category: category, Search: title})
	if err != nil {
		return nil, err
	}

	var matches []catalog.Item
	for _, item := range items {
		if !textnorm.LooseEqual(item.Title, title) {
			continue
		}
		if creator != "" && !textnorm.LooseEqual(item.Creator, creator) {
			continue
		}
		matches = append(matches, item)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no %s item titled %q", category, title)
	case 1:
		item := matches[0]
		return &item, nil
	default:
		names := make([]string, 0, len(matches))
		for _, item := range matches {
			names = append(names, fmt.Sprintf("%q by %s", item.Title, orUnknown(item.Creator)))
		}
		return nil, fmt.Errorf("multiple %s items titled %q (%s); add --creator to disambiguate",
			category, title, strings.Join(names, ", "))
	}
}

// confirm asks a yes/no question on the command's streams, defaulting to no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func parseCategoryArg(value string) (catalog.Category, error) {
	return catalog.ParseCategory(value)
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unknown"
	}
	return value
}

func starsString(stars int) string {
	if stars <= 0 {
		return ""
	}
	return strings.Repeat("★", stars)
}

func lovedLabel(state catalog.LovedState) string {
	switch state {
	case catalog.Loved:
		return "loved"
	case catalog.Disliked:
		return "disliked"
	default:
		return ""
	}
}
