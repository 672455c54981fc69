package catalog

import (
	"fmt"
	"strings"
)

// Category identifies the kind of work an item represents. Matching never
// crosses categories.
type Category string

const (
	CategoryMusic   Category = "music"
	CategoryGame    Category = "game"
	CategoryBook    Category = "book"
	CategoryMovie   Category = "movie"
	CategoryTV      Category = "tv"
	CategoryPodcast Category = "podcast"
	CategoryPaper   Category = "paper"
)

var allCategories = []Category{
	CategoryMusic,
	CategoryGame,
	CategoryBook,
	CategoryMovie,
	CategoryTV,
	CategoryPodcast,
	CategoryPaper,
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{}, len(allCategories))
	for _, category := range allCategories {
		set[category] = struct{}{}
	}
	return set
}()

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	_, ok := categorySet[c]
	return ok
}

// String returns the category's storage value.
func (c Category) String() string { return string(c) }

// ParseCategory converts user or importer input into a Category.
func ParseCategory(value string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(value)))
	if !category.Valid() {
		return "", fmt.Errorf("unknown category %q (expected one of %s)", value, joinCategories())
	}
	return category, nil
}

func joinCategories() string {
	names := make([]string, len(allCategories))
	for i, category := range allCategories {
		names[i] = string(category)
	}
	return strings.Join(names, ", ")
}
