package catalog

// NameVariant is one known (title, creator) spelling of an item, either the
// display fields or the raw text recorded by a source.
type NameVariant struct {
	Title   string
	Creator string
}

// Candidate bundles an item with every known name variant and its
// corroboration count for match scoring.
type Candidate struct {
	Item Item
	// Variants always starts with the item's own display title/creator,
	// followed by the raw text of each provenance edge.
	Variants []NameVariant
	// SourceCount is the number of provenance edges; better-corroborated
	// candidates win score ties.
	SourceCount int
}
