package textnorm

import "strings"

// DefaultStopWords are noise tokens dropped during tokenization. They cover
// articles plus the edition/version markers that vary across store listings
// of the same work.
func DefaultStopWords() []string {
	return []string{
		"the", "and", "feat", "featuring", "with",
		"remaster", "remastered", "deluxe", "edition", "expanded",
		"version", "edit", "live", "single", "album",
	}
}

// Tokenizer splits normalized text into comparison tokens.
type Tokenizer struct {
	stopWords map[string]struct{}
}

// NewTokenizer builds a tokenizer with the given stop-word list. A nil or
// empty list falls back to DefaultStopWords.
func NewTokenizer(stopWords []string) *Tokenizer {
	if len(stopWords) == 0 {
		stopWords = DefaultStopWords()
	}
	set := make(map[string]struct{}, len(stopWords))
	for _, word := range stopWords {
		word = Normalize(word)
		if word != "" {
			set[word] = struct{}{}
		}
	}
	return &Tokenizer{stopWords: set}
}

// Tokenize splits the normalized form of text on whitespace, dropping tokens
// of length <= 2 and stop words. Tokens are deduplicated preserving
// first-seen order so diagnostics stay reproducible.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) <= 2 {
			continue
		}
		if _, stop := t.stopWords[field]; stop {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		tokens = append(tokens, field)
	}
	return tokens
}

// Overlap counts tokens present in both slices.
func Overlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, token := range a {
		set[token] = struct{}{}
	}
	count := 0
	for _, token := range b {
		if _, ok := set[token]; ok {
			count++
		}
	}
	return count
}
