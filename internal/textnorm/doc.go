// Package textnorm canonicalizes free-text titles and creator names for
// comparison. Normalization lowercases, strips diacritics, folds punctuation
// to spaces, and collapses whitespace. Two strings are loosely equal when
// their normalized forms are identical, and loosely containing when one
// normalized form is a substring of the other.
package textnorm
