package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns shared across the engine
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)
	punctuationRegex     = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// normalizeKey reduces a string to its alphanumeric-only lowercase form.
// Grouping keys and lookup-table keys are built with this so that records
// differing only in punctuation or case still collide.
func normalizeKey(s string) string {
	return nonAlphanumericRegex.ReplaceAllString(strings.ToLower(s), "")
}

// normalizeTitleKey lowercases and collapses a title to single-spaced
// alphanumeric words, preserving word boundaries
func normalizeTitleKey(s string) string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(cleaned, " "))
}

// titleWords splits a string into lowercase words longer than two characters
func titleWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(normalizeTitleKey(s)) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// slugify converts a title into a URL-safe handle: lowercase, runs of
// non-alphanumerics collapsed to single dashes, edge dashes trimmed, capped
// at 80 characters on a dash boundary where possible.
func slugify(s string) string {
	slug := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = slug[:80]
		if idx := strings.LastIndex(slug, "-"); idx > 40 {
			slug = slug[:idx]
		}
	}
	return slug
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
