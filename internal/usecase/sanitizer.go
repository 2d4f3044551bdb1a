package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/greenthumb/backend/internal/domain"
)

// htmlTagRegex is a cheap pre-check for markup before invoking a real parse
var htmlTagRegex = regexp.MustCompile(`<\s*/?\s*[a-zA-Z][^>]*>`)

// maxCleanTitleLength is the point past which a title reads as a pasted
// description fragment rather than a product name
const maxCleanTitleLength = 200

// maxHandleSegments is the number of dash-separated words past which a
// handle looks like flattened description text
const maxHandleSegments = 8

// ContainsHTML reports whether a string carries HTML markup. The regex
// pre-check keeps the parser off the hot path for clean titles.
func ContainsHTML(s string) bool {
	if !htmlTagRegex.MatchString(s) {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// Unparseable but tag-shaped input is still treated as markup
		return true
	}
	return strings.TrimSpace(doc.Text()) != strings.TrimSpace(s)
}

// HTMLToText extracts the visible text of an HTML fragment. The publish
// gate uses it so a markup-only description still reads as missing.
func HTMLToText(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(doc.Text(), " "))
}

// CheckCorrupted applies the corruption heuristics to a record. A non-empty
// reason means the record must be dropped from the output set; this is the
// one place the engine discards data instead of passing it through.
func CheckCorrupted(rec domain.RawProductRecord) (string, bool) {
	if ContainsHTML(rec.Title) {
		return "title contains HTML markup", true
	}
	if ContainsHTML(rec.Handle) {
		return "handle contains HTML markup", true
	}

	if len(rec.Title) > maxCleanTitleLength && looksLikeSentence(rec.Title) {
		return fmt.Sprintf("title is %d characters and reads as a description fragment", len(rec.Title)), true
	}

	if segments := strings.Count(rec.Handle, "-") + 1; rec.Handle != "" && segments > maxHandleSegments {
		return fmt.Sprintf("handle has %d dash-separated segments, looks like flattened description text", segments), true
	}

	return "", false
}

// looksLikeSentence detects prose: sentence punctuation mid-string or a
// word count no product name reaches
func looksLikeSentence(s string) bool {
	if strings.Contains(s, ". ") || strings.Contains(s, "! ") {
		return true
	}
	return len(strings.Fields(s)) > 25
}
