package usecase

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/greenthumb/backend/internal/domain"
)

// Image scoring weights
const (
	titleWordWeight = 1.0 // filename shares a product title word
	brandWordWeight = 0.5 // filename shares a vendor/brand word
	skuMatchBonus   = 3.0 // a variant SKU appears inside the filename
	minSKULength    = 4   // shorter SKUs substring-match too easily
)

// ImageMatcher scores candidate image files against a product's title,
// brand, and SKUs. Scores are normalized by title word count so long titles
// are not penalized for low absolute overlap.
type ImageMatcher struct {
	threshold float64
	cap       int
}

// NewImageMatcher creates a matcher with the given acceptance threshold and
// result cap; non-positive values fall back to the defaults (0.4, 5)
func NewImageMatcher(threshold float64, resultCap int) *ImageMatcher {
	if threshold <= 0 {
		threshold = 0.4
	}
	if resultCap <= 0 {
		resultCap = 5
	}
	return &ImageMatcher{threshold: threshold, cap: resultCap}
}

// MatchImages ranks candidates by score descending, drops everything under
// the threshold, and caps the result. Sorting is stable so equal scores keep
// candidate order.
func (m *ImageMatcher) MatchImages(p *domain.CanonicalProduct, candidates []string) []domain.ImageMatch {
	words := titleWords(p.Title)
	if len(words) == 0 {
		words = titleWords(p.BaseTitle)
	}

	brandWords := titleWords(p.Brand + " " + p.Vendor)

	var matches []domain.ImageMatch
	for _, candidate := range candidates {
		score := m.score(candidate, words, brandWords, p.Variants)
		if score >= m.threshold {
			matches = append(matches, domain.ImageMatch{Path: candidate, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > m.cap {
		matches = matches[:m.cap]
	}
	return matches
}

// score computes one candidate's normalized score
func (m *ImageMatcher) score(candidate string, words, brandWords []string, variants []domain.Variant) float64 {
	nameTokens := filenameTokens(candidate)
	if len(nameTokens) == 0 {
		return 0
	}
	tokenSet := make(map[string]bool, len(nameTokens))
	for _, t := range nameTokens {
		tokenSet[t] = true
	}

	raw := 0.0
	for _, w := range words {
		if tokenSet[w] {
			raw += titleWordWeight
		}
	}
	for _, w := range brandWords {
		if tokenSet[w] {
			raw += brandWordWeight
		}
	}

	normalized := normalizeKey(filepath.Base(candidate))
	for _, v := range variants {
		sku := normalizeKey(v.SKU)
		if len(sku) >= minSKULength && strings.Contains(normalized, sku) {
			raw += skuMatchBonus
			break
		}
	}

	divisor := len(words)
	if divisor < 1 {
		divisor = 1
	}
	return raw / float64(divisor)
}

// filenameTokens splits an image filename (extension dropped) into lowercase
// words longer than two characters
func filenameTokens(path string) []string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	// Underscores count as word characters, so break them up explicitly
	base = strings.ReplaceAll(base, "_", " ")
	return titleWords(base)
}
