package usecase

import (
	"math"
	"regexp"
	"sort"

	"github.com/greenthumb/backend/internal/domain"
)

// CategoryIndex is the curated title->category lookup table, indexed both by
// normalized title and by handle-shaped key. Treated as opaque input; it is
// built upstream and loaded from disk.
type CategoryIndex struct {
	byTitle  map[string]domain.CategoryEntry
	byHandle map[string]domain.CategoryEntry
	entries  []domain.CategoryEntry
}

// NewCategoryIndex builds the lookup maps from curated entries. Later
// duplicates of a key are ignored so the curated file's first word stands.
func NewCategoryIndex(entries []domain.CategoryEntry) *CategoryIndex {
	idx := &CategoryIndex{
		byTitle:  make(map[string]domain.CategoryEntry, len(entries)),
		byHandle: make(map[string]domain.CategoryEntry, len(entries)),
	}
	for _, e := range entries {
		titleKey := normalizeTitleKey(e.Key)
		if _, dup := idx.byTitle[titleKey]; !dup {
			idx.byTitle[titleKey] = e
		}
		handleKey := slugify(e.Key)
		if _, dup := idx.byHandle[handleKey]; !dup {
			idx.byHandle[handleKey] = e
		}
		idx.entries = append(idx.entries, e)
	}
	return idx
}

// Len returns the number of curated entries
func (idx *CategoryIndex) Len() int {
	return len(idx.entries)
}

// categoryRule is one entry in the ordered pattern tier: a category plus the
// title patterns that assign it. Position in the table is business policy —
// categories near the head win when a title could match several sets.
type categoryRule struct {
	category string
	patterns []*regexp.Regexp
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// categoryPatternTable assigns categories by title pattern as the last
// classification tier. Ordered most-specific first.
var categoryPatternTable = []categoryRule{
	{"pH Control", patterns(`\bph\s*(up|down|control|test|buffer)\b`, `\bph\s*calibration\b`)},
	{"Meters & Testing", patterns(`\b(meter|tester|ppm|tds|ec pen)\b`, `\bcalibration solution\b`)},
	{"Lighting", patterns(`\b(led|hps|cmh|mh)\b.*\b(light|lamp|bulb|fixture)\b`, `\b(ballast|reflector|grow light)\b`, `\b\d+\s*w(att)?s?\b.*\b(light|lamp|bulb|led)\b`)},
	{"Ventilation", patterns(`\b(inline fan|duct|blower|carbon filter|exhaust)\b`, `\bfan\b`)},
	{"Pest Control", patterns(`\b(insecticid|fungicid|miticid)`, `\b(neem|pest|mite|gnat)\b`)},
	{"Propagation", patterns(`\b(clone|cloning|rooting|propagation|seedling|humidity dome)\b`)},
	{"Growing Media", patterns(`\b(coco coir|coco|rockwool|perlite|vermiculite|clay pebbles|potting soil|peat)\b`, `\bgrow(ing)? (media|medium)\b`)},
	{"Nutrients & Additives", patterns(`\b(nutrient|fertilizer|bloom|micro|gro|cal.?mag|silica|supplement|additive|feed)\b`, `\bflora(gro|micro|bloom)?\b`)},
	{"Containers", patterns(`\b(fabric pot|pot|bucket|tray|saucer|container)\b`)},
	{"Irrigation", patterns(`\b(pump|tubing|dripper|drip|reservoir|irrigation|hose)\b`)},
	{"Environment Control", patterns(`\b(controller|timer|thermostat|hygrometer|thermometer)\b`)},
}

// Classifier assigns a primary category to a canonical product through a
// tiered fallback strategy: exact title lookup, handle-keyed lookup, stemmed
// fuzzy overlap, learned handle map, then ordered pattern rules. A nil
// result is the valid "uncategorized" terminal state, not an error.
type Classifier struct {
	index        *CategoryIndex
	learned      map[string]string
	stemmer      *EnglishStemmer
	overlapRatio float64
	rules        []categoryRule
}

// NewClassifier creates a classifier over the curated index and the learned
// handle->category map produced by the upstream clustering pass
func NewClassifier(index *CategoryIndex, learned map[string]string, overlapRatio float64) *Classifier {
	if index == nil {
		index = NewCategoryIndex(nil)
	}
	if overlapRatio <= 0 || overlapRatio > 1 {
		overlapRatio = 0.6
	}
	return &Classifier{
		index:        index,
		learned:      learned,
		stemmer:      NewEnglishStemmer(),
		overlapRatio: overlapRatio,
		rules:        categoryPatternTable,
	}
}

// Classify runs the tiers in order and returns the first hit
func (c *Classifier) Classify(p *domain.CanonicalProduct) *domain.CategoryEntry {
	// Tier 1: exact normalized-title lookup
	if e, ok := c.index.byTitle[normalizeTitleKey(p.Title)]; ok {
		return withTier(e, domain.TierExact)
	}

	// Tier 2: handle-keyed lookup
	if e, ok := c.index.byHandle[p.Handle]; ok {
		return withTier(e, domain.TierHandle)
	}

	// Tier 3: stemmed fuzzy overlap against every indexed entry
	if e, ok := c.fuzzyMatch(p.Title); ok {
		return withTier(e, domain.TierFuzzy)
	}

	// Tier 4: learned handle map from the upstream clustering pass
	if cat, ok := c.learned[p.Handle]; ok && cat != "" {
		return &domain.CategoryEntry{
			Key:             p.Handle,
			PrimaryCategory: cat,
			MatchTier:       domain.TierLearned,
		}
	}

	// Tier 5: ordered pattern rules; first category with any hit wins
	for _, rule := range c.rules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(p.Title) {
				return &domain.CategoryEntry{
					Key:             rule.category,
					PrimaryCategory: rule.category,
					MatchTier:       domain.TierPattern,
				}
			}
		}
	}

	return nil
}

// fuzzyCandidate is one index entry that met the overlap threshold
type fuzzyCandidate struct {
	entry   domain.CategoryEntry
	overlap int
	ratio   float64
	key     string
}

// fuzzyMatch accepts an index entry when enough of the product's title words
// appear in the entry's key. Candidates are collected and sorted before
// reduction — highest overlap, then highest overlap ratio, then smallest key
// — so ties resolve identically no matter how the index map iterates or
// whether the scan is sharded.
func (c *Classifier) fuzzyMatch(title string) (domain.CategoryEntry, bool) {
	words := c.stemmer.StemTokens(titleWords(title))
	if len(words) == 0 {
		return domain.CategoryEntry{}, false
	}
	threshold := int(math.Max(2, math.Ceil(c.overlapRatio*float64(len(words)))))

	var candidates []fuzzyCandidate
	for _, e := range c.index.entries {
		entryWords := c.stemmer.StemTokens(titleWords(e.Key))
		if len(entryWords) == 0 {
			continue
		}
		entrySet := make(map[string]bool, len(entryWords))
		for _, w := range entryWords {
			entrySet[w] = true
		}

		overlap := 0
		for _, w := range words {
			if entrySet[w] {
				overlap++
			}
		}
		if overlap >= threshold {
			candidates = append(candidates, fuzzyCandidate{
				entry:   e,
				overlap: overlap,
				ratio:   float64(overlap) / float64(len(entrySet)),
				key:     normalizeTitleKey(e.Key),
			})
		}
	}

	if len(candidates) == 0 {
		return domain.CategoryEntry{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		if candidates[i].ratio != candidates[j].ratio {
			return candidates[i].ratio > candidates[j].ratio
		}
		return candidates[i].key < candidates[j].key
	})

	return candidates[0].entry, true
}

// withTier stamps the tier that produced a copied index entry
func withTier(e domain.CategoryEntry, tier domain.MatchTier) *domain.CategoryEntry {
	e.MatchTier = tier
	return &e
}
