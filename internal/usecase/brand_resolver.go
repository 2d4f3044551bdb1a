package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

// storeNameBlocklist holds the storefront's own name variants; these must
// never be returned as a brand even when they are the only candidate
var storeNameBlocklist = map[string]bool{
	"green thumb":             true,
	"green thumb hydro":       true,
	"green thumb hydroponics": true,
	"greenthumbhydro":         true,
	"greenthumb":              true,
	"gth":                     true,
}

// genericNouns are words that show up in vendor columns but are not brands
var genericNouns = map[string]bool{
	"tools":       true,
	"other":       true,
	"unknown":     true,
	"controller":  true,
	"timer":       true,
	"misc":        true,
	"accessories": true,
	"supplies":    true,
	"default":     true,
}

// glueWords appearing anywhere in a candidate mean it is a phrase scraped
// from marketing copy, not a brand
var glueWords = map[string]bool{
	"and":            true,
	"with":           true,
	"for":            true,
	"cost-effective": true,
	"the":            true,
	"best":           true,
}

// BrandResolver normalizes brand names against a noisy vocabulary. The
// pattern table is ordered most-specific first so a generic brand never
// swallows a specific one ("General Hydroponics" before "General Organics"
// before anything matching bare "general").
type BrandResolver struct {
	rules []Rule[string]
}

// NewBrandResolver builds the resolver with the curated brand pattern table
func NewBrandResolver() *BrandResolver {
	return &BrandResolver{rules: brandRules()}
}

// brandPattern builds a rule resolving any of the given spellings to the
// canonical brand name
func brandPattern(canonical string, spellings string) Rule[string] {
	pattern := regexp.MustCompile(`(?i)\b(?:` + spellings + `)\b`)
	return Rule[string]{
		Pattern: pattern,
		Build:   func([]string) string { return canonical },
	}
}

func brandRules() []Rule[string] {
	return []Rule[string]{
		brandPattern("General Hydroponics", `general hydroponics|gen hydro|gh flora`),
		brandPattern("General Organics", `general organics`),
		brandPattern("Advanced Nutrients", `advanced nutrients`),
		brandPattern("FoxFarm", `fox\s*farm`),
		brandPattern("Botanicare", `botanicare`),
		brandPattern("House & Garden", `house (?:&|and) garden`),
		brandPattern("Nectar For The Gods", `nectar for the gods`),
		brandPattern("Emerald Harvest", `emerald harvest`),
		brandPattern("Roots Organics", `roots organics`),
		brandPattern("Down To Earth", `down to earth`),
		brandPattern("Mother Earth", `mother earth`),
		brandPattern("Gaia Green", `gaia green`),
		brandPattern("Dyna-Gro", `dyna-?gro`),
		brandPattern("Technaflora", `technaflora`),
		brandPattern("Clonex", `clonex`),
		brandPattern("Grodan", `grodan`),
		brandPattern("Hydrofarm", `hydrofarm`),
		brandPattern("Bluelab", `blue\s*lab`),
		brandPattern("AC Infinity", `ac infinity`),
		brandPattern("Spider Farmer", `spider farmer`),
		brandPattern("Mars Hydro", `mars hydro`),
		brandPattern("Gavita", `gavita`),
		brandPattern("Hortilux", `hortilux`),
		brandPattern("Athena", `athena`),
		// bare CANNA is generic enough to come last in the table
		brandPattern("CANNA", `canna`),
	}
}

// Resolve detects a brand for a record. Priority: title pattern match, then
// the vendor field, then the manufacturer field, then the legacy platform's
// brand column. The first candidate passing validity wins; an empty string
// means no brand could be resolved.
func (r *BrandResolver) Resolve(title, vendorField, manufacturerField, legacyBrandField string) string {
	if brand, ok := FirstMatch(r.rules, title); ok {
		return brand
	}

	for _, candidate := range []string{vendorField, manufacturerField, legacyBrandField} {
		if r.IsValidBrand(candidate) {
			return NormalizeBrand(candidate)
		}
	}

	return ""
}

// IsValidBrand rejects candidates that cannot be brands: empty strings,
// template fragments from corrupted scrapes, over-long phrases, glue-word
// phrases, the store's own name, and generic nouns.
func (r *BrandResolver) IsValidBrand(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	if strings.ContainsAny(s, "{}:") {
		return false
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "maxscore") || strings.Contains(lower, "error") {
		return false
	}

	words := strings.Fields(lower)
	if len(words) > 5 {
		return false
	}
	for _, w := range words {
		if glueWords[w] {
			return false
		}
	}

	if storeNameBlocklist[lower] || storeNameBlocklist[normalizeKey(s)] {
		return false
	}
	if len(words) == 1 && genericNouns[words[0]] {
		return false
	}

	return true
}

// NormalizeBrand collapses whitespace and title-cases each word, preserving
// words that are already all uppercase (acronyms like "GH" or "CANNA")
func NormalizeBrand(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if isAllUpper(w) {
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// isAllUpper checks if every letter in the string is uppercase
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
