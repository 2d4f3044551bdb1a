package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/greenthumb/backend/internal/domain"
)

// UnknownRank sorts variants with unparseable labels after every known size
var UnknownRank = math.Inf(1)

// Relative ordering scales per unit family. These are ordering keys within
// one grouped family, not physical unit conversions; cross-family comparison
// is meaningless and never happens.
const (
	scaleMilliliter = 1.0
	scaleLiter      = 1000.0
	scaleOunce      = 29.6
	scalePint       = 473.0
	scaleQuart      = 946.0
	scaleGallon     = 3785.0
	scaleGram       = 1.0
	scaleKilogram   = 1000.0
	scalePound      = 453.6
)

// Patterns used by the base-title extractor
var (
	dashUnitRegex = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)-(liters?|litres?|lt|l|gallons?|gal|quarts?|qt|pints?|pt|fl\.?\s*oz|oz|ounces?|lbs?|pounds?|ml|kg|grams?|g|watts?|w|inch(?:es)?|in|ct|count|pack|pk)\b`)
	emptyParens   = regexp.MustCompile(`\(\s*\)`)
)

// SizeTokenizer parses size/quantity tokens out of product titles using an
// ordered unit rule table. Table order encodes precedence: numbered liter
// patterns run before the bare "Lt"/"Liter" catch-all so a digit is never
// shadowed, and more specific imperial spellings run before shorter ones.
type SizeTokenizer struct {
	rules []Rule[domain.SizeToken]
}

// NewSizeTokenizer builds the tokenizer with the full unit table
func NewSizeTokenizer() *SizeTokenizer {
	return &SizeTokenizer{rules: []Rule[domain.SizeToken]{
		numberedUnit(`ml|milliliters?|millilitres?`, "ml", scaleMilliliter),
		numberedUnit(`liters?|litres?|lt|l`, "L", scaleLiter),
		{
			// half gallons are spelled "1/2 Gallon" in the legacy export
			Pattern: regexp.MustCompile(`(?i)\b1\s*/\s*2\s*(?:gallons?|gal)\b`),
			Build: func([]string) domain.SizeToken {
				return domain.SizeToken{Label: "1/2 Gallon", Rank: 0.5 * scaleGallon}
			},
		},
		numberedUnit(`gallons?|gal`, "Gallon", scaleGallon),
		numberedUnit(`quarts?|qt`, "Quart", scaleQuart),
		numberedUnit(`pints?|pt`, "Pint", scalePint),
		numberedUnit(`fl\.?\s*oz|oz|ounces?`, "oz", scaleOunce),
		numberedUnit(`lbs?|pounds?`, "lb", scalePound),
		numberedUnit(`kilograms?|kg`, "kg", scaleKilogram),
		numberedUnit(`grams?|g`, "g", scaleGram),
		numberedUnit(`inch(?:es)?|in`, "inch", 1),
		numberedUnit(`watts?|w`, "Watt", 1),
		numberedUnit(`ct|count|pack|pk`, "ct", 1),
		{
			// bare "Liter"/"Lt" with no preceding digit; tried last so it
			// never shadows a numbered match
			Pattern: regexp.MustCompile(`(?i)\b(?:liters?|litres?|lt)\b`),
			Build: func([]string) domain.SizeToken {
				return domain.SizeToken{Label: "1 L", Rank: scaleLiter}
			},
		},
	}}
}

// numberedUnit builds a rule matching "<number> <unit spelling>" and emitting
// a "<number> <label>" token ranked by value times the family scale
func numberedUnit(spellings, label string, scale float64) Rule[domain.SizeToken] {
	pattern := regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:` + spellings + `)\b`)
	return Rule[domain.SizeToken]{
		Pattern: pattern,
		Build: func(m []string) domain.SizeToken {
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return domain.SizeToken{Label: m[1] + " " + label, Rank: UnknownRank}
			}
			return domain.SizeToken{
				Label: formatSizeValue(value) + " " + label,
				Rank:  value * scale,
			}
		},
	}
}

// formatSizeValue renders "1", "2.5", "250" without a trailing decimal point
func formatSizeValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseSize extracts at most one size token from a title. The first matching
// table entry wins. A false return means the title is ungroupable by size.
func (t *SizeTokenizer) ParseSize(title string) (domain.SizeToken, bool) {
	if title == "" {
		return domain.SizeToken{}, false
	}
	return FirstMatch(t.rules, title)
}

// RankForLabel recovers the ordering rank from a stored size label, used when
// sorting a merged family's variants. Unknown labels sort last.
func (t *SizeTokenizer) RankForLabel(label string) float64 {
	token, ok := t.ParseSize(label)
	if !ok {
		return UnknownRank
	}
	return token.Rank
}

// ExtractBaseTitle returns the title with every recognized size token
// removed: dash-joined unit spellings are normalized first ("1-liter" ->
// "1 liter"), every unit pattern is stripped, then trailing dashes, empty
// parens, and commas are cleaned up. Idempotent.
func (t *SizeTokenizer) ExtractBaseTitle(title string) string {
	out := dashUnitRegex.ReplaceAllString(title, "$1 $2")
	out = StripAll(t.rules, out)
	out = emptyParens.ReplaceAllString(out, " ")
	out = multipleSpacesRegex.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	out = strings.Trim(out, "-,– ")
	return strings.TrimSpace(out)
}
