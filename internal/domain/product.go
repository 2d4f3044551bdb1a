package domain

// SizeToken is the result of parsing a size/quantity token out of a title.
// Rank is an engine-internal ordering key used to sort variants within one
// family; it is not a physical unit conversion and must never be compared
// across families.
type SizeToken struct {
	Label string  `json:"label"`
	Rank  float64 `json:"rank"`
}

// Variant is one purchasable size/option of a canonical product.
// OptionLabel is unique within the parent's variant list.
type Variant struct {
	OptionLabel    string  `json:"optionLabel"`
	SKU            string  `json:"sku,omitempty"`
	Price          float64 `json:"price,omitempty"`
	CompareAtPrice float64 `json:"compareAtPrice,omitempty"`
	Cost           float64 `json:"cost,omitempty"`
	UPC            string  `json:"upc,omitempty"`
	Weight         float64 `json:"weight,omitempty"`
	InventoryQty   int     `json:"inventoryQty,omitempty"`
}

// ImageMatch is one candidate image scored against a product
type ImageMatch struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// PublishVerdict is the publish-readiness result for one product
type PublishVerdict struct {
	Ready           bool     `json:"ready"`
	BlockingReasons []string `json:"blockingReasons,omitempty"`
	Observations    []string `json:"observations,omitempty"`
}

// CanonicalProduct is the unit of output: one deduplicated product with its
// grouped variants. Handle is globally unique across one run's output set.
type CanonicalProduct struct {
	Handle          string         `json:"handle"`
	Title           string         `json:"title"`
	BaseTitle       string         `json:"baseTitle"`
	DescriptionHTML string         `json:"descriptionHtml,omitempty"`
	Brand           string         `json:"brand,omitempty"`
	Vendor          string         `json:"vendor,omitempty"`
	Category        string         `json:"category,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Variants        []Variant      `json:"variants"`
	Images          []string       `json:"images,omitempty"`
	MatchedImages   []ImageMatch   `json:"matchedImages,omitempty"`
	SourcesPresent  []Source       `json:"sourcesPresent"`
	SKU             string         `json:"sku,omitempty"`
	SKUSource       string         `json:"skuSource,omitempty"`
	Confidence      int            `json:"confidence"`
	QualityScore    int            `json:"qualityScore"`
	Publish         PublishVerdict `json:"publish"`
}

// HasSource reports whether the product carries data from the given source
func (p *CanonicalProduct) HasSource(src Source) bool {
	for _, s := range p.SourcesPresent {
		if s == src {
			return true
		}
	}
	return false
}

// MatchTier identifies which classification tier produced a category assignment
type MatchTier string

const (
	TierExact   MatchTier = "exact"
	TierHandle  MatchTier = "handle"
	TierFuzzy   MatchTier = "fuzzy"
	TierLearned MatchTier = "learned"
	TierPattern MatchTier = "pattern"
)

// CategoryEntry is a category assignment with provenance
type CategoryEntry struct {
	Key                 string    `json:"key"`
	PrimaryCategory     string    `json:"primaryCategory"`
	SecondaryCategories []string  `json:"secondaryCategories,omitempty"`
	Brand               string    `json:"brand,omitempty"`
	MatchTier           MatchTier `json:"matchTier"`
}

// SKU resolution sources, in priority order
const (
	SKUSourceStorefront = "storefront"
	SKUSourceInventory  = "inventory"
	SKUSourceLegacy     = "legacy"
	SKUSourceDerived    = "derived"
	SKUSourceNone       = "none"
)

// ResolvedSKU is the outcome of identifier resolution for one product
type ResolvedSKU struct {
	SKU    string `json:"sku,omitempty"`
	Source string `json:"source"`
}
