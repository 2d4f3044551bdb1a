package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/greenthumb/backend/internal/domain"
)

// placeholderOptions are stated option values that carry no size information;
// the size parsed from the member's title is used instead
var placeholderOptions = map[string]bool{
	"default":       true,
	"default title": true,
	"1 pc":          true,
}

// singletonConfidence and mergedConfidence are the base confidence values
// before quality boosts. Merged families are better-attested: two or more
// records corroborate each other.
const (
	singletonConfidence = 55
	mergedConfidence    = 75
)

// HandleArena tracks every handle emitted during one run so collisions are
// resolved by deterministic numeric suffixing across the whole output set,
// never silently overwritten. The arena is owned by the caller and passed in
// explicitly; no state survives between runs.
type HandleArena struct {
	used map[string]bool
}

// NewHandleArena creates an empty arena for one run
func NewHandleArena() *HandleArena {
	return &HandleArena{used: make(map[string]bool)}
}

// Claim reserves the base handle, or the first free "-2", "-3", ... suffixed
// form when the base is taken. Returns the claimed handle and whether a
// suffix was needed.
func (a *HandleArena) Claim(base string) (string, bool) {
	if base == "" {
		base = "product"
	}
	if !a.used[base] {
		a.used[base] = true
		return base, false
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !a.used[candidate] {
			a.used[candidate] = true
			return candidate, true
		}
	}
}

// familyMember is one record plus its parsed size token
type familyMember struct {
	record domain.RawProductRecord
	token  domain.SizeToken
}

// FamilyGrouper merges single-variant records that describe the same
// physical product at different sizes into one canonical product. Grouping
// keys are built from stripped base titles only; brand and vendor metadata
// are deliberately excluded so records differing only there still merge.
type FamilyGrouper struct {
	sizes *SizeTokenizer
}

// NewFamilyGrouper creates a grouper over the given size tokenizer
func NewFamilyGrouper(sizes *SizeTokenizer) *FamilyGrouper {
	return &FamilyGrouper{sizes: sizes}
}

// Group buckets candidate records by grouping key and merges buckets of two
// or more into multi-variant canonical products. Records without a parseable
// size token pass through as singletons; grouping never drops data. All
// iteration is insertion-ordered so identical input yields identical output.
func (g *FamilyGrouper) Group(records []domain.RawProductRecord, arena *HandleArena) ([]domain.CanonicalProduct, []domain.Diagnostic) {
	var products []domain.CanonicalProduct
	var diags []domain.Diagnostic

	buckets := make(map[string][]familyMember)
	var bucketOrder []string

	for _, rec := range records {
		token, ok := g.sizes.ParseSize(rec.Title)
		if !ok {
			products = append(products, g.singleton(rec, domain.SizeToken{}, false, arena, &diags))
			continue
		}

		key := normalizeKey(g.sizes.ExtractBaseTitle(rec.Title))
		if key == "" {
			// Title was nothing but a size token; ungroupable
			products = append(products, g.singleton(rec, token, true, arena, &diags))
			continue
		}

		if _, seen := buckets[key]; !seen {
			bucketOrder = append(bucketOrder, key)
		}
		buckets[key] = append(buckets[key], familyMember{record: rec, token: token})
	}

	for _, key := range bucketOrder {
		members := buckets[key]
		if len(members) == 1 {
			products = append(products, g.singleton(members[0].record, members[0].token, true, arena, &diags))
			continue
		}
		products = append(products, g.merge(members, arena, &diags))
	}

	return products, diags
}

// singleton wraps one record into its own canonical product. When the title
// carried a size token the variant is labeled with it, otherwise "Default".
func (g *FamilyGrouper) singleton(rec domain.RawProductRecord, token domain.SizeToken, sized bool, arena *HandleArena, diags *[]domain.Diagnostic) domain.CanonicalProduct {
	base := rec.Handle
	if base == "" {
		base = slugify(rec.Title)
	}
	handle, suffixed := arena.Claim(base)
	if suffixed {
		*diags = append(*diags, domain.Diagnostic{
			Kind:   domain.DiagHandleCollision,
			Handle: handle,
			Detail: fmt.Sprintf("handle %q already emitted, suffixed to %q", base, handle),
		})
	}

	label := "Default"
	if sized {
		label = effectiveLabel(rec, token)
	}

	return domain.CanonicalProduct{
		Handle:          handle,
		Title:           rec.Title,
		BaseTitle:       g.sizes.ExtractBaseTitle(rec.Title),
		DescriptionHTML: rec.DescriptionHTML,
		Brand:           rec.Brand,
		Vendor:          rec.Vendor,
		Tags:            append([]string(nil), rec.Tags...),
		Variants:        []domain.Variant{variantFromRecord(rec, label)},
		Images:          append([]string(nil), rec.Images...),
		SourcesPresent:  []domain.Source{rec.Source},
		Confidence:      singletonConfidence,
	}
}

// merge folds two or more same-base records into one multi-variant product
func (g *FamilyGrouper) merge(members []familyMember, arena *HandleArena, diags *[]domain.Diagnostic) domain.CanonicalProduct {
	// Lowest-rank member seeds the product identity
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].token.Rank < members[j].token.Rank
	})
	seed := members[0].record
	baseTitle := g.sizes.ExtractBaseTitle(seed.Title)

	handle, suffixed := arena.Claim(slugify(baseTitle))
	if suffixed {
		*diags = append(*diags, domain.Diagnostic{
			Kind:   domain.DiagHandleCollision,
			Handle: handle,
			Detail: fmt.Sprintf("merged family base handle taken, suffixed to %q", handle),
		})
	}

	product := domain.CanonicalProduct{
		Handle:     handle,
		Title:      baseTitle,
		BaseTitle:  baseTitle,
		Confidence: mergedConfidence,
	}

	byLabel := make(map[string]domain.Variant)
	var labelOrder []string
	imageSeen := make(map[string]bool)
	tagSeen := make(map[string]bool)

	for _, m := range members {
		rec := m.record
		label := effectiveLabel(rec, m.token)

		if existing, clash := byLabel[label]; clash {
			incoming := variantFromRecord(rec, label)
			// Higher completeness wins; ties keep the earlier entry
			if completenessScore(incoming) > completenessScore(existing) {
				byLabel[label] = incoming
				*diags = append(*diags, domain.Diagnostic{
					Kind:   domain.DiagVariantConflict,
					Handle: handle,
					Detail: fmt.Sprintf("duplicate size %q: replaced variant (completeness %d) with better-populated record (completeness %d)", label, completenessScore(existing), completenessScore(incoming)),
				})
			} else {
				*diags = append(*diags, domain.Diagnostic{
					Kind:   domain.DiagVariantConflict,
					Handle: handle,
					Detail: fmt.Sprintf("duplicate size %q: kept earlier variant (completeness %d >= %d)", label, completenessScore(existing), completenessScore(incoming)),
				})
			}
		} else {
			byLabel[label] = variantFromRecord(rec, label)
			labelOrder = append(labelOrder, label)
		}

		for _, img := range rec.Images {
			if !imageSeen[img] {
				imageSeen[img] = true
				product.Images = append(product.Images, img)
			}
		}
		for _, tag := range rec.Tags {
			if !tagSeen[tag] {
				tagSeen[tag] = true
				product.Tags = append(product.Tags, tag)
			}
		}
		if len(rec.DescriptionHTML) > len(product.DescriptionHTML) {
			product.DescriptionHTML = rec.DescriptionHTML
		}
		if product.Brand == "" {
			product.Brand = rec.Brand
		}
		if product.Vendor == "" {
			product.Vendor = rec.Vendor
		}
		if !product.HasSource(rec.Source) {
			product.SourcesPresent = append(product.SourcesPresent, rec.Source)
		}
	}

	// Variants ordered by the rank recovered from their labels; stable, so
	// equal ranks keep first-seen order
	sort.SliceStable(labelOrder, func(i, j int) bool {
		return g.sizes.RankForLabel(labelOrder[i]) < g.sizes.RankForLabel(labelOrder[j])
	})
	for _, label := range labelOrder {
		product.Variants = append(product.Variants, byLabel[label])
	}

	*diags = append(*diags, domain.Diagnostic{
		Kind:   domain.DiagMergedFamily,
		Handle: handle,
		Detail: fmt.Sprintf("merged %d records into %d variants", len(members), len(product.Variants)),
	})

	return product
}

// effectiveLabel picks the size label for a record's variant: the stated
// option when present and meaningful, otherwise the size parsed from the
// title, otherwise "Default"
func effectiveLabel(rec domain.RawProductRecord, token domain.SizeToken) string {
	opt := strings.TrimSpace(rec.Option)
	if opt != "" && !placeholderOptions[strings.ToLower(opt)] {
		return opt
	}
	if token.Label != "" {
		return token.Label
	}
	return "Default"
}

// variantFromRecord builds the variant a record contributes to its family
func variantFromRecord(rec domain.RawProductRecord, label string) domain.Variant {
	return domain.Variant{
		OptionLabel:    label,
		SKU:            rec.SKU,
		Price:          rec.Price,
		CompareAtPrice: rec.CompareAtPrice,
		Cost:           rec.Cost,
		UPC:            rec.UPC,
		Weight:         rec.Weight,
		InventoryQty:   rec.InventoryQty,
	}
}

// completenessScore counts the populated high-value fields of a variant:
// non-empty SKU, price above zero, inventory above zero, non-empty UPC.
// Used to pick a winner among duplicate-size candidates; all four attributes
// weigh equally.
func completenessScore(v domain.Variant) int {
	score := 0
	if v.SKU != "" {
		score++
	}
	if v.Price > 0 {
		score++
	}
	if v.InventoryQty > 0 {
		score++
	}
	if v.UPC != "" {
		score++
	}
	return score
}
