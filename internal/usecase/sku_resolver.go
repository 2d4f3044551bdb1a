package usecase

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/greenthumb/backend/internal/domain"
)

// stockStatusWords are inventory-state strings that legacy exports sometimes
// leave in the SKU column
var stockStatusWords = map[string]bool{
	"instock":      true,
	"outofstock":   true,
	"onbackorder":  true,
	"in stock":     true,
	"out of stock": true,
	"discontinued": true,
}

// booleanWords guard against flag columns shifted into the SKU column
var booleanWords = map[string]bool{
	"true":  true,
	"false": true,
	"yes":   true,
	"no":    true,
	"1":     true,
	"0":     true,
}

// SKUResolver picks a final stable identifier per canonical product from a
// priority-ordered set of candidate sources, deriving a deterministic
// fallback when none exists.
type SKUResolver struct {
	prefix string
}

// NewSKUResolver creates a resolver that derives fallback identifiers with
// the given prefix
func NewSKUResolver(prefix string) *SKUResolver {
	if prefix == "" {
		prefix = "GTH"
	}
	return &SKUResolver{prefix: prefix}
}

// Resolve picks the product's SKU. Priority: the storefront's own assignment
// keyed by handle, the vendor inventory item number keyed by normalized
// title, the legacy platform SKU keyed by normalized title (rejecting bare
// integers and invalid shapes), then a derived identifier. A product with no
// handle cannot be resolved.
func (r *SKUResolver) Resolve(
	p *domain.CanonicalProduct,
	byHandleStorefront map[string]string,
	byTitleInventory map[string]string,
	byTitleLegacy map[string]string,
) domain.ResolvedSKU {
	if sku := strings.TrimSpace(byHandleStorefront[p.Handle]); sku != "" {
		return domain.ResolvedSKU{SKU: sku, Source: domain.SKUSourceStorefront}
	}

	titleKey := normalizeTitleKey(p.Title)
	if sku := strings.TrimSpace(byTitleInventory[titleKey]); sku != "" {
		return domain.ResolvedSKU{SKU: sku, Source: domain.SKUSourceInventory}
	}

	if sku := strings.TrimSpace(byTitleLegacy[titleKey]); sku != "" {
		// Bare integers are spreadsheet row numbers masquerading as SKUs
		if !isNumeric(sku) && IsValidSKUShape(sku) {
			return domain.ResolvedSKU{SKU: sku, Source: domain.SKUSourceLegacy}
		}
	}

	if p.Handle == "" {
		return domain.ResolvedSKU{Source: domain.SKUSourceNone}
	}
	return domain.ResolvedSKU{
		SKU:    r.Derive(p.Handle, p.Category),
		Source: domain.SKUSourceDerived,
	}
}

// IsValidSKUShape rejects strings that cannot be SKUs: boolean-like values,
// stock-status words, bare prices, and single lowercase dictionary words
func IsValidSKUShape(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	lower := strings.ToLower(s)
	if booleanWords[lower] || stockStatusWords[lower] {
		return false
	}

	// Bare price: "$19" or "19.99"
	trimmed := strings.TrimPrefix(lower, "$")
	hadDollar := trimmed != lower
	if trimmed != "" && isDecimalNumber(trimmed) && (hadDollar || strings.Contains(trimmed, ".")) {
		return false
	}

	// A single all-lowercase alphabetic word is prose, not an identifier
	if !strings.ContainsAny(s, " -_/") && isAllLowerAlpha(s) {
		return false
	}

	return true
}

// isDecimalNumber checks for digits with at most one decimal point
func isDecimalNumber(s string) bool {
	if strings.Count(s, ".") > 1 {
		return false
	}
	return isNumeric(strings.ReplaceAll(s, ".", ""))
}

// isAllLowerAlpha checks if the string is entirely lowercase letters
func isAllLowerAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return len(s) > 0
}

// Derive computes the deterministic fallback identifier
// "{prefix}-{categoryCode}-{6 hex chars}". The hex portion is the leading
// SHA-1 of the handle, so re-deriving for the same handle always yields the
// same identifier.
func (r *SKUResolver) Derive(handle, category string) string {
	sum := sha1.Sum([]byte(handle))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))[:6]
	return fmt.Sprintf("%s-%s-%s", r.prefix, categoryCode(category), digest)
}

// categoryCode compresses a category name into a three-letter uppercase code
func categoryCode(category string) string {
	var letters []rune
	for _, r := range category {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return "GEN"
	}
	return string(letters)
}
