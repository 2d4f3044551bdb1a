package usecase

import (
	"strconv"
	"strings"

	"github.com/greenthumb/backend/internal/domain"
)

// fieldAliases is the ordered list of acceptable header spellings for one
// logical field. The first present, non-empty column wins.
type fieldAliases []string

// sourceColumns maps each logical field to its header aliases for one source
type sourceColumns struct {
	handle   fieldAliases
	title    fieldAliases
	option   fieldAliases
	sku      fieldAliases
	price    fieldAliases
	compare  fieldAliases
	cost     fieldAliases
	weight   fieldAliases
	qty      fieldAliases
	upc      fieldAliases
	vendor   fieldAliases
	brand    fieldAliases
	category fieldAliases
	tags     fieldAliases
	desc     fieldAliases
	images   fieldAliases
}

var columnsBySource = map[domain.Source]sourceColumns{
	domain.SourceStorefront: {
		handle:   fieldAliases{"Handle"},
		title:    fieldAliases{"Title"},
		option:   fieldAliases{"Option1 Value"},
		sku:      fieldAliases{"Variant SKU"},
		price:    fieldAliases{"Variant Price"},
		compare:  fieldAliases{"Variant Compare At Price"},
		cost:     fieldAliases{"Cost per item"},
		weight:   fieldAliases{"Variant Grams"},
		qty:      fieldAliases{"Variant Inventory Qty"},
		upc:      fieldAliases{"Variant Barcode"},
		vendor:   fieldAliases{"Vendor"},
		category: fieldAliases{"Type", "Product Category"},
		tags:     fieldAliases{"Tags"},
		desc:     fieldAliases{"Body (HTML)", "Body HTML"},
		images:   fieldAliases{"Image Src"},
	},
	domain.SourceLegacy: {
		handle:   fieldAliases{"Slug", "post_name"},
		title:    fieldAliases{"Name", "post_title", "Title"},
		sku:      fieldAliases{"SKU", "sku"},
		price:    fieldAliases{"Regular price", "regular_price", "Price"},
		compare:  fieldAliases{"Sale price", "sale_price"},
		weight:   fieldAliases{"Weight", "weight"},
		qty:      fieldAliases{"Stock", "stock", "stock_quantity"},
		brand:    fieldAliases{"Brands", "Brand", "tax:product_brand"},
		category: fieldAliases{"Categories", "tax:product_cat"},
		tags:     fieldAliases{"Tags", "tax:product_tag"},
		desc:     fieldAliases{"Description", "post_content"},
		images:   fieldAliases{"Images"},
	},
	domain.SourceInventory: {
		sku:    fieldAliases{"Item Number", "Item #"},
		title:  fieldAliases{"Item Name"},
		price:  fieldAliases{"Regular Price"},
		cost:   fieldAliases{"Average Unit Cost"},
		weight: fieldAliases{"Weight"},
		upc:    fieldAliases{"UPC"},
		vendor: fieldAliases{"Vendor Name"},
		brand:  fieldAliases{"Manufacturer"},
		desc:   fieldAliases{"Item Description"},
	},
}

// RecordNormalizer maps raw header-keyed rows from any source into the
// common RawProductRecord shape. Pure: no validation beyond column presence,
// missing columns become empty fields that downstream stages tolerate.
type RecordNormalizer struct{}

// NewRecordNormalizer creates a record normalizer
func NewRecordNormalizer() *RecordNormalizer {
	return &RecordNormalizer{}
}

// Normalize produces a RawProductRecord from one raw row of the given source
func (n *RecordNormalizer) Normalize(src domain.Source, row map[string]string) domain.RawProductRecord {
	cols, ok := columnsBySource[src]
	if !ok {
		return domain.RawProductRecord{Source: src}
	}

	rec := domain.RawProductRecord{
		Source:          src,
		Handle:          pick(row, cols.handle),
		Title:           pick(row, cols.title),
		Option:          pick(row, cols.option),
		SKU:             pick(row, cols.sku),
		Price:           pickFloat(row, cols.price),
		CompareAtPrice:  pickFloat(row, cols.compare),
		Cost:            pickFloat(row, cols.cost),
		Weight:          pickFloat(row, cols.weight),
		InventoryQty:    pickInt(row, cols.qty),
		UPC:             pick(row, cols.upc),
		Vendor:          pick(row, cols.vendor),
		Brand:           pick(row, cols.brand),
		Category:        pick(row, cols.category),
		Tags:            splitList(pick(row, cols.tags)),
		DescriptionHTML: pick(row, cols.desc),
		Images:          splitList(pick(row, cols.images)),
	}

	return rec
}

// pick returns the first non-empty value among the aliased columns.
// Header comparison is case-insensitive and ignores surrounding whitespace,
// matching how the exports actually vary.
func pick(row map[string]string, aliases fieldAliases) string {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	// Exact match failed; fall back to a case-insensitive scan
	for _, alias := range aliases {
		for header, v := range row {
			if strings.EqualFold(strings.TrimSpace(header), alias) && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// pickFloat parses a numeric column, tolerating currency symbols and
// thousands separators; unparseable values degrade to zero
func pickFloat(row map[string]string, aliases fieldAliases) float64 {
	raw := pick(row, aliases)
	if raw == "" {
		return 0
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// pickInt parses an integer column, truncating decimal exports like "3.0"
func pickInt(row map[string]string, aliases fieldAliases) int {
	return int(pickFloat(row, aliases))
}

// splitList splits a comma- or pipe-delimited cell into trimmed values
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
