package domain

// Source identifies which catalog export a record came from
type Source string

const (
	// SourceStorefront is the live storefront export (authoritative for handles and SKUs)
	SourceStorefront Source = "storefront"

	// SourceLegacy is the legacy commerce-platform export
	SourceLegacy Source = "legacy"

	// SourceInventory is the vendor inventory feed
	SourceInventory Source = "inventory"
)

// RawProductRecord is one normalized row from one source export.
// Created once during normalization and immutable thereafter; downstream
// stages must tolerate any field being empty.
type RawProductRecord struct {
	Source          Source   `json:"source"`
	Handle          string   `json:"handle"`
	Title           string   `json:"title"`
	Option          string   `json:"option,omitempty"` // stated variant option label, e.g. "1 Gallon"
	SKU             string   `json:"sku,omitempty"`
	Price           float64  `json:"price,omitempty"`
	CompareAtPrice  float64  `json:"compareAtPrice,omitempty"`
	Cost            float64  `json:"cost,omitempty"`
	Weight          float64  `json:"weight,omitempty"`
	InventoryQty    int      `json:"inventoryQty,omitempty"`
	UPC             string   `json:"upc,omitempty"`
	Vendor          string   `json:"vendor,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	DescriptionHTML string   `json:"descriptionHtml,omitempty"`
	Images          []string `json:"images,omitempty"`
}
