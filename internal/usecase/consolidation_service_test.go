package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/greenthumb/backend/internal/domain"
)

func newTestService() *ConsolidationService {
	index := NewCategoryIndex([]domain.CategoryEntry{
		{Key: "FloraGro", PrimaryCategory: "Nutrients & Additives"},
	})
	return NewConsolidationService(index, nil, ConsolidationConfig{
		SKUPrefix:           "GTH",
		FuzzyOverlapRatio:   0.6,
		ImageScoreThreshold: 0.4,
		ImageMatchCap:       5,
	})
}

// testBatch is a small cross-source batch exercising every pipeline stage:
// a consolidated storefront product, a mergeable legacy size family, an
// inventory record corroborating it, and one corrupted record.
func testBatch() ConsolidationInput {
	return ConsolidationInput{
		Records: []domain.RawProductRecord{
			{
				Source: domain.SourceStorefront,
				Handle: "grodan-rockwool",
				Title:  "Grodan Rockwool Cubes",
				Option: "Small",
				SKU:    "SF-1",
				Price:  10,
			},
			{
				Source: domain.SourceStorefront,
				Handle: "grodan-rockwool",
				Title:  "Grodan Rockwool Cubes",
				Option: "Large",
				SKU:    "SF-2",
				Price:  20,
			},
			{
				Source: domain.SourceLegacy,
				Handle: "floragro-1-quart",
				Title:  "FloraGro 1 Quart",
				Price:  18.50,
			},
			{
				Source: domain.SourceLegacy,
				Handle: "floragro-1-gallon",
				Title:  "FloraGro 1 Gallon",
				Price:  54.95,
			},
			{
				Source:       domain.SourceInventory,
				Title:        "FloraGro 1 Quart",
				SKU:          "GH1421",
				Price:        18.50,
				InventoryQty: 40,
			},
			{
				Source: domain.SourceLegacy,
				Handle: "broken",
				Title:  "<p>FloraGro</p>",
			},
		},
	}
}

func TestConsolidate(t *testing.T) {
	svc := newTestService()

	run, err := svc.Consolidate(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("Consolidate returned error: %v", err)
	}

	if run.ID == "" {
		t.Error("run has no ID")
	}
	if run.FinishedAt.Before(run.StartedAt) {
		t.Error("run finished before it started")
	}

	if len(run.Products) != 2 {
		t.Fatalf("got %d products, want 2: %+v", len(run.Products), run.Products)
	}
	grodan := run.Products[0]
	floragro := run.Products[1]

	t.Run("storefront product passes through untouched", func(t *testing.T) {
		if grodan.Handle != "grodan-rockwool" {
			t.Fatalf("first product handle = %q", grodan.Handle)
		}
		if len(grodan.Variants) != 2 {
			t.Fatalf("got %d variants, want 2", len(grodan.Variants))
		}
		if grodan.Variants[0].OptionLabel != "Small" || grodan.Variants[1].OptionLabel != "Large" {
			t.Errorf("variant labels = %q, %q, want stated options kept",
				grodan.Variants[0].OptionLabel, grodan.Variants[1].OptionLabel)
		}
		if grodan.Brand != "Grodan" {
			t.Errorf("brand = %q, want resolved from title", grodan.Brand)
		}
		if grodan.SKU != "SF-1" || grodan.SKUSource != domain.SKUSourceStorefront {
			t.Errorf("sku = %q (%q), want the storefront assignment", grodan.SKU, grodan.SKUSource)
		}
		if grodan.Category != "Growing Media" {
			t.Errorf("category = %q, want pattern-tier Growing Media", grodan.Category)
		}
	})

	t.Run("legacy size family merges and picks up the inventory record", func(t *testing.T) {
		if floragro.Handle != "floragro" || floragro.Title != "FloraGro" {
			t.Fatalf("merged product = %q / %q", floragro.Handle, floragro.Title)
		}
		if len(floragro.Variants) != 2 {
			t.Fatalf("got %d variants, want 2", len(floragro.Variants))
		}
		// The inventory record outscored the sparse legacy quart row
		if floragro.Variants[0].SKU != "GH1421" || floragro.Variants[0].InventoryQty != 40 {
			t.Errorf("quart variant = %+v, want the inventory record's fields", floragro.Variants[0])
		}
		if floragro.SKU != "GH1421" || floragro.SKUSource != domain.SKUSourceInventory {
			t.Errorf("sku = %q (%q), want the inventory item number", floragro.SKU, floragro.SKUSource)
		}
		if floragro.Category != "Nutrients & Additives" {
			t.Errorf("category = %q, want the curated index entry", floragro.Category)
		}
		if !floragro.HasSource(domain.SourceLegacy) || !floragro.HasSource(domain.SourceInventory) {
			t.Errorf("sources = %v, want legacy and inventory", floragro.SourcesPresent)
		}
	})

	t.Run("report tallies every stage", func(t *testing.T) {
		r := run.Report
		if r.RecordsIn != 6 {
			t.Errorf("records in = %d, want 6", r.RecordsIn)
		}
		if r.ProductsOut != 2 {
			t.Errorf("products out = %d, want 2", r.ProductsOut)
		}
		if r.Dropped != 1 {
			t.Errorf("dropped = %d, want 1", r.Dropped)
		}
		if r.FamiliesBuilt != 1 {
			t.Errorf("families = %d, want 1", r.FamiliesBuilt)
		}
		if r.Categorized != 2 {
			t.Errorf("categorized = %d, want 2", r.Categorized)
		}
		if r.Ready != 2 {
			t.Errorf("ready = %d, want 2", r.Ready)
		}
	})

	t.Run("diagnostics name every event", func(t *testing.T) {
		kinds := make(map[domain.DiagnosticKind]int)
		for _, d := range run.Diagnostics {
			kinds[d.Kind]++
		}
		if kinds[domain.DiagDroppedCorrupt] != 1 {
			t.Errorf("dropped-corrupt diags = %d, want 1", kinds[domain.DiagDroppedCorrupt])
		}
		if kinds[domain.DiagAlreadyConsolidated] != 1 {
			t.Errorf("already-consolidated diags = %d, want 1", kinds[domain.DiagAlreadyConsolidated])
		}
		if kinds[domain.DiagMergedFamily] != 1 {
			t.Errorf("merged-family diags = %d, want 1", kinds[domain.DiagMergedFamily])
		}
		if kinds[domain.DiagVariantConflict] != 1 {
			t.Errorf("variant-conflict diags = %d, want 1", kinds[domain.DiagVariantConflict])
		}
	})

	t.Run("quality scores reflect completeness", func(t *testing.T) {
		// mergedConfidence plus the category boost, no images or weights
		want := mergedConfidence + categoryBoost
		if floragro.QualityScore != want {
			t.Errorf("quality = %d, want %d", floragro.QualityScore, want)
		}
	})
}

func TestConsolidate_EmptyInput(t *testing.T) {
	svc := newTestService()

	_, err := svc.Consolidate(context.Background(), ConsolidationInput{})
	if !errors.Is(err, domain.ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
}

func TestConsolidate_ContextCancelled(t *testing.T) {
	svc := newTestService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Consolidate(ctx, testBatch())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestConsolidate_Deterministic(t *testing.T) {
	svc := newTestService()

	first, err := svc.Consolidate(context.Background(), testBatch())
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Consolidate(context.Background(), testBatch())
	if err != nil {
		t.Fatal(err)
	}

	// IDs and timestamps differ per run; everything derived from the input
	// must not
	if !reflect.DeepEqual(first.Products, second.Products) {
		t.Error("products differ between identical inputs")
	}
	if !reflect.DeepEqual(first.Diagnostics, second.Diagnostics) {
		t.Error("diagnostics differ between identical inputs")
	}
	if first.Report != second.Report {
		t.Errorf("reports differ: %+v vs %+v", first.Report, second.Report)
	}
}

func TestConsolidate_ImageMatching(t *testing.T) {
	svc := newTestService()

	input := ConsolidationInput{
		Records: []domain.RawProductRecord{
			{Source: domain.SourceLegacy, Handle: "floragro-1-quart", Title: "FloraGro 1 Quart", Price: 18.50},
		},
		CandidateImages: []string{
			"media/floragro-quart-label.jpg",
			"media/inline-fan.jpg",
		},
	}

	run, err := svc.Consolidate(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Products) != 1 {
		t.Fatalf("got %d products", len(run.Products))
	}

	matched := run.Products[0].MatchedImages
	if len(matched) != 1 || matched[0].Path != "media/floragro-quart-label.jpg" {
		t.Errorf("matched = %+v, want only the label shot", matched)
	}
}

func TestConsolidate_DuplicateStorefrontRowKeepsMedia(t *testing.T) {
	svc := newTestService()

	input := ConsolidationInput{
		Records: []domain.RawProductRecord{
			{
				Source:          domain.SourceStorefront,
				Handle:          "grodan-rockwool",
				Title:           "Grodan Rockwool Cubes",
				Option:          "Small",
				SKU:             "SF-1",
				Price:           10,
				DescriptionHTML: "<p>Cubes.</p>",
				Images:          []string{"cubes-front.jpg"},
			},
			{
				Source: domain.SourceStorefront,
				Handle: "grodan-rockwool",
				Title:  "Grodan Rockwool Cubes",
				Option: "Large",
				SKU:    "SF-2",
				Price:  20,
			},
			{
				Source:          domain.SourceStorefront,
				Handle:          "grodan-rockwool",
				Title:           "Grodan Rockwool Cubes",
				Option:          "Small",
				DescriptionHTML: "<p>Stonewool cubes for seed starting and cuttings.</p>",
				Images:          []string{"cubes-lifestyle.jpg"},
			},
		},
	}

	run, err := svc.Consolidate(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Products) != 1 {
		t.Fatalf("got %d products, want 1", len(run.Products))
	}
	p := run.Products[0]

	if len(p.Variants) != 2 {
		t.Fatalf("got %d variants, want the duplicate label collapsed", len(p.Variants))
	}
	if p.Variants[0].SKU != "SF-1" {
		t.Errorf("Small variant SKU = %q, want the better-populated first row kept", p.Variants[0].SKU)
	}

	// The losing duplicate row still contributes its media
	wantImages := []string{"cubes-front.jpg", "cubes-lifestyle.jpg"}
	if !reflect.DeepEqual(p.Images, wantImages) {
		t.Errorf("images = %v, want %v", p.Images, wantImages)
	}
	if p.DescriptionHTML != "<p>Stonewool cubes for seed starting and cuttings.</p>" {
		t.Errorf("description = %q, want the longer description kept", p.DescriptionHTML)
	}
}
