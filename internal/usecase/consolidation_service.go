package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/greenthumb/backend/internal/domain"
)

// Quality score boosts applied on top of the base confidence
const (
	imageBoost    = 10
	categoryBoost = 10
	weightBoost   = 5
	maxQuality    = 100
)

// ConsolidationConfig holds the engine tuning knobs
type ConsolidationConfig struct {
	SKUPrefix           string
	FuzzyOverlapRatio   float64
	ImageScoreThreshold float64
	ImageMatchCap       int
	EnableDebugLogging  bool
}

// ConsolidationInput is one batch of already-normalized records plus the
// pool of candidate image paths available for matching
type ConsolidationInput struct {
	Records         []domain.RawProductRecord `json:"records"`
	CandidateImages []string                  `json:"candidateImages,omitempty"`
}

// ConsolidationService runs the full consolidation pipeline: corruption
// filtering, brand resolution, multi-variant passthrough, family grouping,
// classification, image matching, identifier resolution, and the publish
// gate. Batch, synchronous, and deterministic: identical input order always
// produces identical output.
type ConsolidationService struct {
	normalizer *RecordNormalizer
	brands     *BrandResolver
	sizes      *SizeTokenizer
	grouper    *FamilyGrouper
	classifier *Classifier
	images     *ImageMatcher
	skus       *SKUResolver
	debug      bool
}

// NewConsolidationService wires the engine components over the curated
// category index and the learned handle->category map
func NewConsolidationService(index *CategoryIndex, learned map[string]string, cfg ConsolidationConfig) *ConsolidationService {
	sizes := NewSizeTokenizer()
	return &ConsolidationService{
		normalizer: NewRecordNormalizer(),
		brands:     NewBrandResolver(),
		sizes:      sizes,
		grouper:    NewFamilyGrouper(sizes),
		classifier: NewClassifier(index, learned, cfg.FuzzyOverlapRatio),
		images:     NewImageMatcher(cfg.ImageScoreThreshold, cfg.ImageMatchCap),
		skus:       NewSKUResolver(cfg.SKUPrefix),
		debug:      cfg.EnableDebugLogging,
	}
}

// Normalizer exposes the record normalizer for callers that ingest raw
// header-keyed rows (the feed endpoints)
func (s *ConsolidationService) Normalizer() *RecordNormalizer {
	return s.normalizer
}

// Consolidate runs one batch through the engine and returns the completed
// run. Errors are returned only for unusable input; per-record problems
// degrade to diagnostics, never aborts.
func (s *ConsolidationService) Consolidate(ctx context.Context, input ConsolidationInput) (*domain.ConsolidationRun, error) {
	if len(input.Records) == 0 {
		return nil, domain.ErrNoRecords
	}

	started := time.Now()
	var diags []domain.Diagnostic

	// Corruption heuristics: the single place data is discarded
	kept := make([]domain.RawProductRecord, 0, len(input.Records))
	dropped := 0
	for _, rec := range input.Records {
		if reason, corrupt := CheckCorrupted(rec); corrupt {
			dropped++
			diags = append(diags, domain.Diagnostic{
				Kind:   domain.DiagDroppedCorrupt,
				Handle: rec.Handle,
				Detail: reason,
			})
			continue
		}
		kept = append(kept, rec)
	}

	// Brand resolution tags every surviving record
	for i := range kept {
		kept[i].Brand = s.brands.Resolve(kept[i].Title, kept[i].Vendor, kept[i].Brand, "")
	}

	arena := NewHandleArena()

	// Storefront handles spanning several rows are already consolidated
	// products; they bypass grouping untouched
	passthrough, candidates, passDiags := s.splitConsolidated(kept, arena)
	diags = append(diags, passDiags...)

	grouped, groupDiags := s.grouper.Group(candidates, arena)
	diags = append(diags, groupDiags...)

	products := append(passthrough, grouped...)

	byHandle, byTitleInventory, byTitleLegacy := s.buildSKULookups(kept)

	report := domain.RunReport{
		RecordsIn:   len(input.Records),
		ProductsOut: len(products),
		Dropped:     dropped,
	}
	for _, d := range diags {
		if d.Kind == domain.DiagMergedFamily {
			report.FamiliesBuilt++
		}
	}

	for i := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p := &products[i]

		if entry := s.classifier.Classify(p); entry != nil {
			p.Category = entry.PrimaryCategory
			report.Categorized++
		} else {
			diags = append(diags, domain.Diagnostic{
				Kind:   domain.DiagUncategorized,
				Handle: p.Handle,
				Detail: "no classification tier matched",
			})
		}

		p.MatchedImages = s.images.MatchImages(p, input.CandidateImages)

		resolved := s.skus.Resolve(p, byHandle, byTitleInventory, byTitleLegacy)
		p.SKU = resolved.SKU
		p.SKUSource = resolved.Source

		p.Publish = EvaluatePublish(p, resolved)
		if p.Publish.Ready {
			report.Ready++
		}

		p.QualityScore = qualityScore(p)

		if s.debug {
			log.Printf("[CONSOLIDATE] %s: category=%q sku=%s(%s) quality=%d ready=%v",
				p.Handle, p.Category, p.SKU, p.SKUSource, p.QualityScore, p.Publish.Ready)
		}
	}

	return &domain.ConsolidationRun{
		ID:          uuid.New().String(),
		StartedAt:   started,
		FinishedAt:  time.Now(),
		Products:    products,
		Diagnostics: diags,
		Report:      report,
	}, nil
}

// splitConsolidated pulls out storefront products whose handle spans two or
// more rows — those are already multi-variant and are assembled directly —
// and returns the remaining single-variant candidates for grouping
func (s *ConsolidationService) splitConsolidated(records []domain.RawProductRecord, arena *HandleArena) ([]domain.CanonicalProduct, []domain.RawProductRecord, []domain.Diagnostic) {
	rowsPerHandle := make(map[string]int)
	for _, rec := range records {
		if rec.Source == domain.SourceStorefront && rec.Handle != "" {
			rowsPerHandle[rec.Handle]++
		}
	}

	var products []domain.CanonicalProduct
	var candidates []domain.RawProductRecord
	var diags []domain.Diagnostic
	assembled := make(map[string]int) // handle -> index into products

	for _, rec := range records {
		if rec.Source != domain.SourceStorefront || rec.Handle == "" || rowsPerHandle[rec.Handle] < 2 {
			candidates = append(candidates, rec)
			continue
		}

		if idx, exists := assembled[rec.Handle]; exists {
			appendVariantRow(&products[idx], rec, s.sizes)
			continue
		}

		handle, _ := arena.Claim(rec.Handle)
		p := domain.CanonicalProduct{
			Handle:          handle,
			Title:           rec.Title,
			BaseTitle:       s.sizes.ExtractBaseTitle(rec.Title),
			DescriptionHTML: rec.DescriptionHTML,
			Brand:           rec.Brand,
			Vendor:          rec.Vendor,
			Tags:            append([]string(nil), rec.Tags...),
			Images:          append([]string(nil), rec.Images...),
			SourcesPresent:  []domain.Source{rec.Source},
			Confidence:      mergedConfidence,
		}
		appendVariantRow(&p, rec, s.sizes)
		assembled[rec.Handle] = len(products)
		products = append(products, p)

		diags = append(diags, domain.Diagnostic{
			Kind:   domain.DiagAlreadyConsolidated,
			Handle: handle,
			Detail: fmt.Sprintf("storefront product already consolidated (%d variant rows), passed through", rowsPerHandle[rec.Handle]),
		})
	}

	return products, candidates, diags
}

// appendVariantRow adds one storefront row's variant to an assembled
// product, applying the same duplicate-label completeness rule as grouping
func appendVariantRow(p *domain.CanonicalProduct, rec domain.RawProductRecord, sizes *SizeTokenizer) {
	token, _ := sizes.ParseSize(rec.Title)
	label := effectiveLabel(rec, token)
	incoming := variantFromRecord(rec, label)

	duplicate := false
	for i, existing := range p.Variants {
		if existing.OptionLabel == label {
			if completenessScore(incoming) > completenessScore(existing) {
				p.Variants[i] = incoming
			}
			duplicate = true
			break
		}
	}
	if !duplicate {
		p.Variants = append(p.Variants, incoming)
	}

	// Every row can carry additional images and the richer description,
	// duplicate-label rows included
	for _, img := range rec.Images {
		seen := false
		for _, have := range p.Images {
			if have == img {
				seen = true
				break
			}
		}
		if !seen {
			p.Images = append(p.Images, img)
		}
	}
	if len(rec.DescriptionHTML) > len(p.DescriptionHTML) {
		p.DescriptionHTML = rec.DescriptionHTML
	}
}

// buildSKULookups builds the priority lookup maps for identifier resolution.
// Inventory and legacy titles are also keyed by their stripped base titles
// so merged families (whose canonical title is the base title) still hit.
func (s *ConsolidationService) buildSKULookups(records []domain.RawProductRecord) (map[string]string, map[string]string, map[string]string) {
	byHandle := make(map[string]string)
	byTitleInventory := make(map[string]string)
	byTitleLegacy := make(map[string]string)

	addTitleKeys := func(m map[string]string, rec domain.RawProductRecord) {
		if rec.SKU == "" {
			return
		}
		full := normalizeTitleKey(rec.Title)
		if full != "" {
			if _, taken := m[full]; !taken {
				m[full] = rec.SKU
			}
		}
		base := normalizeTitleKey(s.sizes.ExtractBaseTitle(rec.Title))
		if base != "" && base != full {
			if _, taken := m[base]; !taken {
				m[base] = rec.SKU
			}
		}
	}

	for _, rec := range records {
		switch rec.Source {
		case domain.SourceStorefront:
			if rec.Handle != "" && rec.SKU != "" {
				if _, taken := byHandle[rec.Handle]; !taken {
					byHandle[rec.Handle] = rec.SKU
				}
			}
		case domain.SourceInventory:
			addTitleKeys(byTitleInventory, rec)
		case domain.SourceLegacy:
			addTitleKeys(byTitleLegacy, rec)
		}
	}

	return byHandle, byTitleInventory, byTitleLegacy
}

// qualityScore boosts the base confidence for data completeness and caps the
// result at 100
func qualityScore(p *domain.CanonicalProduct) int {
	score := p.Confidence
	if len(p.Images) > 0 || len(p.MatchedImages) > 0 {
		score += imageBoost
	}
	if p.Category != "" {
		score += categoryBoost
	}
	for _, v := range p.Variants {
		if v.Weight > 0 {
			score += weightBoost
			break
		}
	}
	if score > maxQuality {
		score = maxQuality
	}
	return score
}
