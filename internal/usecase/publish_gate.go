package usecase

import "github.com/greenthumb/backend/internal/domain"

// Publish gate reason strings. Blocking reasons prevent ready=true;
// observations are recorded for reporting only.
const (
	ReasonMissingTitle  = "missing title"
	ReasonMissingHandle = "missing handle"
	ReasonMissingSKU    = "missing sku"
	ReasonMissingPrice  = "no variant with price above zero"

	ObservationUnknownBrand       = "unknown brand"
	ObservationMissingCategory    = "missing category"
	ObservationMissingImages      = "missing images"
	ObservationMissingDescription = "missing description"
)

// EvaluatePublish computes the publish-readiness verdict for a product given
// its resolved SKU. Pure: inputs are never mutated. Filling in a missing
// field can only move a product toward ready, never away from it.
func EvaluatePublish(p *domain.CanonicalProduct, resolved domain.ResolvedSKU) domain.PublishVerdict {
	var blocking []string

	if p.Title == "" {
		blocking = append(blocking, ReasonMissingTitle)
	}
	if p.Handle == "" {
		blocking = append(blocking, ReasonMissingHandle)
	}
	if resolved.SKU == "" {
		blocking = append(blocking, ReasonMissingSKU)
	}
	if !anyVariantPriced(p.Variants) {
		blocking = append(blocking, ReasonMissingPrice)
	}

	var observations []string
	if p.Brand == "" {
		observations = append(observations, ObservationUnknownBrand)
	}
	if p.Category == "" {
		observations = append(observations, ObservationMissingCategory)
	}
	if len(p.Images) == 0 && len(p.MatchedImages) == 0 {
		observations = append(observations, ObservationMissingImages)
	}
	if HTMLToText(p.DescriptionHTML) == "" {
		observations = append(observations, ObservationMissingDescription)
	}

	return domain.PublishVerdict{
		Ready:           len(blocking) == 0,
		BlockingReasons: blocking,
		Observations:    observations,
	}
}

// anyVariantPriced reports whether at least one variant has a price above zero
func anyVariantPriced(variants []domain.Variant) bool {
	for _, v := range variants {
		if v.Price > 0 {
			return true
		}
	}
	return false
}
