package domain

import "time"

// DiagnosticKind classifies a diagnostic note emitted during consolidation
type DiagnosticKind string

const (
	// DiagAlreadyConsolidated marks a multi-variant record that bypassed grouping
	DiagAlreadyConsolidated DiagnosticKind = "already_consolidated"

	// DiagMergedFamily marks records merged into one canonical product
	DiagMergedFamily DiagnosticKind = "merged_family"

	// DiagVariantConflict marks a duplicate-size collision resolved by scoring
	DiagVariantConflict DiagnosticKind = "variant_conflict"

	// DiagHandleCollision marks a handle disambiguated by numeric suffix
	DiagHandleCollision DiagnosticKind = "handle_collision"

	// DiagDroppedCorrupt marks a record discarded by the corruption heuristics
	DiagDroppedCorrupt DiagnosticKind = "dropped_corrupt"

	// DiagUncategorized marks a product that no classification tier matched
	DiagUncategorized DiagnosticKind = "uncategorized"
)

// Diagnostic is one structured note about a consolidation decision.
// Diagnostics replace console logging so callers and tests can assert on
// outcomes directly.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Handle string         `json:"handle,omitempty"`
	Detail string         `json:"detail"`
}

// RunReport summarizes one consolidation run
type RunReport struct {
	RecordsIn     int `json:"recordsIn"`
	ProductsOut   int `json:"productsOut"`
	FamiliesBuilt int `json:"familiesBuilt"`
	Dropped       int `json:"dropped"`
	Categorized   int `json:"categorized"`
	Ready         int `json:"ready"`
}

// ConsolidationRun is one complete engine run with its output and diagnostics
type ConsolidationRun struct {
	ID          string             `json:"id"`
	StartedAt   time.Time          `json:"startedAt"`
	FinishedAt  time.Time          `json:"finishedAt"`
	Products    []CanonicalProduct `json:"products"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
	Report      RunReport          `json:"report"`
}

// RunSummary is the listing view of a run
type RunSummary struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	ProductsOut int       `json:"productsOut"`
	Ready       int       `json:"ready"`
}

// Summary derives the listing view from a full run
func (r *ConsolidationRun) Summary() RunSummary {
	return RunSummary{
		ID:          r.ID,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		ProductsOut: r.Report.ProductsOut,
		Ready:       r.Report.Ready,
	}
}
