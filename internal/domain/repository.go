package domain

import "context"

// RunStore defines the interface for consolidation run persistence
type RunStore interface {
	SaveRun(ctx context.Context, run *ConsolidationRun) error
	GetRun(ctx context.Context, id string) (*ConsolidationRun, error)
	ListRuns(ctx context.Context) ([]RunSummary, error)
}

// FeedReader reads one source export from disk into header-keyed rows.
// Each row maps raw column name to cell value; the record normalizer owns
// the header-alias lookup, so readers stay format-only.
type FeedReader interface {
	Source() Source
	ReadRows(path string) ([]map[string]string, error)
}
