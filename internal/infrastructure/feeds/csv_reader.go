package feeds

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/greenthumb/backend/internal/domain"
)

// CSVReader reads one CSV export into header-keyed rows. It stays
// format-only: header aliasing and field semantics belong to the record
// normalizer, so the same reader serves both CSV sources.
type CSVReader struct {
	source domain.Source
}

// NewStorefrontReader reads the storefront platform's product export
func NewStorefrontReader() *CSVReader {
	return &CSVReader{source: domain.SourceStorefront}
}

// NewLegacyReader reads the legacy platform's product export
func NewLegacyReader() *CSVReader {
	return &CSVReader{source: domain.SourceLegacy}
}

// Source returns which catalog this reader ingests
func (r *CSVReader) Source() domain.Source {
	return r.source
}

// ReadRows parses the file into one map per data row, keyed by the raw
// header names. Short rows are padded with empty cells rather than dropped;
// deciding what is usable is the engine's job.
func (r *CSVReader) ReadRows(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Storefront exports sometimes carry malformed quoting
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	// Excel-produced files prefix the first header cell with a BOM
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
