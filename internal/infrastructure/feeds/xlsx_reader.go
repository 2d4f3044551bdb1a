package feeds

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/greenthumb/backend/internal/domain"
)

// XLSXReader reads the vendor inventory workbook. The vendor distributes a
// single-sheet XLSX with one header row; only the first sheet is read.
type XLSXReader struct{}

// NewInventoryReader reads the vendor inventory feed
func NewInventoryReader() *XLSXReader {
	return &XLSXReader{}
}

// Source returns which catalog this reader ingests
func (r *XLSXReader) Source() domain.Source {
	return domain.SourceInventory
}

// ReadRows parses the first sheet into one map per data row, keyed by the
// raw header names
func (r *XLSXReader) ReadRows(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrFeedUnreadable)
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
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
