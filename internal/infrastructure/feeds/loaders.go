package feeds

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/greenthumb/backend/internal/domain"
)

// imageExtensions are the file types the image matcher considers
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// LoadCategoryIndex reads the curated title->category CSV. Two columns,
// title then category, with an optional header row. Rows missing either
// value are skipped.
func LoadCategoryIndex(path string) ([]domain.CategoryEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}

	var entries []domain.CategoryEntry
	for i, record := range records {
		if len(record) < 2 {
			continue
		}
		key := strings.TrimSpace(strings.TrimPrefix(record[0], "\ufeff"))
		category := strings.TrimSpace(record[1])
		if key == "" || category == "" {
			continue
		}
		// Tolerate a header row in the curated file
		if i == 0 && strings.EqualFold(key, "title") && strings.EqualFold(category, "category") {
			continue
		}
		entries = append(entries, domain.CategoryEntry{Key: key, PrimaryCategory: category})
	}
	return entries, nil
}

// LoadLearnedMap reads the handle->category JSON produced by the upstream
// clustering pass. A missing file is not an error; the classifier simply
// runs without its learned tier.
func LoadLearnedMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}

	learned := make(map[string]string)
	if err := json.Unmarshal(data, &learned); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}
	return learned, nil
}

// ListCandidateImages walks the image directory and returns every image
// file path relative to the directory, sorted for stable matching order
func ListCandidateImages(dir string) ([]string, error) {
	var images []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(path))] {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			images = append(images, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnreadable, err)
	}
	sort.Strings(images)
	return images, nil
}
