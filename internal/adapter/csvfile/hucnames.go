package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadHUCNames reads the optional HUC8 -> region name reference CSV
// (columns "huc8" and "name", any order). The mapping only labels watershed
// summaries; it never feeds numeric computation.
func LoadHUCNames(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open huc names: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read huc names header: %w", err)
	}
	idx, err := headerIndex(header, []string{"huc8", "name"}, "huc8", "name")
	if err != nil {
		return nil, fmt.Errorf("huc names %s: %w", path, err)
	}

	names := make(map[string]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read huc names row: %w", err)
		}
		huc := strings.TrimSpace(field(row, idx, "huc8"))
		if huc == "" {
			continue
		}
		names[huc] = strings.TrimSpace(field(row, idx, "name"))
	}
	return names, nil
}
