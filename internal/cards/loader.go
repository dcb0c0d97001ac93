package cards

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/youruser/spellhub/internal/util"
)

func parseListCell(s string) []string {
	parts := strings.Split(s, "/")
	out := []string{}
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadDataset reads a dataset from disk. JSON files hold the full document,
// CSV files hold entity rows only.
func LoadDataset(path string) (Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return Dataset{}, err
		}
		return ParseDataset(b)
	case ".csv":
		es, err := loadEntitiesCSV(path)
		if err != nil {
			return Dataset{}, fmt.Errorf("loading %s: %w", path, err)
		}
		return Dataset{Entities: es}, nil
	default:
		return Dataset{}, fmt.Errorf("unsupported dataset file %s", path)
	}
}

// FetchDataset downloads the JSON dataset from url.
func FetchDataset(ctx context.Context, url string) (Dataset, error) {
	b, err := util.GetBytes(ctx, url)
	if err != nil {
		return Dataset{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	return ParseDataset(b)
}

func ParseDataset(b []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decoding dataset: %w", err)
	}
	for i := range ds.Entities {
		ds.Entities[i].Category = strings.ToLower(strings.TrimSpace(ds.Entities[i].Category))
	}
	return ds, nil
}

func loadEntitiesCSV(path string) ([]Entity, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Entity{}
	for _, row := range rows[1:] {
		e := Entity{
			EntityID:    get(row, "entity_id"),
			Name:        get(row, "name"),
			Category:    strings.ToLower(get(row, "category")),
			School:      get(row, "school"),
			Rank:        get(row, "rank"),
			Description: get(row, "description"),
			ImageURL:    get(row, "image_url"),
		}
		if e.EntityID == "" {
			continue
		}
		e.Tags = parseListCell(get(row, "tags"))
		out = append(out, e)
	}
	return out, nil
}
