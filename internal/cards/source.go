package cards

import (
	"context"
	"errors"
	"fmt"
)

// Source says where the dataset lives. URL is tried first; Path is the
// fallback and the only source when URL is empty.
type Source struct {
	URL  string
	Path string
}

func (s Source) Load(ctx context.Context) (Dataset, error) {
	var errs []error
	if s.URL != "" {
		ds, err := FetchDataset(ctx, s.URL)
		if err == nil {
			return ds, nil
		}
		errs = append(errs, err)
	}
	if s.Path != "" {
		ds, err := LoadDataset(s.Path)
		if err == nil {
			return ds, nil
		}
		errs = append(errs, fmt.Errorf("loading %s: %w", s.Path, err))
	}
	if len(errs) == 0 {
		return Dataset{}, errors.New("no dataset source configured")
	}
	return Dataset{}, errors.Join(errs...)
}
