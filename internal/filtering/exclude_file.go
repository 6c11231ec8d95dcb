package filtering

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Excluded is the content of the exclude file: opportunities the user
// dismissed and does not want to see again.
type Excluded struct {
	Items []*ExcludedOpportunity `json:"items"`
}

type ExcludedOpportunity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	ExcludedAt  time.Time `json:"excluded_at"`
}

// ReadExcluded loads the exclude file. A missing or empty file is an empty list.
func ReadExcluded(fs afero.Fs, path string) (*Excluded, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Excluded{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return &Excluded{}, nil
	}

	var excluded Excluded
	if err := json.Unmarshal(data, &excluded); err != nil {
		return nil, fmt.Errorf("decode exclude file %q: %w", path, err)
	}
	return &excluded, nil
}

// ToExcluded converts the remaining opportunities into exclude entries.
func (o *Opportunities) ToExcluded(now time.Time) *Excluded {
	excluded := &Excluded{}
	for _, item := range o.Items {
		entry := &ExcludedOpportunity{
			ID:         item.Opportunity.ID,
			Title:      item.Opportunity.Title,
			ExcludedAt: now.UTC(),
		}
		if item.Company != nil {
			entry.CompanyName = item.Company.Name
		}
		excluded.Items = append(excluded.Items, entry)
	}
	return excluded
}

func (e *Excluded) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Append adds the entries that are not listed yet.
func (e *Excluded) Append(other *Excluded) {
	seen := make(map[string]bool, len(e.Items))
	for _, item := range e.Items {
		seen[item.ID] = true
	}
	for _, item := range other.Items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		e.Items = append(e.Items, item)
	}
}

// WriteFile replaces the exclude file with the current list.
func (e *Excluded) WriteFile(fs afero.Fs, path string) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create exclude file directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, append(data, '\n'), 0o644)
}
