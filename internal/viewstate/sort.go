package viewstate

import (
	"fmt"

	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
)

// SortOption is one entry of the product-list ordering dropdown.
type SortOption struct {
	Label    string `json:"label"`
	OrderBy  string `json:"order_by"`
	OrderDir string `json:"order_dir"`
	Active   bool   `json:"active"`
}

// DefaultSortOptions mirror the ordering dropdown the product list renders.
var DefaultSortOptions = []SortOption{
	{Label: "Newest", OrderBy: "created", OrderDir: "desc"},
	{Label: "Name (A-Z)", OrderBy: "name", OrderDir: "asc"},
	{Label: "Name (Z-A)", OrderBy: "name", OrderDir: "desc"},
	{Label: "Price (low to high)", OrderBy: "price", OrderDir: "asc"},
	{Label: "Price (high to low)", OrderBy: "price", OrderDir: "desc"},
}

// MarkActiveSortOption returns a copy of the options with exactly one
// marked active: the one matching both query params, or the first option
// when the params are absent or match nothing.
func MarkActiveSortOption(options []SortOption, orderBy, orderDir string) ([]SortOption, error) {
	if len(options) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one sort option is required")
	}

	marked := make([]SortOption, len(options))
	copy(marked, options)

	active := 0
	if orderBy != "" || orderDir != "" {
		for i, option := range marked {
			if option.OrderBy == orderBy && option.OrderDir == orderDir {
				active = i
				break
			}
		}
	}
	for i := range marked {
		marked[i].Active = i == active
	}
	return marked, nil
}

// ActiveSortLabel is a convenience wrapper used by templates that only need
// the dropdown button text.
func ActiveSortLabel(options []SortOption, orderBy, orderDir string) (string, error) {
	marked, err := MarkActiveSortOption(options, orderBy, orderDir)
	if err != nil {
		return "", err
	}
	for _, option := range marked {
		if option.Active {
			return option.Label, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("no active option among %d", len(marked)))
}
