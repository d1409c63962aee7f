package viewstate

import (
	"fmt"

	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
)

// Pagination is the windowed strip of page links around the current page.
type Pagination struct {
	Current int   `json:"current"`
	Total   int   `json:"total"`
	Pages   []int `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
}

// pageLinksFor picks how many numbered links fit the viewport: phones get
// 3, tablets 5, anything from the large breakpoint up gets 7.
func pageLinksFor(width int) int {
	switch {
	case width < breakpointSM:
		return 3
	case width < breakpointLG:
		return 5
	default:
		return 7
	}
}

// PageWindow computes the pagination strip for a viewport width: a window
// of page numbers centered on the current page and clamped to [1, total].
func PageWindow(current, total, width int) (*Pagination, error) {
	if total < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total pages must be at least 1")
	}
	if current < 1 || current > total {
		return nil, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("page %d is outside [1, %d]", current, total),
		)
	}

	size := pageLinksFor(width)
	if size > total {
		size = total
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > total {
		start = total - size + 1
	}

	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return &Pagination{
		Current: current,
		Total:   total,
		Pages:   pages,
		HasPrev: current > 1,
		HasNext: current < total,
	}, nil
}
