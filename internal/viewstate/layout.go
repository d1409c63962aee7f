package viewstate

// Viewport width breakpoints, matching the CSS grid the templates use.
const (
	breakpointSM = 576
	breakpointLG = 992
)

// Layout reports the responsive decisions for a viewport width.
type Layout struct {
	Width           int  `json:"width"`
	ShowFilterPanel bool `json:"show_filter_panel"`
}

// LayoutFor computes the layout for a viewport width. The filter panel is
// expanded on large screens and collapsed behind a toggle below 992px.
func LayoutFor(width int) Layout {
	return Layout{
		Width:           width,
		ShowFilterPanel: width >= breakpointLG,
	}
}
