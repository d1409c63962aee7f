package viewstate

import (
	"reflect"
	"testing"
)

func TestCheckFormReadiness(t *testing.T) {
	t.Parallel()

	fields := []FormField{
		{Name: "name", Required: true, Value: "John"},
		{Name: "email", Required: true, Value: "john@example.com"},
		{Name: "comment", Required: false, Value: ""},
	}
	res := CheckFormReadiness(fields)
	if !res.Ready || len(res.Missing) != 0 {
		t.Fatalf("expected ready form, got %+v", res)
	}

	fields[1].Value = "   "
	res = CheckFormReadiness(fields)
	if res.Ready {
		t.Fatal("expected blank required field to block readiness")
	}
	if !reflect.DeepEqual(res.Missing, []string{"email"}) {
		t.Fatalf("unexpected missing fields: %v", res.Missing)
	}

	if res := CheckFormReadiness(nil); !res.Ready {
		t.Fatal("expected empty form to be ready")
	}
}

func TestMarkActiveSortOption(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		orderBy  string
		orderDir string
		want     string
	}{
		{"absent params pick first", "", "", "Newest"},
		{"exact match", "price", "asc", "Price (low to high)"},
		{"direction matters", "price", "desc", "Price (high to low)"},
		{"unknown params pick first", "weight", "asc", "Newest"},
		{"partial match picks first", "price", "", "Newest"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, err := ActiveSortLabel(DefaultSortOptions, tc.orderBy, tc.orderDir)
			if err != nil {
				t.Fatalf("active label: %v", err)
			}
			if label != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, label)
			}
		})
	}

	marked, err := MarkActiveSortOption(DefaultSortOptions, "name", "desc")
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	activeCount := 0
	for _, option := range marked {
		if option.Active {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active option, got %d", activeCount)
	}

	if _, err := MarkActiveSortOption(nil, "", ""); err == nil {
		t.Fatal("expected error for empty options")
	}
}

func TestLayoutFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		width int
		show  bool
	}{
		{320, false},
		{991, false},
		{992, true},
		{1920, true},
	}
	for _, tc := range cases {
		if got := LayoutFor(tc.width); got.ShowFilterPanel != tc.show {
			t.Errorf("LayoutFor(%d).ShowFilterPanel = %v, want %v", tc.width, got.ShowFilterPanel, tc.show)
		}
	}
}

func TestPageWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current int
		total   int
		width   int
		want    []int
	}{
		{"phone window", 5, 10, 375, []int{4, 5, 6}},
		{"tablet window", 5, 10, 768, []int{3, 4, 5, 6, 7}},
		{"desktop window", 5, 10, 1280, []int{2, 3, 4, 5, 6, 7, 8}},
		{"clamped at start", 1, 10, 1280, []int{1, 2, 3, 4, 5, 6, 7}},
		{"clamped at end", 10, 10, 768, []int{6, 7, 8, 9, 10}},
		{"fewer pages than window", 1, 2, 1280, []int{1, 2}},
		{"single page", 1, 1, 375, []int{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PageWindow(tc.current, tc.total, tc.width)
			if err != nil {
				t.Fatalf("page window: %v", err)
			}
			if !reflect.DeepEqual(got.Pages, tc.want) {
				t.Fatalf("expected pages %v, got %v", tc.want, got.Pages)
			}
			if got.HasPrev != (tc.current > 1) || got.HasNext != (tc.current < tc.total) {
				t.Fatalf("unexpected prev/next flags: %+v", got)
			}
		})
	}

	if _, err := PageWindow(0, 10, 375); err == nil {
		t.Fatal("expected error for page below range")
	}
	if _, err := PageWindow(11, 10, 375); err == nil {
		t.Fatal("expected error for page above range")
	}
	if _, err := PageWindow(1, 0, 375); err == nil {
		t.Fatal("expected error for zero total")
	}
}
