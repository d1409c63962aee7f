package cartsession

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"2500", "2500.0$"},
		{"2500.00", "2500.0$"},
		{"1299.99", "1299.99$"},
		{"249.50", "249.5$"},
		{"0", "0.0$"},
		{"0.00", "0.0$"},
		{"19.90", "19.9$"},
	}
	for _, tc := range cases {
		got := FormatPrice(decimal.RequireFromString(tc.in))
		if got != tc.want {
			t.Errorf("FormatPrice(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseLineIndex(t *testing.T) {
	t.Parallel()

	index, err := ParseLineIndex("quantity_field_3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if index != 3 {
		t.Fatalf("expected index 3, got %d", index)
	}

	index, err = ParseLineIndex("quantity_field_12")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if index != 12 {
		t.Fatalf("expected index 12, got %d", index)
	}

	for _, fieldID := range []string{"", "quantity_field_", "quantity_field_abc", "quantity_field_-1", "quantity_field_0", "other_field_3", "3"} {
		if _, err := ParseLineIndex(fieldID); err == nil {
			t.Errorf("expected error for %q", fieldID)
		}
	}
}

func TestPriceRegistryMissFailsFast(t *testing.T) {
	t.Parallel()

	registry := NewPriceRegistry(map[int]decimal.Decimal{
		1: decimal.RequireFromString("500.00"),
	})

	price, err := registry.UnitPrice(1)
	if err != nil {
		t.Fatalf("unit price: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("unexpected price: %s", price)
	}

	_, err = registry.UnitPrice(2)
	if err == nil {
		t.Fatal("expected error for unregistered line")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestIncrementalTotal(t *testing.T) {
	t.Parallel()

	unit := decimal.RequireFromString("500.00")
	current := decimal.RequireFromString("1000.00")

	got := incrementalTotal(current, unit, 2, 5)
	if !got.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("expected 2500.00, got %s", got)
	}

	got = incrementalTotal(got, unit, 5, 1)
	if !got.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("expected 500.00, got %s", got)
	}
}
