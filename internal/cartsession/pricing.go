package cartsession

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
)

// PriceRegistry maps 1-based line indexes to catalog unit prices. It is
// populated once at session open and never mutated afterwards.
type PriceRegistry struct {
	prices map[int]decimal.Decimal
}

// NewPriceRegistry copies the provided prices into an immutable registry.
func NewPriceRegistry(prices map[int]decimal.Decimal) *PriceRegistry {
	copied := make(map[int]decimal.Decimal, len(prices))
	for index, price := range prices {
		copied[index] = price
	}
	return &PriceRegistry{prices: copied}
}

// UnitPrice resolves the unit price for a line. A miss is an error: callers
// must never compute totals with a zero placeholder price.
func (r *PriceRegistry) UnitPrice(lineIndex int) (decimal.Decimal, error) {
	price, ok := r.prices[lineIndex]
	if !ok {
		return decimal.Decimal{}, pkgerrors.New(
			pkgerrors.CodeNotFound,
			fmt.Sprintf("no unit price registered for line %d", lineIndex),
		)
	}
	return price, nil
}

// Len reports how many lines the registry covers.
func (r *PriceRegistry) Len() int {
	return len(r.prices)
}

// FormatPrice renders a price the way the storefront templates do: at least
// one fractional digit, no padding zeros beyond that, trailing "$".
// 2500 -> "2500.0$", 1299.99 -> "1299.99$".
func FormatPrice(value decimal.Decimal) string {
	s := value.String()
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s + ".0$"
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s + "$"
}

// incrementalTotal applies the running-total delta for a quantity change:
// current - old*unit + new*unit.
func incrementalTotal(current, unit decimal.Decimal, oldQty, newQty int) decimal.Decimal {
	delta := unit.Mul(decimal.NewFromInt(int64(newQty - oldQty)))
	return current.Add(delta)
}
