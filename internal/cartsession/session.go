package cartsession

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
)

// fieldIDPrefix matches the quantity input ids the cart templates render,
// e.g. "quantity_field_3" for the third line.
const fieldIDPrefix = "quantity_field_"

// ParseLineIndex extracts the 1-based line index from a quantity field id.
// Anything that does not match the template pattern is rejected outright.
func ParseLineIndex(fieldID string) (int, error) {
	suffix, ok := strings.CutPrefix(fieldID, fieldIDPrefix)
	if !ok || suffix == "" {
		return 0, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("malformed quantity field id %q", fieldID),
		)
	}
	index, err := strconv.Atoi(suffix)
	if err != nil || index < 1 {
		return 0, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("malformed quantity field id %q", fieldID),
		)
	}
	return index, nil
}

// LineState is the committed state of one cart line.
type LineState struct {
	FieldID   string
	LineIndex int
	ProductID int64
	Committed int
	UnitPrice decimal.Decimal
}

// Total is the authoritative line total: unit price times committed quantity.
func (l *LineState) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Committed)))
}

// Session holds the server-side state of one rendered cart page. The mutex
// is held across the whole commit path, upstream call included, so
// conflicting updates for the same page serialize.
type Session struct {
	ID     uuid.UUID
	UserID int64

	mu        sync.Mutex
	registry  *PriceRegistry
	lines     map[string]*LineState
	byProduct map[int64]*LineState
	badge     int
	grand     decimal.Decimal
	added     map[int64]bool

	createdAt time.Time
	expiresAt time.Time
}

func newSession(userID int64, registry *PriceRegistry, lines []*LineState, ttl time.Duration) *Session {
	s := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		registry:  registry,
		lines:     make(map[string]*LineState, len(lines)),
		byProduct: make(map[int64]*LineState, len(lines)),
		added:     make(map[int64]bool),
		createdAt: time.Now(),
	}
	s.expiresAt = s.createdAt.Add(ttl)
	for _, line := range lines {
		s.lines[line.FieldID] = line
		s.byProduct[line.ProductID] = line
		s.badge += line.Committed
		s.grand = s.grand.Add(line.Total())
		s.added[line.ProductID] = true
	}
	return s
}

func (s *Session) expired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// recomputeGrand rebuilds the grand total from scratch. Kept private; the
// commit path maintains the running total incrementally and the two must
// always agree.
func (s *Session) recomputeGrand() decimal.Decimal {
	total := decimal.Decimal{}
	for _, line := range s.lines {
		total = total.Add(line.Total())
	}
	return total
}

// removeLine drops a line after an upstream removal and settles the badge
// and grand total. No-op when the product has no line on this page.
func (s *Session) removeLine(productID int64) {
	line, ok := s.byProduct[productID]
	if !ok {
		return
	}
	s.badge -= line.Committed
	s.grand = s.grand.Sub(line.Total())
	delete(s.lines, line.FieldID)
	delete(s.byProduct, productID)
	delete(s.added, productID)
}

// LineSnapshot is the read-only view of a line handed to API clients.
type LineSnapshot struct {
	FieldID   string `json:"field_id"`
	LineIndex int    `json:"line_index"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// Snapshot is the full page state: badge, totals and every line.
type Snapshot struct {
	SessionID  uuid.UUID      `json:"session_id"`
	UserID     int64          `json:"user_id"`
	Badge      int            `json:"badge"`
	GrandTotal string         `json:"grand_total"`
	Lines      []LineSnapshot `json:"lines"`
	ExpiresAt  time.Time      `json:"expires_at"`
}

// snapshotLocked builds a Snapshot; the caller holds s.mu.
func (s *Session) snapshotLocked() *Snapshot {
	lines := make([]LineSnapshot, 0, len(s.lines))
	for _, line := range s.lines {
		lines = append(lines, LineSnapshot{
			FieldID:   line.FieldID,
			LineIndex: line.LineIndex,
			ProductID: line.ProductID,
			Quantity:  line.Committed,
			UnitPrice: FormatPrice(line.UnitPrice),
			LineTotal: FormatPrice(line.Total()),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineIndex < lines[j].LineIndex })
	return &Snapshot{
		SessionID:  s.ID,
		UserID:     s.UserID,
		Badge:      s.badge,
		GrandTotal: FormatPrice(s.grand),
		Lines:      lines,
		ExpiresAt:  s.expiresAt,
	}
}
