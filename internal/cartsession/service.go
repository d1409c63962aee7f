package cartsession

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gubchik123/LapZone/internal/upstream"
	"github.com/Gubchik123/LapZone/pkg/config"
	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

// Commit results reported to API clients.
const (
	ResultNoChange    = "no_change"
	ResultRevertedMin = "reverted_min"
	ResultRevertedMax = "reverted_max"
	ResultCommitted   = "committed"
	ResultRolledBack  = "rolled_back"

	ResultAdded         = "added"
	ResultAlreadyInCart = "already_in_cart"
	ResultRemoved       = "removed"
	ResultFailed        = "failed"
)

type priceLoader interface {
	PricesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

type submitter interface {
	AddProduct(ctx context.Context, csrfToken string, productID int64, quantity *int) upstream.Outcome
	UpdateQuantity(ctx context.Context, csrfToken string, productID int64, quantity int) upstream.Outcome
	RemoveProduct(ctx context.Context, csrfToken string, productID int64) upstream.Outcome
}

type commitRecorder interface {
	IncCommit(result string)
}

// ItemInput describes one rendered cart line at session open.
type ItemInput struct {
	FieldID   string
	ProductID int64
	Quantity  int
}

// CommitResult is the outcome of one quantity-field commit.
type CommitResult struct {
	Result     string `json:"result"`
	Message    string `json:"message"`
	FieldID    string `json:"field_id"`
	Quantity   int    `json:"quantity"`
	Badge      int    `json:"badge"`
	LineTotal  string `json:"line_total"`
	GrandTotal string `json:"grand_total"`
}

// AddResult is the outcome of proxying an add-to-cart click.
type AddResult struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// RemoveResult is the outcome of proxying a remove-from-cart click. Reload
// tells the page to refresh itself after a successful removal.
type RemoveResult struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Reload  bool   `json:"reload"`
	Badge   int    `json:"badge"`
}

// Service owns the page-session lifecycle and the quantity commit path.
type Service interface {
	Open(ctx context.Context, userID int64, items []ItemInput) (*Snapshot, error)
	Snapshot(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error)
	CommitQuantity(ctx context.Context, sessionID uuid.UUID, csrfToken, fieldID, rawValue string) (*CommitResult, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, csrfToken string, productID int64, quantity *int) (*AddResult, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, csrfToken string, productID int64) (*RemoveResult, error)
	Close(ctx context.Context, sessionID uuid.UUID) error
}

type service struct {
	manager  *Manager
	prices   priceLoader
	upstream submitter
	logg     *logger.Logger
	metrics  commitRecorder
	minQty   int
	maxQty   int
}

// NewService builds the page-session service backed by the provided stack.
func NewService(
	manager *Manager,
	prices priceLoader,
	up submitter,
	logg *logger.Logger,
	metrics commitRecorder,
	cfg config.CartConfig,
) (Service, error) {
	if manager == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if prices == nil {
		return nil, fmt.Errorf("price loader required")
	}
	if up == nil {
		return nil, fmt.Errorf("upstream submitter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.MinQuantity < 1 || cfg.MaxQuantity < cfg.MinQuantity {
		return nil, fmt.Errorf("invalid quantity bounds [%d, %d]", cfg.MinQuantity, cfg.MaxQuantity)
	}
	return &service{
		manager:  manager,
		prices:   prices,
		upstream: up,
		logg:     logg,
		metrics:  metrics,
		minQty:   cfg.MinQuantity,
		maxQty:   cfg.MaxQuantity,
	}, nil
}

// Open builds a session from the rendered cart lines. Unit prices come from
// the catalog; an unknown product or malformed field id aborts the open.
func (s *service) Open(ctx context.Context, userID int64, items []ItemInput) (*Snapshot, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	prices, err := s.prices.PricesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	registryPrices := make(map[int]decimal.Decimal, len(items))
	indexes := make([]int, 0, len(items))
	for _, item := range items {
		index, err := ParseLineIndex(item.FieldID)
		if err != nil {
			return nil, err
		}
		if item.Quantity < s.minQty || item.Quantity > s.maxQty {
			return nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("quantity %d for %s is outside [%d, %d]", item.Quantity, item.FieldID, s.minQty, s.maxQty),
			)
		}
		if _, dup := registryPrices[index]; dup {
			return nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("duplicate line index %d", index),
			)
		}
		registryPrices[index] = prices[item.ProductID]
		indexes = append(indexes, index)
	}

	registry := NewPriceRegistry(registryPrices)
	lines := make([]*LineState, 0, len(items))
	for i, item := range items {
		unit, err := registry.UnitPrice(indexes[i])
		if err != nil {
			return nil, err
		}
		lines = append(lines, &LineState{
			FieldID:   item.FieldID,
			LineIndex: indexes[i],
			ProductID: item.ProductID,
			Committed: item.Quantity,
			UnitPrice: unit,
		})
	}

	session := newSession(userID, registry, lines, s.manager.TTL())
	s.manager.Put(session)

	ctx = s.logg.WithCartSessionID(ctx, session.ID.String())
	s.logg.Info(ctx, "cart page session opened")

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}

func (s *service) Snapshot(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error) {
	session, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}

// CommitQuantity runs the full field commit path: bounds check, optimistic
// mutation, synchronous upstream submit, rollback on failure. The session
// mutex is held for the whole path so concurrent commits for one page
// serialize.
func (s *service) CommitQuantity(ctx context.Context, sessionID uuid.UUID, csrfToken, fieldID, rawValue string) (*CommitResult, error) {
	session, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := ParseLineIndex(fieldID); err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	line, ok := session.lines[fieldID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no cart line for field %q", fieldID))
	}

	ctx = s.logg.WithCartSessionID(ctx, session.ID.String())
	ctx = s.logg.WithProductID(ctx, line.ProductID)

	quantity, err := strconv.Atoi(rawValue)
	if err != nil || quantity < s.minQty {
		s.record(ResultRevertedMin)
		return s.result(session, line, ResultRevertedMin, fmt.Sprintf("Minimum quantity is %d!", s.minQty)), nil
	}
	if quantity > s.maxQty {
		s.record(ResultRevertedMax)
		return s.result(session, line, ResultRevertedMax, fmt.Sprintf("Maximum quantity is %d!", s.maxQty)), nil
	}
	if quantity == line.Committed {
		s.record(ResultNoChange)
		return s.result(session, line, ResultNoChange, ""), nil
	}

	previous := line.Committed
	previousBadge := session.badge
	previousGrand := session.grand

	line.Committed = quantity
	session.badge += quantity - previous
	session.grand = incrementalTotal(session.grand, line.UnitPrice, previous, quantity)

	outcome := s.upstream.UpdateQuantity(ctx, csrfToken, line.ProductID, quantity)
	if !outcome.OK() {
		line.Committed = previous
		session.badge = previousBadge
		session.grand = previousGrand
		s.logg.Warn(ctx, "quantity commit rolled back")
		s.record(ResultRolledBack)
		return s.result(session, line, ResultRolledBack, outcome.Message), nil
	}

	s.record(ResultCommitted)
	return s.result(session, line, ResultCommitted, outcome.Message), nil
}

// AddItem proxies an add-to-cart click. A product already converted on this
// page short-circuits without touching the upstream, so the button flips at
// most once.
func (s *service) AddItem(ctx context.Context, sessionID uuid.UUID, csrfToken string, productID int64, quantity *int) (*AddResult, error) {
	session, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity != nil && (*quantity < s.minQty || *quantity > s.maxQty) {
		return nil, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("quantity %d is outside [%d, %d]", *quantity, s.minQty, s.maxQty),
		)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.added[productID] {
		return &AddResult{Result: ResultAlreadyInCart, Message: upstream.MsgCartAdded}, nil
	}

	ctx = s.logg.WithCartSessionID(ctx, session.ID.String())
	ctx = s.logg.WithProductID(ctx, productID)

	outcome := s.upstream.AddProduct(ctx, csrfToken, productID, quantity)
	if !outcome.OK() {
		return &AddResult{Result: ResultFailed, Message: outcome.Message}, nil
	}

	session.added[productID] = true
	return &AddResult{Result: ResultAdded, Message: outcome.Message}, nil
}

// RemoveItem proxies a remove-from-cart click. On success the line (when
// the page shows one) is dropped and the client is told to reload.
func (s *service) RemoveItem(ctx context.Context, sessionID uuid.UUID, csrfToken string, productID int64) (*RemoveResult, error) {
	session, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	ctx = s.logg.WithCartSessionID(ctx, session.ID.String())
	ctx = s.logg.WithProductID(ctx, productID)

	outcome := s.upstream.RemoveProduct(ctx, csrfToken, productID)
	if !outcome.OK() {
		return &RemoveResult{Result: ResultFailed, Message: outcome.Message, Badge: session.badge}, nil
	}

	session.removeLine(productID)
	return &RemoveResult{
		Result:  ResultRemoved,
		Message: outcome.Message,
		Reload:  true,
		Badge:   session.badge,
	}, nil
}

func (s *service) Close(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.manager.Get(sessionID); err != nil {
		return err
	}
	s.manager.Delete(sessionID)
	s.logg.Info(s.logg.WithCartSessionID(ctx, sessionID.String()), "cart page session closed")
	return nil
}

// result builds a CommitResult from the session state; the caller holds the
// session mutex.
func (s *service) result(session *Session, line *LineState, result, message string) *CommitResult {
	return &CommitResult{
		Result:     result,
		Message:    message,
		FieldID:    line.FieldID,
		Quantity:   line.Committed,
		Badge:      session.badge,
		LineTotal:  FormatPrice(line.Total()),
		GrandTotal: FormatPrice(session.grand),
	}
}

func (s *service) record(result string) {
	if s.metrics != nil {
		s.metrics.IncCommit(result)
	}
}
