package likes

import (
	"context"
	"fmt"
	"sync"

	"github.com/Gubchik123/LapZone/internal/upstream"
	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

// Icon names the product pages render for the like button.
const (
	IconLiked    = "heart"
	IconNotLiked = "heart-outline"
)

type toggler interface {
	ToggleLike(ctx context.Context, csrfToken string, productID, userID int64) upstream.Outcome
}

// ToggleResult reports the icon to render after a like click.
type ToggleResult struct {
	Icon    string `json:"icon"`
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

// Service tracks per-user like state so the icon toggles deterministically.
// The state machine is bistable and moves only on the two exact wishlist
// confirmation phrases; any other upstream response leaves it untouched.
type Service interface {
	Toggle(ctx context.Context, csrfToken string, userID, productID int64) (*ToggleResult, error)
	Icon(userID, productID int64) string
}

type likeKey struct {
	userID    int64
	productID int64
}

type service struct {
	upstream toggler
	logg     *logger.Logger

	mu    sync.Mutex
	liked map[likeKey]bool
}

// NewService builds the like-toggle service.
func NewService(up toggler, logg *logger.Logger) (Service, error) {
	if up == nil {
		return nil, fmt.Errorf("upstream toggler required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		upstream: up,
		logg:     logg,
		liked:    make(map[likeKey]bool),
	}, nil
}

// Toggle proxies a like click and applies the resulting transition.
func (s *service) Toggle(ctx context.Context, csrfToken string, userID, productID int64) (*ToggleResult, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = s.logg.WithProductID(ctx, productID)
	key := likeKey{userID: userID, productID: productID}

	outcome := s.upstream.ToggleLike(ctx, csrfToken, productID, userID)
	switch outcome.Status {
	case upstream.StatusLiked:
		s.liked[key] = true
		return &ToggleResult{Icon: IconLiked, Changed: true, Message: outcome.Message}, nil
	case upstream.StatusUnliked:
		delete(s.liked, key)
		return &ToggleResult{Icon: IconNotLiked, Changed: true, Message: outcome.Message}, nil
	default:
		s.logg.Warn(ctx, "like toggle left unchanged")
		return &ToggleResult{Icon: s.iconLocked(key), Changed: false, Message: outcome.Message}, nil
	}
}

// Icon reports the icon currently rendered for the user and product.
func (s *service) Icon(userID, productID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iconLocked(likeKey{userID: userID, productID: productID})
}

func (s *service) iconLocked(key likeKey) string {
	if s.liked[key] {
		return IconLiked
	}
	return IconNotLiked
}
