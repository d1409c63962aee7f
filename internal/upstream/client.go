package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gubchik123/LapZone/pkg/config"
	"github.com/Gubchik123/LapZone/pkg/logger"
	"github.com/Gubchik123/LapZone/pkg/metrics"
)

const csrfHeader = "X-CSRFToken"

// Client submits cart and wishlist mutations to the legacy storefront
// endpoints. Requests carry the JSON content headers and the anti-forgery
// token the upstream expects; responses are read as plain text and matched
// against the known literal phrases.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	addPath      string
	updatePath   string
	removePath   string
	likeTemplate string
	logg         *logger.Logger
	metrics      *metrics.StorefrontMetrics
}

// NewClient builds an upstream client from the provided configuration.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:      base,
		httpClient:   &http.Client{Timeout: timeout},
		addPath:      cfg.AddPath,
		updatePath:   cfg.UpdatePath,
		removePath:   cfg.RemovePath,
		likeTemplate: cfg.LikePathTemplate,
		logg:         logg,
		metrics:      m,
	}, nil
}

// AddProduct posts the product to the cart-add endpoint. A nil quantity sends
// the short body the product-list buttons use.
func (c *Client) AddProduct(ctx context.Context, csrfToken string, productID int64, quantity *int) Outcome {
	body := map[string]any{"product_id": productID}
	if quantity != nil {
		body["quantity"] = *quantity
	}
	return c.post(ctx, opCartAdd, c.addPath, csrfToken, body)
}

// UpdateQuantity persists a quantity change for one cart line.
func (c *Client) UpdateQuantity(ctx context.Context, csrfToken string, productID int64, quantity int) Outcome {
	body := map[string]any{"quantity": quantity, "product_id": productID}
	return c.post(ctx, opCartUpdate, c.updatePath, csrfToken, body)
}

// RemoveProduct deletes the product from the cart.
func (c *Client) RemoveProduct(ctx context.Context, csrfToken string, productID int64) Outcome {
	body := map[string]any{"product_id": productID}
	return c.post(ctx, opCartRemove, c.removePath, csrfToken, body)
}

// ToggleLike flips the wishlist state of the product for the given user.
func (c *Client) ToggleLike(ctx context.Context, csrfToken string, productID, userID int64) Outcome {
	path := fmt.Sprintf(c.likeTemplate, productID)
	body := map[string]any{"user_id": userID}
	return c.post(ctx, opLikeToggle, path, csrfToken, body)
}

func (c *Client) post(ctx context.Context, op operation, path, csrfToken string, body map[string]any) Outcome {
	start := time.Now()
	outcome := c.doPost(ctx, op, path, csrfToken, body)
	c.metrics.ObserveUpstream(string(op), string(outcome.Status), time.Since(start))
	return outcome
}

func (c *Client) doPost(ctx context.Context, op operation, path, csrfToken string, body map[string]any) Outcome {
	payload, err := json.Marshal(body)
	if err != nil {
		return c.retryOutcome(ctx, op, err, "encode request")
	}

	// Keep the trailing slash the legacy routes require.
	target := strings.TrimRight(c.baseURL.String(), "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return c.retryOutcome(ctx, op, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(csrfHeader, csrfToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.retryOutcome(ctx, op, err, "submit request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.retryOutcome(ctx, op, err, "read response")
	}

	// The body is the user-facing message regardless of matching.
	return matchOutcome(op, strings.TrimSpace(string(raw)))
}

func (c *Client) retryOutcome(ctx context.Context, op operation, err error, step string) Outcome {
	if c.logg != nil {
		ctx = c.logg.WithField(ctx, "upstream_op", string(op))
		c.logg.Error(ctx, "upstream."+step, err)
	}
	return Outcome{Status: StatusRetry, Message: MsgTryAgain}
}
