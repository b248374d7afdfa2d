package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Fallback cover shown when a volume ships no image links.
const placeholderCoverURL = "https://via.placeholder.com/128x192?text=No+Cover"

// Client provides access to the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
	apiKey      string
}

// NewClient creates a new Google Books client. The API key is optional;
// unkeyed requests work against the public quota. baseURL may be empty
// to use the production endpoint.
func NewClient(apiKey, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Stay well under the default per-user quota: 10 requests per
		// second with a burst of 5.
		rateLimiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		logger:      logger,
		baseURL:     baseURL,
		apiKey:      apiKey,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
