package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/teclalabs/paperscope/core"
	"golang.org/x/time/rate"
)

const defaultFetchTimeout = 60 * time.Second

// Fetcher retrieves a full corpus snapshot keyed by paper title.
type Fetcher interface {
	// FetchCorpus downloads the complete corpus document.
	// The returned papers carry metadata only, never embeddings.
	FetchCorpus(ctx context.Context) (map[string]*core.Paper, error)
}

// OriginClient fetches the corpus document from its canonical origin URL.
// Requests are rate limited so repeated refreshes cannot hammer the origin.
type OriginClient struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ Fetcher = (*OriginClient)(nil)

// OriginOption configures an OriginClient.
type OriginOption func(*OriginClient)

// WithHTTPClient sets a custom HTTP client.
// Default is a client with a 60 second timeout.
func WithHTTPClient(client *http.Client) OriginOption {
	return func(c *OriginClient) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRateLimit sets the maximum origin request rate.
// Default is one request per ten seconds.
func WithRateLimit(limit rate.Limit) OriginOption {
	return func(c *OriginClient) {
		c.limiter = rate.NewLimiter(limit, 1)
	}
}

// NewOriginClient creates a client for the given corpus origin URL.
func NewOriginClient(url string, opts ...OriginOption) (*OriginClient, error) {
	if url == "" {
		return nil, ErrOriginURLRequired
	}

	c := &OriginClient{
		url:     url,
		client:  &http.Client{Timeout: defaultFetchTimeout},
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 1),
		logger:  slog.Default().With("component", "corpus-origin"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchCorpus downloads and decodes the corpus document.
func (c *OriginClient) FetchCorpus(ctx context.Context) (map[string]*core.Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetching corpus document", "url", c.url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("corpus origin returned status %d", resp.StatusCode)
	}

	var papers map[string]*core.Paper
	if err := json.NewDecoder(resp.Body).Decode(&papers); err != nil {
		return nil, err
	}

	return papers, nil
}
