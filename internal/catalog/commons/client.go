// Package commons samples artwork from the Wikimedia Commons MediaWiki API.
package commons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/parallax/internal/domain"
)

const (
	DefaultEndpoint   = "https://commons.wikimedia.org/w/api.php"
	defaultTimeout    = 30 * time.Second
	defaultPageLimit  = 20
	defaultMaxOffset  = 500
	defaultThumbWidth = 1920
	defaultUserAgent  = "parallax/0.1 (https://parallax.kr)"
	maxRetries        = 3
	baseRetryDelay    = 500 * time.Millisecond
)

// DefaultCategories is the curated list of gallery categories sampled from
var DefaultCategories = []string{
	"Featured pictures of paintings",
	"Google Art Project paintings",
	"Impressionist paintings",
	"Post-Impressionist paintings",
	"Paintings in the Metropolitan Museum of Art",
	"Paintings in the Rijksmuseum Amsterdam",
	"Ukiyo-e prints",
	"Landscape paintings",
}

// Config controls how candidates are sampled
type Config struct {
	Endpoint   string
	Categories []string
	PageLimit  int // results requested per query
	MaxOffset  int // upper bound for the random search offset
	ThumbWidth int
	UserAgent  string
	RetryDelay time.Duration // base delay for 5xx retries
}

// Client implements domain.Catalog for Wikimedia Commons
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	intN       func(n int) int
}

var _ domain.Catalog = (*Client)(nil)

// NewClient creates a Commons client, filling unset config with defaults
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = defaultPageLimit
	}
	if cfg.MaxOffset <= 0 {
		cfg.MaxOffset = defaultMaxOffset
	}
	if cfg.ThumbWidth <= 0 {
		cfg.ThumbWidth = defaultThumbWidth
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = baseRetryDelay
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		intN:   rand.IntN,
	}
}

// FetchCandidate samples one artwork. It picks a category and a random
// offset, requests a page of results and returns one usable entry at random.
// An empty page yields domain.ErrNoCandidate.
func (c *Client) FetchCandidate(ctx context.Context) (domain.Artwork, error) {
	category := c.cfg.Categories[c.intN(len(c.cfg.Categories))]
	offset := c.intN(c.cfg.MaxOffset + 1)

	pages, err := c.Search(ctx, category, offset, c.cfg.PageLimit)
	if err != nil {
		return domain.Artwork{}, err
	}

	usable := usablePages(pages)
	if len(usable) == 0 {
		c.logger.Debug("no usable images in page", "category", category, "offset", offset, "pages", len(pages))
		return domain.Artwork{}, domain.ErrNoCandidate
	}

	art := MapArtwork(usable[c.intN(len(usable))])
	c.logger.Debug("catalog candidate", "category", category, "offset", offset, "title", art.Title, "url", art.URL)
	return art, nil
}

// Search returns the file pages of a category, keyed by page ID
func (c *Client) Search(ctx context.Context, category string, offset, limit int) (map[string]Page, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("format", "json")
	query.Set("formatversion", "1")
	query.Set("generator", "search")
	query.Set("gsrsearch", fmt.Sprintf("incategory:%q filetype:bitmap", strings.ReplaceAll(category, " ", "_")))
	query.Set("gsrnamespace", "6")
	query.Set("gsroffset", strconv.Itoa(offset))
	query.Set("gsrlimit", strconv.Itoa(limit))
	query.Set("prop", "imageinfo")
	query.Set("iiprop", "url|extmetadata")
	query.Set("iiextmetadatafilter", "ObjectName|Artist")
	query.Set("iiurlwidth", strconv.Itoa(c.cfg.ThumbWidth))

	body, err := c.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	var resp QueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("catalog error %s: %s", resp.Error.Code, resp.Error.Info)
	}
	if resp.Query == nil {
		return map[string]Page{}, nil
	}
	return resp.Query.Pages, nil
}

// doRequest performs a GET against the API endpoint.
// Includes retry logic with exponential backoff for 5xx server errors
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	reqURL := c.cfg.Endpoint + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := c.cfg.RetryDelay * time.Duration(1<<(attempt-1))
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.cfg.UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("catalog request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= 500 && resp.StatusCode < 600 {
			lastErr = fmt.Errorf("%w: server error %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			c.logger.Warn("catalog server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", maxRetries,
			)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return body, nil
	}

	c.logger.Error("catalog request failed after retries", "error", lastErr)
	return nil, lastErr
}
