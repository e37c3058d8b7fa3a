// Package opac is the HTTP client for the upstream bibliographic catalog
// API. It owns transport only: raw payloads come back as decoded JSON maps
// and all shape reconciliation happens in the catalog package.
package opac

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

var (
	// ErrRecordNotFound reports an upstream 404 for a record id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnavailable reports transport failure or an upstream error status,
	// including retry exhaustion.
	ErrUnavailable = errors.New("catalog upstream unavailable")
)

var validate = validator.New()

// SearchOptions are the recognized request options, replacing what the
// upstream API surface would otherwise accept as loose globals.
type SearchOptions struct {
	Limit     int    `validate:"omitempty,min=1,max=100"`
	Page      int    `validate:"omitempty,min=1"`
	Language  string `validate:"omitempty,bcp47_language_tag"`
	SortOrder string `validate:"omitempty,oneof=relevance newest oldest title"`
}

func (o SearchOptions) Validate() error {
	return validate.Struct(o)
}

// SearchResult carries one page of raw, still-unnormalized records.
type SearchResult struct {
	Total   int
	Records []map[string]any
}

type searchResponse struct {
	ResultCount int              `json:"resultCount"`
	Records     []map[string]any `json:"records"`
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(baseURL, userAgent string, rps int, maxRetries int) *Client {
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:  userAgent,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

// Search runs a keyword search and returns the raw record maps.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lookfor", query)
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	params.Set("limit", strconv.Itoa(limit))
	if opts.Page > 1 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Language != "" {
		params.Set("lng", opts.Language)
	}
	if opts.SortOrder != "" {
		params.Set("sort", opts.SortOrder)
	}

	u := fmt.Sprintf("%s/api/v1/search?%s", c.baseURL, params.Encode())
	var res searchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &SearchResult{Total: res.ResultCount, Records: res.Records}, nil
}

// GetRecord fetches a single record payload untouched. The caller resolves
// whether it is an envelope or a bare record.
func (c *Client) GetRecord(ctx context.Context, id string) (map[string]any, error) {
	params := url.Values{}
	params.Set("id", id)

	u := fmt.Sprintf("%s/api/v1/record?%s", c.baseURL, params.Encode())
	var raw map[string]any
	if err := c.get(ctx, u, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusNotFound {
				return ErrRecordNotFound
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return fmt.Errorf("%w: unexpected status code: %d", ErrUnavailable, resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
		return nil
	}
	return fmt.Errorf("%w: after %d retries: %v", ErrUnavailable, c.maxRetries, lastErr)
}
