// Package discovery implements the HTTP client for the upstream discovery
// provider.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/geoscout/geoscout/internal/core"
	"github.com/geoscout/geoscout/internal/domain"
)

const searchPath = "/v1/searches"

// Config captures runtime configuration for the provider client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Client  *http.Client
}

// Client talks to the discovery provider's search endpoint. The provider
// deduplicates and scores results against existing storage; the client only
// reports the returned counts.
//
// The client never retries. Failed attempts surface as failed executions and
// the scheduler's cursor advance retries them next interval.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ core.DiscoveryProvider = (*Client)(nil)

// NewClient constructs a provider client. Callers must provide a base URL.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("discovery provider base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		client:  hc,
	}, nil
}

// Search runs one discovery search and returns the provider's counts.
// Transport failures and 5xx responses wrap core.ErrProviderUnavailable;
// refused requests (auth, quota, bad input) wrap core.ErrProviderRejected.
func (c *Client) Search(ctx context.Context, p domain.SearchParams) (domain.SearchOutcome, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("encode search params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Keep context cancellation distinguishable from provider trouble.
		if ctx.Err() != nil {
			return domain.SearchOutcome{}, ctx.Err()
		}
		return domain.SearchOutcome{}, fmt.Errorf("%w: %v", core.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("%w: read response: %v", core.ErrProviderUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.SearchOutcome{}, classifyStatus(resp.StatusCode, respBody)
	}

	var outcome domain.SearchOutcome
	if err := json.Unmarshal(respBody, &outcome); err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("%w: decode response: %v", core.ErrProviderUnavailable, err)
	}
	if outcome.TotalFound < 0 || outcome.NewFound < 0 || outcome.NewFound > outcome.TotalFound {
		return domain.SearchOutcome{}, fmt.Errorf("%w: inconsistent counts total=%d new=%d",
			core.ErrProviderUnavailable, outcome.TotalFound, outcome.NewFound)
	}

	return outcome, nil
}

func classifyStatus(status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", core.ErrProviderRejected, status, detail)
	case status >= 500:
		return fmt.Errorf("%w: status %d: %s", core.ErrProviderUnavailable, status, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", core.ErrProviderRejected, status, detail)
	}
}
