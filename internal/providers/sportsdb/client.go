package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/providers"
)

// Config controls how the client reaches TheSportsDB.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client searches TheSportsDB for teams and downloads their logos.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a TheSportsDB client with the provided configuration.
func NewClient(cfg Config) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = defaultAPIKey
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     apiKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// SearchTeams looks a team up by name. No match is an empty slice, not an error.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]logos.Team, error) {
	endpoint := fmt.Sprintf("%s/%s/%s?t=%s", c.baseURL, url.PathEscape(c.apiKey), searchPath, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode search response: %w", ProviderName, err)
	}
	return mapTeams(payload.Teams), nil
}

// DownloadLogo fetches an image from an absolute URL returned by SearchTeams.
func (c *Client) DownloadLogo(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%s: empty logo url", ProviderName)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read logo: %w", ProviderName, err)
	}
	if len(data) > maxLogoBytes {
		return nil, fmt.Errorf("%s: logo exceeds %d bytes", ProviderName, maxLogoBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty logo body", ProviderName)
	}
	return data, nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    fmt.Sprintf("%s: rate limited", ProviderName),
		}
	}
	return fmt.Errorf("%s: unexpected status %d: %s", ProviderName, resp.StatusCode, msg)
}
