// Package github fetches commit pages and quota status from the GitHub REST
// API. Requests are unauthenticated, pagination follows RFC 5988 Link
// headers, and GET responses are revalidated with ETags so unchanged pages
// do not spend quota.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/logger"
)

const (
	// githubAPIVersion pins the REST API version header
	githubAPIVersion = "2022-11-28"

	// DefaultBaseURL is the public GitHub API
	DefaultBaseURL = "https://api.github.com"

	defaultUserAgent = "changelog-viewer"

	// maxBodySize bounds how much of a response is read
	maxBodySize = 32 << 20
)

// Config holds configuration for creating a Client
type Config struct {
	// BaseURL defaults to DefaultBaseURL. Must use HTTPS.
	BaseURL string

	// UserAgent is required by GitHub. Defaults to "changelog-viewer".
	UserAgent string

	// HTTPClient defaults to a client with a 30 second timeout
	HTTPClient *http.Client

	Logger *logger.Logger
}

// Client talks to the GitHub REST API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	pages      *pageCache
	quota      *quotaTracker
	log        *logger.Logger
}

// NewClient creates a client from cfg
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("github: API client requires HTTPS (got %q)", baseURL)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		pages:      newPageCache(),
		quota:      &quotaTracker{},
		log:        log.With("component", "github"),
	}, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues a GET against an absolute URL and returns the body and headers
// of a 2xx (or revalidated 304) response. Failures are FETCH_FAILED errors.
func (c *Client) get(ctx context.Context, url string) ([]byte, http.Header, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, errors.FetchFailed(fmt.Errorf("creating request: %w", err))
	}

	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	request.Header.Set("User-Agent", c.userAgent)
	cached, hasCached := c.pages.lookup(url)
	if hasCached {
		request.Header.Set("If-None-Match", cached.etag)
	}

	c.log.Debugf("GET %s", url)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, nil, errors.FetchFailed(fmt.Errorf("GET %s: %w", url, err))
	}
	defer response.Body.Close()

	c.quota.update(response.Header)

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return nil, nil, errors.FetchFailed(fmt.Errorf("reading response body: %w", err))
	}

	if response.StatusCode == http.StatusNotModified {
		if hasCached {
			c.log.Debugf("GET %s not modified, using cached body", url)
			return cached.body, cached.revalidated(response.Header), nil
		}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, nil, errors.FetchFailed(parseAPIError(response.StatusCode, body))
	}

	c.pages.store(url, response.Header, body)

	return body, response.Header, nil
}
