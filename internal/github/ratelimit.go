package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
)

// CheckQuota reads the core quota window from GET /rate_limit. The endpoint
// itself does not count against the quota.
func (c *Client) CheckQuota(ctx context.Context) (models.RateLimitSnapshot, error) {
	body, _, err := c.get(ctx, c.baseURL+"/rate_limit")
	if err != nil {
		return models.RateLimitSnapshot{}, err
	}

	var limits models.GitHubRateLimit
	if err := json.Unmarshal(body, &limits); err != nil {
		return models.RateLimitSnapshot{}, errors.ParseFailed(err)
	}

	snapshot := limits.ToSnapshot()
	c.quota.set(snapshot)
	c.log.Debugf("rate limit: %d/%d remaining, resets %s",
		snapshot.Remaining, snapshot.Limit, snapshot.ResetAt.Format(time.RFC3339))

	return snapshot, nil
}

// LastQuota returns the most recent quota seen on any response, and false
// before the first one
func (c *Client) LastQuota() (models.RateLimitSnapshot, bool) {
	return c.quota.get()
}

// quotaTracker remembers the X-RateLimit-* headers of the latest response
type quotaTracker struct {
	mu       sync.Mutex
	snapshot models.RateLimitSnapshot
	known    bool
}

func (tracker *quotaTracker) update(header http.Header) {
	remainingStr := header.Get("X-RateLimit-Remaining")
	resetStr := header.Get("X-RateLimit-Reset")
	if remainingStr == "" || resetStr == "" {
		return
	}

	remaining, err := strconv.Atoi(remainingStr)
	if err != nil {
		return
	}
	resetUnix, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return
	}
	limit, _ := strconv.Atoi(header.Get("X-RateLimit-Limit"))

	tracker.set(models.RateLimitSnapshot{
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.Unix(resetUnix, 0).UTC(),
	})
}

func (tracker *quotaTracker) set(snapshot models.RateLimitSnapshot) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.snapshot = snapshot
	tracker.known = true
}

func (tracker *quotaTracker) get() (models.RateLimitSnapshot, bool) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.snapshot, tracker.known
}
