package render

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nahidhasan98/changelog-viewer/internal/changelog"
	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
	"github.com/nahidhasan98/changelog-viewer/internal/session"
)

func sampleGroups() []*changelog.Group {
	feature := models.Commit{
		SHA:         "abc",
		Message:     "add feature\n\nlonger description\n",
		AuthorLogin: "octocat",
		HTMLURL:     "https://github.com/owner/repo/commit/abc",
	}
	merge := models.Commit{SHA: "def", Message: "Merge pull request #1"}

	return []*changelog.Group{
		{Label: changelog.UnreleasedLabel, Commits: []models.Commit{merge}},
		{
			Label:           "1.2.3",
			Date:            time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC),
			Commits:         []models.Commit{merge, feature},
			RelevantCommits: []models.Commit{feature},
		},
	}
}

func TestVersions(t *testing.T) {
	var buf bytes.Buffer
	Versions(&buf, sampleGroups(), Options{})
	out := buf.String()

	assert.NotContains(t, out, "Unreleased")
	assert.Contains(t, out, "# 1.2.3 - 2024-01-31")
	assert.Contains(t, out, "add feature")
	assert.Contains(t, out, "longer description")
	assert.Contains(t, out, "@octocat")
	assert.Contains(t, out, "https://github.com/owner/repo/commit/abc")
	assert.NotContains(t, out, "Merge pull request")
}

func TestVersions_Options(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		contains []string
		excludes []string
	}{
		{
			name:     "collapsed",
			opts:     Options{Collapsed: true},
			contains: []string{"# 1.2.3 - 2024-01-31"},
			excludes: []string{"add feature"},
		},
		{
			name:     "all commits",
			opts:     Options{AllCommits: true},
			contains: []string{"Merge pull request #1", "add feature"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Versions(&buf, sampleGroups(), tt.opts)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestNotices(t *testing.T) {
	resetAt := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		snapshot session.Snapshot
		contains string
		empty    bool
	}{
		{
			name: "rate limited",
			snapshot: session.Snapshot{
				Err:   errors.RateLimited(resetAt.Format(time.RFC3339)),
				Quota: &models.RateLimitSnapshot{Limit: 60, ResetAt: resetAt},
			},
			contains: "GitHub API rate-limited, limit released at",
		},
		{
			name:     "loading",
			snapshot: session.Snapshot{Loading: true},
			contains: "Loading...",
		},
		{
			name:     "fetch error",
			snapshot: session.Snapshot{Err: errors.FetchFailed(fmt.Errorf("503 Service Unavailable"))},
			contains: "Error: Failed to fetch from GitHub: 503 Service Unavailable",
		},
		{
			name:  "idle",
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Notices(&buf, tt.snapshot)
			if tt.empty {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}
