package models

import "time"

// Commit is a single commit as listed by the GitHub commits API.
// Commits arrive newest first and that order is significant.
type Commit struct {
	SHA             string    `json:"sha"`
	Message         string    `json:"message"`
	AuthorLogin     string    `json:"author_login,omitempty"`
	AuthorAvatarURL string    `json:"author_avatar_url,omitempty"`
	AuthorURL       string    `json:"author_url,omitempty"`
	CommittedAt     time.Time `json:"committed_at"`
	HTMLURL         string    `json:"html_url"`
}

// Page is one page of commits plus the cursor of the following page.
// An empty Next means there are no more pages.
type Page struct {
	Commits []Commit
	Next    string
}

// RateLimitSnapshot is a point-in-time read of the remaining API quota
type RateLimitSnapshot struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// HasQuota reports whether another request may be issued
func (s RateLimitSnapshot) HasQuota() bool {
	return s.Remaining > 0
}
