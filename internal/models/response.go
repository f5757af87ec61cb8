package models

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string             `json:"status"`
	Sessions  int                `json:"sessions"`
	RateLimit *RateLimitSnapshot `json:"rate_limit,omitempty"`
	Timestamp int64              `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// StatusResponse represents a generic status response
type StatusResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SessionResponse is the JSON view of a changelog session
type SessionResponse struct {
	ID         string             `json:"id"`
	Repo       string             `json:"repo"`
	Pattern    string             `json:"pattern"`
	Fragment   string             `json:"fragment"`
	State      string             `json:"state"`
	Loading    bool               `json:"loading"`
	HasMore    bool               `json:"has_more"`
	Pages      int                `json:"pages"`
	Generation uint64             `json:"generation"`
	RateLimit  *RateLimitSnapshot `json:"rate_limit,omitempty"`
	Error      *ErrorResponse     `json:"error,omitempty"`
	Versions   []VersionResponse  `json:"versions"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// VersionResponse is one version of a changelog. Version is empty for the
// Unreleased group.
type VersionResponse struct {
	Version      string           `json:"version"`
	Heading      string           `json:"heading"`
	Date         string           `json:"date,omitempty"`
	TotalCommits int              `json:"total_commits"`
	Commits      []CommitResponse `json:"commits"`
}

// CommitResponse is a relevant commit rendered for display
type CommitResponse struct {
	SHA       string    `json:"sha"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Author    string    `json:"author,omitempty"`
	AuthorURL string    `json:"author_url,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	URL       string    `json:"url"`
	Date      time.Time `json:"date"`
}

// ShareResponse carries the shareable fragment of a session
type ShareResponse struct {
	Fragment string `json:"fragment"`
	Link     string `json:"link"`
}
