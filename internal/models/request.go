package models

// CreateSessionRequest opens a changelog session. Fragment, when set, takes
// precedence over Repo and Pattern.
type CreateSessionRequest struct {
	Repo     string `json:"repo"`
	Pattern  string `json:"pattern,omitempty"`
	Fragment string `json:"fragment,omitempty"`
	Load     bool   `json:"load,omitempty"` // load the first page immediately
}

// UpdateRepoRequest switches a session to another repository
type UpdateRepoRequest struct {
	Repo string `json:"repo"`
}

// UpdatePatternRequest switches a session's version pattern
type UpdatePatternRequest struct {
	Pattern string `json:"pattern"`
}

// UpdateFragmentRequest applies a shareable fragment to a session
type UpdateFragmentRequest struct {
	Fragment string `json:"fragment"`
}
