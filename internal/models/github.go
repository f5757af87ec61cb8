package models

import "time"

// GitHubCommit represents an entry of GET /repos/{owner}/{repo}/commits
type GitHubCommit struct {
	SHA     string           `json:"sha"`
	HTMLURL string           `json:"html_url"`
	Commit  GitHubCommitData `json:"commit"`
	Author  *GitHubUser      `json:"author"`
}

// GitHubCommitData is the git-level part of a listed commit
type GitHubCommitData struct {
	Message   string           `json:"message"`
	Author    GitHubCommitUser `json:"author"`
	Committer GitHubCommitUser `json:"committer"`
}

// GitHubCommitUser represents a user in a commit
type GitHubCommitUser struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// GitHubUser represents the GitHub account linked to a commit.
// It is null when the commit email matches no account.
type GitHubUser struct {
	Login     string `json:"login"`
	ID        int    `json:"id"`
	AvatarURL string `json:"avatar_url"`
	URL       string `json:"url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type"`
}

// GitHubRateLimit represents the GET /rate_limit response
type GitHubRateLimit struct {
	Rate GitHubRate `json:"rate"`
}

// GitHubRate is the core quota window
type GitHubRate struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
	Used      int   `json:"used"`
}

// ToCommit flattens the API representation
func (c GitHubCommit) ToCommit() Commit {
	commit := Commit{
		SHA:         c.SHA,
		Message:     c.Commit.Message,
		CommittedAt: c.Commit.Committer.Date,
		HTMLURL:     c.HTMLURL,
	}

	if c.Author != nil {
		commit.AuthorLogin = c.Author.Login
		commit.AuthorAvatarURL = c.Author.AvatarURL
		commit.AuthorURL = c.Author.HTMLURL
		if commit.AuthorURL == "" {
			commit.AuthorURL = c.Author.URL
		}
	} else {
		// Fall back to the git author name for unlinked emails
		commit.AuthorLogin = c.Commit.Author.Name
	}

	return commit
}

// ToSnapshot converts the core rate window
func (r GitHubRateLimit) ToSnapshot() RateLimitSnapshot {
	return RateLimitSnapshot{
		Limit:     r.Rate.Limit,
		Remaining: r.Rate.Remaining,
		ResetAt:   time.Unix(r.Rate.Reset, 0).UTC(),
	}
}
