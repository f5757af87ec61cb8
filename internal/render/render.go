// Package render prints changelogs for terminals
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nahidhasan98/changelog-viewer/internal/changelog"
	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
	"github.com/nahidhasan98/changelog-viewer/internal/session"
)

// Options control how versions are printed
type Options struct {
	// Collapsed prints version headings only
	Collapsed bool

	// AllCommits prints merges and README updates too
	AllCommits bool
}

// Header prints the title line and the link to the repository
func Header(w io.Writer, repo, pattern string) {
	fmt.Fprintln(w, TitleStyle.Render(" GitHub changelog "))
	fmt.Fprintf(w, "%s %s\n", MutedStyle.Render("Repo:   "), LinkStyle.Render("https://github.com/"+repo))
	fmt.Fprintf(w, "%s %s\n\n", MutedStyle.Render("Pattern:"), pattern)
}

// Versions prints every visible group: its heading followed by its commits
func Versions(w io.Writer, groups []*changelog.Group, opts Options) {
	for _, g := range groups {
		if !g.Visible() {
			continue
		}

		fmt.Fprintln(w, VersionStyle.Render("# "+g.Heading()))
		if opts.Collapsed {
			continue
		}

		commits := g.RelevantCommits
		if opts.AllCommits {
			commits = g.Commits
		}
		for _, c := range commits {
			Commit(w, c)
		}
		fmt.Fprintln(w)
	}
}

// Commit prints one commit: title, body, author and link
func Commit(w io.Writer, c models.Commit) {
	fmt.Fprintf(w, "\n%s\n", CommitTitleStyle.Render(changelog.Title(c.Message)))

	if body := changelog.Body(c.Message); body != "" {
		fmt.Fprintln(w, BodyStyle.Render(body))
	}

	var meta []string
	if c.AuthorLogin != "" {
		meta = append(meta, "@"+c.AuthorLogin)
	}
	if c.HTMLURL != "" {
		meta = append(meta, LinkStyle.Render(c.HTMLURL))
	}
	if len(meta) > 0 {
		fmt.Fprintln(w, MutedStyle.Render("  ")+strings.Join(meta, MutedStyle.Render(" · ")))
	}
}

// Notices prints the loading, rate limit and error notices of a snapshot
func Notices(w io.Writer, s session.Snapshot) {
	if s.RateLimited() && s.Quota != nil {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf(
			"GitHub API rate-limited, limit released at %s",
			s.Quota.ResetAt.Local().Format(time.DateTime),
		)))
	}

	if s.Loading {
		fmt.Fprintln(w, MutedStyle.Render("Loading..."))
	}

	if s.Err != nil && !s.RateLimited() {
		fmt.Fprintln(w, ErrorStyle.Render("Error: "+errorMessage(s.Err)))
	}
}

func errorMessage(err error) string {
	appErr, ok := errors.As(err)
	if !ok {
		return err.Error()
	}
	if appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return appErr.Message
}
