package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
)

// PageSize is the number of commits requested per page
const PageSize = 100

// InitialCursor returns the URL of the first commits page of repo
// ("owner/name")
func (c *Client) InitialCursor(repo string) string {
	owner, name, _ := strings.Cut(repo, "/")
	return fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d",
		c.baseURL, url.PathEscape(owner), url.PathEscape(name), PageSize)
}

// FetchPage fetches the commits page at cursor. The returned Next cursor is
// the Link header's rel="next" URL, empty on the last page. repo is only
// used for logging.
func (c *Client) FetchPage(ctx context.Context, cursor string, repo string) (*models.Page, error) {
	if cursor == "" {
		return nil, errors.FetchFailed(fmt.Errorf("no page cursor for %s", repo))
	}

	body, header, err := c.get(ctx, cursor)
	if err != nil {
		return nil, err
	}

	var listed []models.GitHubCommit
	if err := json.Unmarshal(body, &listed); err != nil {
		return nil, errors.ParseFailed(err)
	}

	page := &models.Page{
		Commits: make([]models.Commit, 0, len(listed)),
		Next:    parseLinkNext(header.Get("Link")),
	}
	for _, commit := range listed {
		page.Commits = append(page.Commits, commit.ToCommit())
	}

	c.log.With("repo", repo).Debugf("fetched %d commits, more=%t", len(page.Commits), page.Next != "")

	return page, nil
}

// parseLinkNext extracts the URL with rel="next" from an RFC 5988 Link
// header, or "" if there is none.
//
// Format: <https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
func parseLinkNext(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		urlPart, params, ok := strings.Cut(strings.TrimSpace(part), ";")
		if !ok {
			continue
		}

		if !strings.Contains(params, `rel="next"`) {
			continue
		}

		urlPart = strings.TrimSpace(urlPart)
		if strings.HasPrefix(urlPart, "<") && strings.HasSuffix(urlPart, ">") {
			return urlPart[1 : len(urlPart)-1]
		}
	}

	return ""
}
