// Package session drives the incremental loading of one repository's
// changelog: quota check, page fetch, grouping with carry-in, merge.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nahidhasan98/changelog-viewer/internal/changelog"
	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/logger"
	"github.com/nahidhasan98/changelog-viewer/internal/models"
	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
	"github.com/nahidhasan98/changelog-viewer/internal/share"
)

// State of a session's loading pipeline
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateErrored State = "errored"
)

// QuotaGate reports the remaining API quota
type QuotaGate interface {
	CheckQuota(ctx context.Context) (models.RateLimitSnapshot, error)
}

// PageFetcher fetches commit pages
type PageFetcher interface {
	InitialCursor(repo string) string
	FetchPage(ctx context.Context, cursor string, repo string) (*models.Page, error)
}

// Session holds the changelog being built for one repository and pattern.
// All methods are safe for concurrent use; LoadNextPage calls are
// serialized, a call made while another is in flight does nothing.
type Session struct {
	gate    QuotaGate
	fetcher PageFetcher
	log     *logger.Logger
	now     func() time.Time

	mu         sync.Mutex
	repo       string
	pattern    *pattern.Pattern
	cursor     string
	versions   *changelog.Mapping
	open       *changelog.Group
	quota      *models.RateLimitSnapshot
	state      State
	lastErr    error
	generation uint64
	pages      int
	updatedAt  time.Time
}

// New creates an idle session with the default pattern and no repository
func New(gate QuotaGate, fetcher PageFetcher, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	s := &Session{
		gate:    gate,
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
		pattern: pattern.MustCompile(pattern.Default),
	}
	s.reset()
	return s
}

// SelectRepo switches to repo and discards everything loaded so far. Nothing
// is fetched until LoadNextPage is called.
func (s *Session) SelectRepo(repo string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.repo = strings.TrimSpace(repo)
	s.reset()
}

// SetPattern switches the version pattern and discards everything loaded so
// far. An invalid pattern is rejected with INVALID_PATTERN and the session is
// left untouched.
func (s *Session) SetPattern(raw string) error {
	compiled, err := pattern.Compile(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pattern = compiled
	s.reset()
	return nil
}

// Apply restores repo and pattern from a shareable fragment. The session is
// only reset when one of them actually changes. Reports whether it did.
func (s *Session) Apply(fragment string) (bool, error) {
	params, err := share.Parse(fragment)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInvalidRequest, "Invalid fragment")
	}

	var compiled *pattern.Pattern
	if params.Pattern != "" {
		if compiled, err = pattern.Compile(params.Pattern); err != nil {
			return false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	if params.Repo != "" && params.Repo != s.repo {
		s.repo = params.Repo
		changed = true
	}
	if compiled != nil && compiled.String() != s.pattern.String() {
		s.pattern = compiled
		changed = true
	}

	if changed {
		s.reset()
	}
	return changed, nil
}

// Reset discards loaded pages and starts again from the first page
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Fragment returns the shareable fragment of the current parameters
func (s *Session) Fragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return share.Encode(s.repo, s.pattern.String())
}

// reset must be called with mu held. Bumping the generation makes any
// in-flight LoadNextPage discard its result.
func (s *Session) reset() {
	s.generation++
	s.versions = changelog.NewMapping()
	s.open = nil
	s.cursor = ""
	if s.repo != "" {
		s.cursor = s.fetcher.InitialCursor(s.repo)
	}
	s.state = StateIdle
	s.lastErr = nil
	s.pages = 0
	s.updatedAt = s.now()
}

// LoadNextPage loads one more page of history. It is a no-op when there is
// no page left or a load is already running.
//
// The quota is checked first; when it is exhausted no page is requested and
// a RATE_LIMITED error carrying the reset time is recorded. A failed fetch
// moves the session to StateErrored. In both cases the cursor is kept, so
// calling LoadNextPage again retries the same page. Results of a load that
// was overtaken by SelectRepo, SetPattern or Reset are dropped.
func (s *Session) LoadNextPage(ctx context.Context) error {
	s.mu.Lock()
	if s.cursor == "" || s.state == StateLoading {
		s.mu.Unlock()
		return nil
	}
	generation := s.generation
	cursor := s.cursor
	repo := s.repo
	p := s.pattern
	carry := s.open
	s.state = StateLoading
	s.updatedAt = s.now()
	s.mu.Unlock()

	log := s.log.With("repo", repo)

	quota, err := s.gate.CheckQuota(ctx)
	if err != nil {
		log.Error("Failed to check rate limit", err)
		return s.finish(generation, StateErrored, err)
	}

	if !s.recordQuota(generation, quota) {
		return nil
	}

	if !quota.HasQuota() {
		log.Warnf("GitHub API rate-limited until %s", quota.ResetAt.Format(time.RFC3339))
		return s.finish(generation, StateIdle, errors.RateLimited(quota.ResetAt.Format(time.RFC3339)))
	}

	page, err := s.fetcher.FetchPage(ctx, cursor, repo)
	if err != nil {
		log.Error("Failed to fetch commits page", err)
		return s.finish(generation, StateErrored, err)
	}

	result := changelog.GroupCommits(page.Commits, p, carry)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		log.Debug("Discarding page loaded for a previous selection")
		return nil
	}

	s.versions.Merge(result.Closed)
	s.open = result.Open
	s.cursor = page.Next
	s.pages++
	s.state = StateIdle
	s.lastErr = nil
	s.updatedAt = s.now()

	log.Debugf("Loaded page %d: %d commits, %d versions, more=%t",
		s.pages, len(page.Commits), s.versions.Len(), s.cursor != "")

	return nil
}

// finish records the outcome of a load that did not produce a page. The
// loading state is always cleared.
func (s *Session) finish(generation uint64, state State, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return nil
	}

	s.state = state
	s.lastErr = err
	s.updatedAt = s.now()
	return err
}

func (s *Session) recordQuota(generation uint64, quota models.RateLimitSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	s.quota = &quota
	return true
}

// Snapshot returns a copy of the session state that callers may keep and
// read freely
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	versions := s.versions.Clone()
	if s.open != nil {
		versions.Add(s.open.Clone())
	}

	snapshot := Snapshot{
		Generation: s.generation,
		Repo:       s.repo,
		Pattern:    s.pattern.String(),
		State:      s.state,
		Loading:    s.state == StateLoading,
		Err:        s.lastErr,
		HasMore:    s.cursor != "",
		Pages:      s.pages,
		Versions:   versions.Groups(),
		UpdatedAt:  s.updatedAt,
	}
	if s.quota != nil {
		quota := *s.quota
		snapshot.Quota = &quota
	}
	return snapshot
}

// Snapshot is a read-only view of a Session
type Snapshot struct {
	Generation uint64
	Repo       string
	Pattern    string
	State      State
	Loading    bool
	Err        error
	Quota      *models.RateLimitSnapshot
	HasMore    bool
	Pages      int
	Versions   []*changelog.Group
	UpdatedAt  time.Time
}

// RateLimited reports whether the last load stopped on an exhausted quota
func (s Snapshot) RateLimited() bool {
	return errors.HasCode(s.Err, errors.ErrCodeRateLimited)
}

// VisibleVersions returns the versions a changelog should display
func (s Snapshot) VisibleVersions() []*changelog.Group {
	visible := make([]*changelog.Group, 0, len(s.Versions))
	for _, g := range s.Versions {
		if g.Visible() {
			visible = append(visible, g)
		}
	}
	return visible
}
