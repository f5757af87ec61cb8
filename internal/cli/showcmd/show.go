package showcmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/nahidhasan98/changelog-viewer/internal/config"
	"github.com/nahidhasan98/changelog-viewer/internal/github"
	"github.com/nahidhasan98/changelog-viewer/internal/logger"
	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
	"github.com/nahidhasan98/changelog-viewer/internal/render"
	"github.com/nahidhasan98/changelog-viewer/internal/session"
	"github.com/nahidhasan98/changelog-viewer/internal/validation"
)

// Command prints the changelog of a repository
type Command struct {
	// Arguments
	Repo string

	// Flags
	Pattern    string
	Preset     string
	Pages      int
	All        bool
	Collapsed  bool
	AllCommits bool
	Verbose    bool

	// Clients (can be replaced in tests)
	Client *github.Client
	Log    *logger.Logger
	Out    io.Writer
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show [owner/repo]",
		Short: "Print the changelog of a repository",
		Long: `Fetch commit pages of a repository and print them grouped by version.

Commits newer than the first release commit are listed as Unreleased. Merge
commits and README updates are left out unless --all-commits is given.

Example:
  changelog show korynunn/changelogit
  changelog show golang/go --preset braced --pages 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Repo = args[0]
			}
			c.Verbose, _ = cmd.Flags().GetBool("verbose")
			if err := c.setup(); err != nil {
				return err
			}
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Pattern, "pattern", "p", "", "Delimited version pattern, e.g. '/v\\d+\\.\\d+\\.\\d+/'")
	cmd.Flags().StringVar(&c.Preset, "preset", "", "Version pattern preset: default (1.2.3) or braced (v1.2.3)")
	cmd.Flags().IntVarP(&c.Pages, "pages", "n", 1, "Number of commit pages to load")
	cmd.Flags().BoolVarP(&c.All, "all", "a", false, "Load the whole history")
	cmd.Flags().BoolVar(&c.Collapsed, "collapsed", false, "Print version headings only")
	cmd.Flags().BoolVar(&c.AllCommits, "all-commits", false, "Include merge commits and README updates")
	cmd.MarkFlagsMutuallyExclusive("pattern", "preset")

	parent.AddCommand(cmd)
}

// setup loads configuration and builds the GitHub client unless one was
// injected
func (c *Command) setup() error {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Client != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := "warn"
	if c.Verbose {
		level = "debug"
	}
	c.Log = logger.NewWithWriter(os.Stderr, level, "text")

	if c.Repo == "" {
		c.Repo = cfg.Changelog.DefaultRepo
	}
	if c.Pattern == "" && c.Preset == "" {
		c.Pattern = cfg.Changelog.DefaultPattern
	}

	c.Client, err = github.NewClient(github.Config{
		BaseURL:    cfg.GitHub.APIURL,
		UserAgent:  cfg.GitHub.UserAgent,
		HTTPClient: &http.Client{Timeout: cfg.GitHub.Timeout},
		Logger:     c.Log,
	})
	return err
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	if c.Out == nil {
		c.Out = os.Stdout
	}

	if !validation.New().IsValidRepo(c.Repo) {
		return fmt.Errorf("invalid repository %q: expected owner/name", c.Repo)
	}

	raw, err := c.resolvePattern()
	if err != nil {
		return err
	}

	s := session.New(c.Client, c.Client, c.Log)
	if err := s.SetPattern(raw); err != nil {
		return err
	}
	s.SelectRepo(c.Repo)

	for loaded := 0; c.All || loaded < c.Pages; loaded++ {
		if err := s.LoadNextPage(ctx); err != nil {
			break
		}
		if !s.Snapshot().HasMore {
			break
		}
	}

	snapshot := s.Snapshot()
	render.Header(c.Out, snapshot.Repo, snapshot.Pattern)
	render.Versions(c.Out, snapshot.Versions, render.Options{
		Collapsed:  c.Collapsed,
		AllCommits: c.AllCommits,
	})
	render.Notices(c.Out, snapshot)

	// an exhausted quota is a wait; the notice above tells when it resets
	if snapshot.Err != nil && !snapshot.RateLimited() {
		return fmt.Errorf("stopped after %d page(s)", snapshot.Pages)
	}

	if snapshot.HasMore {
		fmt.Fprintln(c.Out, render.MutedStyle.Render(fmt.Sprintf(
			"More history available: --pages %d or --all", snapshot.Pages+1)))
	}

	return nil
}

func (c *Command) resolvePattern() (string, error) {
	if c.Preset != "" {
		raw, ok := pattern.Preset(c.Preset)
		if !ok {
			return "", fmt.Errorf("unknown preset %q (want default or braced)", c.Preset)
		}
		return raw, nil
	}
	if c.Pattern == "" {
		return pattern.Default, nil
	}
	return c.Pattern, nil
}
