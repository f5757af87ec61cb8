package sharecmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nahidhasan98/changelog-viewer/internal/config"
	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
	"github.com/nahidhasan98/changelog-viewer/internal/render"
	"github.com/nahidhasan98/changelog-viewer/internal/share"
	"github.com/nahidhasan98/changelog-viewer/internal/validation"
)

// Command prints a shareable changelog link
type Command struct {
	// Arguments
	Repo string

	// Flags
	Pattern string
	Preset  string
	BaseURL string
	QR      bool

	Out io.Writer
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "share [owner/repo]",
		Short: "Print a shareable link to a changelog",
		Long: `Print the link that opens the changelog viewer on a repository and
version pattern. The pair is carried in the URL fragment as
"owner/repo,<url encoded pattern>".

Example:
  changelog share korynunn/changelogit
  changelog share golang/go --preset braced --qr`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Repo = args[0]
			}
			if err := c.setup(); err != nil {
				return err
			}
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Pattern, "pattern", "p", "", "Delimited version pattern")
	cmd.Flags().StringVar(&c.Preset, "preset", "", "Version pattern preset: default or braced")
	cmd.Flags().StringVar(&c.BaseURL, "base-url", "", "Viewer page the fragment is appended to")
	cmd.Flags().BoolVar(&c.QR, "qr", false, "Also print the link as a QR code")
	cmd.MarkFlagsMutuallyExclusive("pattern", "preset")

	parent.AddCommand(cmd)
}

func (c *Command) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.Repo == "" {
		c.Repo = cfg.Changelog.DefaultRepo
	}
	if c.Pattern == "" && c.Preset == "" {
		c.Pattern = cfg.Changelog.DefaultPattern
	}
	if c.BaseURL == "" {
		c.BaseURL = cfg.Changelog.ShareBaseURL
	}
	return nil
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	if c.Out == nil {
		c.Out = os.Stdout
	}

	if !validation.New().IsValidRepo(c.Repo) {
		return fmt.Errorf("invalid repository %q: expected owner/name", c.Repo)
	}

	raw := c.Pattern
	if c.Preset != "" {
		var ok bool
		if raw, ok = pattern.Preset(c.Preset); !ok {
			return fmt.Errorf("unknown preset %q (want default or braced)", c.Preset)
		}
	}
	if raw == "" {
		raw = pattern.Default
	}
	if _, err := pattern.Compile(raw); err != nil {
		return err
	}

	link := share.Link(c.BaseURL, c.Repo, raw)
	fmt.Fprintln(c.Out, render.LinkStyle.Render(link))

	if c.QR {
		fmt.Fprintln(c.Out)
		share.WriteQR(c.Out, link)
	}

	return nil
}
