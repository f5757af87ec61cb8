// Package cli is the command tree of the changelog binary
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nahidhasan98/changelog-viewer/internal/cli/sharecmd"
	"github.com/nahidhasan98/changelog-viewer/internal/cli/showcmd"
	"github.com/nahidhasan98/changelog-viewer/internal/render"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Changelogs from GitHub commit history",
	Long: `Changelog groups a GitHub repository's commits into versions by spotting
release commits (such as "1.2.3" or "Release v1.2.3") in the history.

Commits are fetched page by page from the public GitHub API without
authentication, so the hourly rate limit applies.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log GitHub requests to stderr")

	// Register all commands
	commands := []Command{
		&showcmd.Command{},
		&sharecmd.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
