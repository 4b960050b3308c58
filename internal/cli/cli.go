// Package cli implements the gitcite command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitcite/internal/config"
	"github.com/matzehuels/gitcite/internal/server"
	"github.com/matzehuels/gitcite/pkg/analytics"
	"github.com/matzehuels/gitcite/pkg/buildinfo"
	"github.com/matzehuels/gitcite/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "gitcite"

	// analyticsSource tags error events raised from the command line.
	analyticsSource = "cli"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Citer resolves references to citations. *pipeline.Runner implements it.
type Citer = server.Citer

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// NewCiter builds the citer used by cite, suggest and serve.
	// Replaced in tests.
	NewCiter func(cfg *config.Config, logger *log.Logger) (Citer, error)

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		NewCiter: newRunner,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gitcite turns GitHub and GitLab repositories into BibTeX citations",
		Long: `gitcite looks up a GitHub or GitLab repository, finds its latest version
tag and prints a BibTeX @misc record you can paste into a bibliography.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gitcite/config.toml)")

	root.AddCommand(c.citeCommand())
	root.AddCommand(c.suggestCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// config loads the effective configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// citer loads the configuration and builds a citer from it.
func (c *CLI) citer() (*config.Config, Citer, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	citer, err := c.NewCiter(cfg, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, citer, nil
}

// newRunner creates a pipeline runner for CLI use.
func newRunner(cfg *config.Config, logger *log.Logger) (Citer, error) {
	ua := cfg.HTTP.UserAgent
	if ua == "" {
		ua = buildinfo.UserAgent()
	}
	r, err := pipeline.NewRunner(pipeline.Options{
		Timeout:      cfg.HTTP.Timeout.Std(),
		UserAgent:    ua,
		GitHubAPIURL: cfg.GitHub.APIURL,
	}, logger)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// newTracker opens the configured analytics sink. A sink that cannot be
// opened is logged and replaced by a nil tracker.
func (c *CLI) newTracker(ctx context.Context, cfg *config.Config) *analytics.Tracker {
	sink, err := analytics.Open(ctx, cfg.Analytics.Options(), c.Logger)
	if err != nil {
		c.Logger.Warn("analytics disabled", "sink", cfg.Analytics.Sink, "error", err)
		return nil
	}
	return analytics.NewTracker(sink, c.Logger)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Errors
// =============================================================================

// reportedError marks a failure that a command already printed.
type reportedError struct {
	failed int
	total  int
}

func (e *reportedError) Error() string {
	return fmt.Sprintf("%d of %d references failed", e.failed, e.total)
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
