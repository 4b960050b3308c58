package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gitcite/internal/clipboard"
	"github.com/matzehuels/gitcite/pkg/analytics"
	"github.com/matzehuels/gitcite/pkg/citation"
	errs "github.com/matzehuels/gitcite/pkg/errors"
	"github.com/matzehuels/gitcite/pkg/pipeline"
)

const (
	defaultJobs        = 4
	defaultCiteTimeout = 30 * time.Second
)

// citeOptions holds flags for the cite command.
type citeOptions struct {
	json    bool
	copy    bool
	jobs    int
	timeout time.Duration
}

// citeOutcome is one entry of the --json output.
type citeOutcome struct {
	Input    string             `json:"input"`
	Citation *citation.Citation `json:"citation,omitempty"`
	Error    *outcomeError      `json:"error,omitempty"`

	result *pipeline.Result
	err    error
}

type outcomeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// citeCommand creates the cite command.
func (c *CLI) citeCommand() *cobra.Command {
	opts := citeOptions{jobs: defaultJobs, timeout: defaultCiteTimeout}

	cmd := &cobra.Command{
		Use:   "cite <repository>...",
		Short: "Print BibTeX citations for repositories",
		Long: `Print a BibTeX @misc record for each repository reference.

A reference may be a GitHub or GitLab URL, a self-hosted GitLab URL
(gitlab.<name>.<tld>/owner/repo) or owner/repo shorthand for GitHub.
Several references are resolved concurrently and printed in input order.`,
		Example: `  gitcite cite spf13/cobra
  gitcite cite https://gitlab.com/gitlab-org/cli --copy
  gitcite cite charmbracelet/log charmbracelet/lipgloss --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCite(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print citations as JSON")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "copy the BibTeX to the clipboard")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", defaultJobs, "references resolved concurrently")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultCiteTimeout, "time limit per reference (0 for none)")

	return cmd
}

func (c *CLI) runCite(ctx context.Context, out io.Writer, refs []string, opts citeOptions) error {
	if opts.jobs < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "--jobs must be at least 1")
	}
	for _, ref := range refs {
		if err := errs.ValidateQuery(ref); err != nil {
			return err
		}
	}

	cfg, citer, err := c.citer()
	if err != nil {
		return err
	}
	tracker := c.newTracker(ctx, cfg)
	defer tracker.Close(context.WithoutCancel(ctx))

	logger := loggerFromContext(ctx)
	prog := newProgress(logger, len(refs))

	var spinner *Spinner
	if !opts.json && isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, citeMessage(refs))
		spinner.Start()
	}

	outcomes := resolve(ctx, citer, refs, opts)

	if spinner != nil {
		spinner.Stop()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		trackOutcome(ctx, tracker, o)
		if o.err != nil {
			failed++
		}
	}

	if opts.json {
		if err := writeJSON(out, outcomes); err != nil {
			return err
		}
	} else {
		writeBibTeX(out, outcomes)
	}

	succeeded := len(outcomes) - failed
	prog.done(succeeded)
	if opts.copy && succeeded > 0 {
		c.copyCitations(ctx, tracker, outcomes)
	}

	if failed > 0 {
		return &reportedError{failed: failed, total: len(outcomes)}
	}
	return nil
}

// resolve cites every reference with at most opts.jobs in flight. The
// result slice is in input order.
func resolve(ctx context.Context, citer Citer, refs []string, opts citeOptions) []citeOutcome {
	outcomes := make([]citeOutcome, len(refs))

	var g errgroup.Group
	g.SetLimit(opts.jobs)
	for i, ref := range refs {
		g.Go(func() error {
			refCtx := ctx
			if opts.timeout > 0 {
				var cancel context.CancelFunc
				refCtx, cancel = context.WithTimeout(ctx, opts.timeout)
				defer cancel()
			}

			o := citeOutcome{Input: ref}
			o.result, o.err = citer.Cite(refCtx, ref)
			if o.err != nil {
				o.Error = &outcomeError{Code: string(errs.GetCode(o.err)), Message: errs.UserMessage(o.err)}
			} else {
				o.Citation = &o.result.Citation
			}
			outcomes[i] = o
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func citeMessage(refs []string) string {
	if len(refs) == 1 {
		return "Fetching " + refs[0] + "..."
	}
	return fmt.Sprintf("Fetching %d repositories...", len(refs))
}

func writeJSON(w io.Writer, outcomes []citeOutcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outcomes)
}

// writeBibTeX prints successful records to w separated by blank lines and
// reports failures on the status output.
func writeBibTeX(w io.Writer, outcomes []citeOutcome) {
	first := true
	for _, o := range outcomes {
		if o.err != nil {
			printError("%s: %s", o.Input, o.Error.Message)
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintln(w, o.result.Citation.BibTeX)
	}
}

func (c *CLI) copyCitations(ctx context.Context, tracker *analytics.Tracker, outcomes []citeOutcome) {
	var records []string
	for _, o := range outcomes {
		if o.err == nil {
			records = append(records, o.result.Citation.BibTeX)
		}
	}

	var term io.Writer
	if isTerminal(os.Stderr) {
		term = os.Stderr
	}
	method, err := clipboard.CopyAny(term, strings.Join(records, "\n\n"))
	if err != nil {
		printWarning("Could not copy to clipboard: %v", err)
		return
	}
	loggerFromContext(ctx).Debug("copied citations", "method", method, "count", len(records))

	for _, o := range outcomes {
		if o.err == nil {
			tracker.Track(ctx, analytics.CopyCitation(o.result.Reference.String()))
		}
	}
	if len(records) == 1 {
		printSuccess("Copied citation to clipboard")
	} else {
		printSuccess("Copied %d citations to clipboard", len(records))
	}
}

// trackOutcome records the search and generate events for one lookup.
func trackOutcome(ctx context.Context, tracker *analytics.Tracker, o citeOutcome) {
	tracker.Track(ctx, analytics.Search(o.Input))
	if o.err != nil {
		tracker.Track(ctx, analytics.GenerateCitation(o.Input, false))
		tracker.Track(ctx, analytics.Error(errs.UserMessage(o.err), analyticsSource))
		return
	}
	tracker.Track(ctx, analytics.GenerateCitation(o.result.Facts.URL, true))
}
