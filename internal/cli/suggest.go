package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitcite/pkg/analytics"
	errs "github.com/matzehuels/gitcite/pkg/errors"
	"github.com/matzehuels/gitcite/pkg/integrations/github"
)

// suggestCommand creates the suggest command.
func (c *CLI) suggestCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "suggest <partial>",
		Short: "Search GitHub for matching repositories",
		Long: fmt.Sprintf(`Search GitHub for repositories matching a partial name and print up to %d
owner/repo suggestions. Input shorter than %d characters returns nothing.

With --interactive, pick a suggestion from a list and print its citation.`,
			github.MaxSuggestions, github.MinSuggestLength),
		Example: `  gitcite suggest cobra
  gitcite suggest bubbletea -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSuggest(cmd.Context(), cmd.OutOrStdout(), args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a suggestion and cite it")

	return cmd
}

func (c *CLI) runSuggest(ctx context.Context, out io.Writer, partial string, interactive bool) error {
	if err := errs.ValidateQuery(partial); err != nil {
		return err
	}
	partial = strings.TrimSpace(partial)

	cfg, citer, err := c.citer()
	if err != nil {
		return err
	}
	tracker := c.newTracker(ctx, cfg)
	defer tracker.Close(context.WithoutCancel(ctx))

	if utf8.RuneCountInString(partial) < github.MinSuggestLength {
		printInfo("Type at least %d characters to get suggestions", github.MinSuggestLength)
		return nil
	}

	tracker.Track(ctx, analytics.Search(partial))
	suggestions := citer.Suggest(ctx, partial)
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(suggestions) == 0 {
		printInfo("No repositories match %q", partial)
		return nil
	}

	if !interactive {
		for _, s := range suggestions {
			fmt.Fprintln(out, s)
		}
		printNextStep("Cite one", "gitcite cite "+suggestions[0])
		return nil
	}

	selected, err := pickSuggestion(partial, suggestions)
	if err != nil || selected == "" {
		return err
	}
	return c.runCite(ctx, out, []string{selected}, citeOptions{jobs: 1, timeout: defaultCiteTimeout})
}

// pickSuggestion shows the interactive list and returns the chosen entry,
// or "" if the user quit.
func pickSuggestion(query string, suggestions []string) (string, error) {
	model := NewSuggestionListModel(query, suggestions)
	p := tea.NewProgram(model, tea.WithOutput(statusOut))

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	return final.(SuggestionListModel).Selected, nil
}
