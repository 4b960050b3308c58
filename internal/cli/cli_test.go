package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitcite/internal/config"
	"github.com/matzehuels/gitcite/pkg/citation"
	errs "github.com/matzehuels/gitcite/pkg/errors"
	"github.com/matzehuels/gitcite/pkg/pipeline"
	"github.com/matzehuels/gitcite/pkg/repo"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// fakeCiter answers from a fixed table of repositories.
type fakeCiter struct {
	mu          sync.Mutex
	cited       []string
	suggested   []string
	suggestions []string
	delay       map[string]time.Duration
}

func (f *fakeCiter) Cite(ctx context.Context, input string) (*pipeline.Result, error) {
	f.mu.Lock()
	f.cited = append(f.cited, input)
	f.mu.Unlock()

	if d := f.delay[input]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, errs.Wrap(errs.ErrCodeFetch, ctx.Err(), "failed to fetch GitHub repository information")
		}
	}

	ref, err := repo.Parse(input)
	if err != nil {
		return nil, err
	}
	if ref.Repo == "missing" {
		return nil, errs.New(errs.ErrCodeFetch, "failed to fetch GitHub repository information")
	}

	facts := &repo.Facts{
		Name:  ref.Repo,
		URL:   "https://" + ref.Domain() + "/" + ref.Owner + "/" + ref.Repo,
		Host:  ref.Host,
		Owner: ref.Owner,
		LatestTag: &repo.Tag{
			Name: "v1.0.0",
			Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	return &pipeline.Result{
		Input:     input,
		Reference: ref,
		Facts:     facts,
		Citation:  citation.Format(*facts, testNow),
	}, nil
}

func (f *fakeCiter) Suggest(_ context.Context, partial string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggested = append(f.suggested, partial)
	return f.suggestions
}

// captureStatus redirects status output for the duration of the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = old })
	return &buf
}

// runCLI executes the root command with args against fake and returns stdout.
func runCLI(t *testing.T, fake *fakeCiter, args ...string) (string, error) {
	t.Helper()
	return runCLIWithEnv(t, fake, nil, args...)
}

// runCLIWithEnv is runCLI with GITCITE_* variables from env set and all
// others cleared.
func runCLIWithEnv(t *testing.T, fake *fakeCiter, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for _, name := range config.EnvNames() {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.NewCiter = func(*config.Config, *log.Logger) (Citer, error) { return fake, nil }

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.toml")))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	for _, name := range []string{"cite", "suggest", "serve", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestIsReported(t *testing.T) {
	err := &reportedError{failed: 1, total: 3}
	if !IsReported(err) {
		t.Error("IsReported(reportedError) = false")
	}
	if got := err.Error(); got != "1 of 3 references failed" {
		t.Errorf("Error() = %q", got)
	}
	if IsReported(errs.New(errs.ErrCodeInternal, "x")) {
		t.Error("IsReported(other) = true")
	}
	if IsReported(nil) {
		t.Error("IsReported(nil) = true")
	}
}

func TestNewRunnerFromConfig(t *testing.T) {
	cfg := config.Default()
	citer, err := newRunner(cfg, log.Default())
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	if _, ok := citer.(*pipeline.Runner); !ok {
		t.Errorf("newRunner returned %T, want *pipeline.Runner", citer)
	}

	cfg.GitHub.APIURL = "ftp://example.com"
	if _, err := newRunner(cfg, log.Default()); err == nil {
		t.Error("expected error for invalid GitHub API URL")
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, &fakeCiter{}, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "gitcite") {
		t.Error("bash completion does not mention gitcite")
	}

	if _, err := runCLI(t, &fakeCiter{}, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
