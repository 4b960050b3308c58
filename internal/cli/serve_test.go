package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitcite/internal/config"
	"github.com/matzehuels/gitcite/pkg/observability"
)

func TestServeStopsOnCancel(t *testing.T) {
	captureStatus(t)
	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	c.NewCiter = func(*config.Config, *log.Logger) (Citer, error) { return &fakeCiter{}, nil }

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.runServe(ctx, "127.0.0.1:0") }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	if _, ok := observability.Citation().(observability.NoopCitationHooks); !ok {
		t.Errorf("citation hooks not reset: %T", observability.Citation())
	}
}
