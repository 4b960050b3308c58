package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitcite/internal/config"
)

func TestConfigPathFlag(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	path := filepath.Join(t.TempDir(), "custom.toml")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "path", "--config", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
}

func TestConfigPathDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config path: %v", err)
	}
	want := filepath.Join(dir, "gitcite", "config.toml")
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestConfigShowAppliesEnv(t *testing.T) {
	out, err := runCLIWithEnv(t, &fakeCiter{}, map[string]string{
		"GITCITE_SERVER_ADDR": "127.0.0.1:9999",
	}, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `addr = "127.0.0.1:9999"`) {
		t.Errorf("output missing env override:\n%s", out)
	}
	if !strings.Contains(out, "[analytics]") {
		t.Errorf("output missing analytics table:\n%s", out)
	}
}

func TestConfigShowInvalidEnv(t *testing.T) {
	_, err := runCLIWithEnv(t, &fakeCiter{}, map[string]string{
		"GITCITE_HTTP_TIMEOUT": "soon",
	}, "config", "show")
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestPrintEnv(t *testing.T) {
	var buf bytes.Buffer
	printEnv(&buf, func(name string) (string, bool) {
		if name == "GITCITE_SERVER_ADDR" {
			return ":9000", true
		}
		return "", false
	})

	names := config.EnvNames()
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(names) {
		t.Fatalf("got %d lines, want one per variable (%d):\n%s", len(lines), len(names), buf.String())
	}

	valueCol := -1
	for i, name := range names {
		fields := strings.Fields(lines[i])
		if len(fields) != 2 || fields[0] != name {
			t.Errorf("line %d = %q, want %s followed by its value", i, lines[i], name)
			continue
		}
		col := strings.LastIndex(lines[i], fields[1])
		if valueCol == -1 {
			valueCol = col
		} else if col != valueCol {
			t.Errorf("line %d value at column %d, want %d", i, col, valueCol)
		}
		want := "(unset)"
		if name == "GITCITE_SERVER_ADDR" {
			want = ":9000"
		}
		if fields[1] != want {
			t.Errorf("%s = %q, want %q", name, fields[1], want)
		}
	}
}

func TestCiterUsesLoadedConfig(t *testing.T) {
	var seen *config.Config
	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	c.NewCiter = func(cfg *config.Config, _ *log.Logger) (Citer, error) {
		seen = cfg
		return &fakeCiter{}, nil
	}

	cfg, _, err := c.citer()
	if err != nil {
		t.Fatalf("citer: %v", err)
	}
	if seen != cfg {
		t.Error("NewCiter did not receive the loaded config")
	}
	again, err := c.config()
	if err != nil || again != cfg {
		t.Error("config not cached")
	}
}
