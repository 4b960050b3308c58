// Package config loads gitcite settings for the CLI and the HTTP server.
//
// Settings come from three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file at $XDG_CONFIG_HOME/gitcite/config.toml
//     (or ~/.config/gitcite/config.toml)
//  3. GITCITE_* environment variables, after an optional .env file in the
//     working directory has been loaded
//
// Core packages never read configuration; they receive explicit values.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/gitcite/pkg/analytics"
	errs "github.com/matzehuels/gitcite/pkg/errors"
	"github.com/matzehuels/gitcite/pkg/integrations/github"
)

const (
	appName  = "gitcite"
	fileName = "config.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GITCITE_"

	DefaultHTTPTimeout    = 15 * time.Second
	DefaultServerAddr     = ":8080"
	DefaultRequestTimeout = 20 * time.Second
)

// Config holds every runtime option.
type Config struct {
	HTTP      HTTPConfig      `toml:"http"`
	GitHub    GitHubConfig    `toml:"github"`
	Server    ServerConfig    `toml:"server"`
	Analytics AnalyticsConfig `toml:"analytics"`
}

// HTTPConfig configures outgoing host API requests.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// GitHubConfig configures the GitHub client.
type GitHubConfig struct {
	APIURL string `toml:"api_url"`
}

// ServerConfig configures `gitcite serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// AnalyticsConfig selects the analytics sink.
type AnalyticsConfig struct {
	Sink            string `toml:"sink"`
	FilePath        string `toml:"file_path"`
	RedisAddr       string `toml:"redis_addr"`
	RedisStream     string `toml:"redis_stream"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Options converts the section into analytics options.
func (a AnalyticsConfig) Options() analytics.Config {
	return analytics.Config{
		Sink:            a.Sink,
		FilePath:        a.FilePath,
		RedisAddr:       a.RedisAddr,
		RedisStream:     a.RedisStream,
		MongoURI:        a.MongoURI,
		MongoDatabase:   a.MongoDatabase,
		MongoCollection: a.MongoCollection,
	}
}

// Duration is a time.Duration written as a Go duration string ("15s").
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout: Duration(DefaultHTTPTimeout),
		},
		GitHub: GitHubConfig{
			APIURL: github.DefaultBaseURL,
		},
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			RequestTimeout: Duration(DefaultRequestTimeout),
		},
		Analytics: AnalyticsConfig{
			Sink: analytics.SinkNone,
		},
	}
}

// Path returns the config file location using the XDG standard.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load builds the effective configuration. An empty path uses [Path]; a
// missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// A missing .env is fine; existing environment variables win over it.
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the TOML file at path onto c. Unknown keys are errors.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

type envBinding struct {
	name string
	set  func(c *Config, v string) error
}

func stringField(f func(c *Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*f(c) = v
		return nil
	}
}

func durationField(f func(c *Config) *Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		return f(c).UnmarshalText([]byte(v))
	}
}

var envBindings = []envBinding{
	{"HTTP_TIMEOUT", durationField(func(c *Config) *Duration { return &c.HTTP.Timeout })},
	{"HTTP_USER_AGENT", stringField(func(c *Config) *string { return &c.HTTP.UserAgent })},
	{"GITHUB_API_URL", stringField(func(c *Config) *string { return &c.GitHub.APIURL })},
	{"SERVER_ADDR", stringField(func(c *Config) *string { return &c.Server.Addr })},
	{"SERVER_REQUEST_TIMEOUT", durationField(func(c *Config) *Duration { return &c.Server.RequestTimeout })},
	{"ANALYTICS_SINK", stringField(func(c *Config) *string { return &c.Analytics.Sink })},
	{"ANALYTICS_FILE_PATH", stringField(func(c *Config) *string { return &c.Analytics.FilePath })},
	{"ANALYTICS_REDIS_ADDR", stringField(func(c *Config) *string { return &c.Analytics.RedisAddr })},
	{"ANALYTICS_REDIS_STREAM", stringField(func(c *Config) *string { return &c.Analytics.RedisStream })},
	{"ANALYTICS_MONGO_URI", stringField(func(c *Config) *string { return &c.Analytics.MongoURI })},
	{"ANALYTICS_MONGO_DATABASE", stringField(func(c *Config) *string { return &c.Analytics.MongoDatabase })},
	{"ANALYTICS_MONGO_COLLECTION", stringField(func(c *Config) *string { return &c.Analytics.MongoCollection })},
}

// EnvNames lists the recognised environment variables.
func EnvNames() []string {
	names := make([]string, len(envBindings))
	for i, b := range envBindings {
		names[i] = EnvPrefix + b.name
	}
	return names
}

// ApplyEnv overlays GITCITE_* variables found through lookup onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		if err := b.set(c, v); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid %s%s", EnvPrefix, b.name)
		}
	}
	return nil
}

var sinks = []string{
	analytics.SinkNone,
	analytics.SinkLog,
	analytics.SinkFile,
	analytics.SinkRedis,
	analytics.SinkMongo,
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.HTTP.Timeout < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "http.timeout must not be negative")
	}
	if c.Server.RequestTimeout < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server.request_timeout must not be negative")
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidInput, "server.addr is required")
	}
	if err := errs.ValidateURL(c.GitHub.APIURL); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "github.api_url")
	}
	if c.Analytics.Sink != "" && !slices.Contains(sinks, c.Analytics.Sink) {
		return errs.New(errs.ErrCodeInvalidInput, "analytics.sink must be one of %s", strings.Join(sinks, ", "))
	}
	return nil
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
