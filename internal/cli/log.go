// Package cli implements the gitcite command-line interface.
//
// This package provides commands for turning repository references into
// BibTeX citations, looking up repository suggestions, and serving the same
// pipeline over HTTP. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - cite: Print BibTeX for one or more repository references
//   - suggest: Search GitHub for repositories matching a partial name
//   - serve: Run the JSON HTTP API
//   - config: Inspect the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers deep in a command can log
// without extra parameters.
//
// # Example
//
//	import "github.com/matzehuels/gitcite/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level with "15:04:05.00"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress reports the outcome of a batch of lookups with the elapsed time.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	total  int
}

func newProgress(l *log.Logger, total int) *progress {
	return &progress{logger: l, start: time.Now(), total: total}
}

// done logs how many of the batch succeeded, e.g. "Cited 2 of 3 references (812ms)".
// A fully failed batch logs nothing; the failures were already printed.
func (p *progress) done(succeeded int) {
	if succeeded == 0 {
		return
	}
	elapsed := time.Since(p.start).Round(time.Millisecond)
	noun := "references"
	if p.total == 1 {
		noun = "reference"
	}
	if succeeded == p.total {
		p.logger.Infof("Cited %d %s (%s)", succeeded, noun, elapsed)
		return
	}
	p.logger.Warnf("Cited %d of %d %s (%s)", succeeded, p.total, noun, elapsed)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
