package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitcite/internal/server"
	"github.com/matzehuels/gitcite/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the citation HTTP API",
		Long: `Serve the citation pipeline as a JSON API.

Endpoints:
  GET  /api/v1/citation?repo=<reference>
  GET  /api/v1/suggest?q=<partial>
  POST /api/v1/events/copy
  GET  /health
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, citer, err := c.citer()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	tracker := c.newTracker(ctx, cfg)
	defer tracker.Close(context.WithoutCancel(ctx))

	srv := server.New(citer, server.Options{
		Addr:           addr,
		RequestTimeout: cfg.Server.RequestTimeout.Std(),
		Logger:         c.Logger.WithPrefix("server"),
		Tracker:        tracker,
	})

	observability.SetCitationHooks(srv.Recorder())
	observability.SetHTTPHooks(srv.Recorder())
	defer observability.Reset()

	printInfo("Serving citations on %s", addr)
	if strings.HasPrefix(addr, ":") {
		printLink("http://localhost" + addr + "/api/v1/citation?repo=spf13/cobra")
	}
	printDetail("Press Ctrl+C to stop")

	return srv.Run(ctx)
}
