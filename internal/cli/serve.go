package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/internal/api"
	"github.com/gregorypanta/mental-models-app/pkg/catalog/mongo"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		origins []string
		src     sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mind map over HTTP",
		Long: `Serve the mind map over HTTP.

Routes:
  GET /health                  liveness probe
  GET /api/mindmap             graph JSON
  GET /api/mindmap.svg         radial SVG with navigation links
  GET /api/mindmap.dot         Graphviz DOT
  GET /api/navigate/{nodeID}   navigation intent for a node

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("cors-origin") {
				origins = cfg.Server.CORSOrigins
			}
			opts := c.pipelineOptions()
			src.apply(cmd, &opts)
			return c.runServe(cmd.Context(), api.Config{Addr: addr, CORSOrigins: origins}, opts, src.noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	src.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg api.Config, opts pipeline.Options, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	// A server keeps one MongoDB client for its lifetime.
	if opts.Source == pipeline.SourceMongo {
		store, err := mongo.Connect(ctx, opts.MongoURI, opts.MongoDatabase)
		if err != nil {
			return err
		}
		defer store.Close(context.WithoutCancel(ctx))
		runner.Loader = store
	}

	srv, err := api.New(cfg, runner, opts, c.Logger)
	if err != nil {
		return err
	}

	printInfo("Serving %s on %s", styleHighlight.Render(opts.SourceName()), cfg.Addr)
	err = srv.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
