package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/graph"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

const defaultGraphFile = "mindmap.json"

// layoutCommand creates the layout command for computing the mind-map graph.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		src    sourceFlags
		lay    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the mind-map graph and write it as JSON",
		Long: `Compute the mind-map graph and write it as JSON.

The layout command loads the catalog from the configured source, places the
sections on a ring around the center and fans out up to --max-models models
behind each section. The output graph.json can be rendered with 'render'.

MongoDB catalogs are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			src.apply(cmd, &opts)
			lay.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), opts, output, src.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultGraphFile, "output file")
	src.register(cmd)
	lay.register(cmd)

	return cmd
}

// runLayout loads the catalog, computes the graph and writes it to output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	g, cacheHit, err := c.loadAndLayout(ctx, runner, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := graph.WriteGraphFile(g, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(g, cacheStatus(cacheHit))
	printNewline()
	printNextStep("Render", "mindmap render "+output)

	return nil
}

// loadAndLayout runs the load and layout stages behind a spinner.
func (c *CLI) loadAndLayout(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (mindmap.Graph, bool, error) {
	snap, cacheHit, err := c.load(ctx, runner, opts)
	if err != nil {
		return mindmap.Graph{}, false, err
	}

	prog := newProgress(c.Logger)
	g := runner.Layout(ctx, snap, opts)
	prog.done(fmt.Sprintf("Laid out %d nodes", len(g.Nodes)))
	return g, cacheHit, nil
}

// load fetches the catalog behind a spinner.
func (c *CLI) load(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*catalog.Snapshot, bool, error) {
	spinner := newSpinnerWithContext(ctx, "Loading catalog...")
	spinner.Start()

	prog := newProgress(c.Logger)
	snap, cacheHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Loading catalog failed")
		return nil, false, fmt.Errorf("load catalog: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}
	prog.done(fmt.Sprintf("Loaded %d sections, %d models", len(snap.Sections), len(snap.Models)))
	return snap, cacheHit, nil
}
