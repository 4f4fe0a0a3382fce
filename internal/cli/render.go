package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/pkg/graph"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

// renderCommand creates the render command for drawing the mind map.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		src    sourceFlags
		lay    layoutFlags
		rf     renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render the mind map to SVG, DOT, PNG or PDF",
		Long: `Render the mind map to SVG, DOT, PNG or PDF.

With a graph.json argument (from 'layout') the stored graph is drawn as is.
Without one the catalog is loaded and laid out first, using the same flags as
'layout'.

The radial renderer draws SVG directly; --renderer graphviz draws it with
Graphviz instead, keeping every node at its computed position. PNG and PDF
are converted from the SVG and need rsvg-convert on the PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			src.apply(cmd, &opts)
			lay.apply(cmd, &opts)
			rf.apply(cmd, &opts)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts, output, src.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	src.register(cmd)
	lay.register(cmd)
	rf.register(cmd)

	return cmd
}

// runRender obtains the graph, renders every requested format and writes
// one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	var (
		g      mindmap.Graph
		status string
		err    error
	)
	if input != "" {
		if g, err = graph.ReadGraphFile(input); err != nil {
			return fmt.Errorf("load graph %s: %w", input, err)
		}
		c.Logger.Debug("graph loaded", "path", input, "nodes", len(g.Nodes))
	} else {
		if err := opts.ValidateForLayout(); err != nil {
			return err
		}
		var cacheHit bool
		if g, cacheHit, err = c.loadAndLayout(ctx, runner, opts); err != nil {
			return err
		}
		status = cacheStatus(cacheHit)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	prog := newProgress(c.Logger)
	artifacts, err := runner.Render(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(artifacts)))

	paths := outputPaths(output, input, opts.Formats)
	for _, path := range paths {
		if input != "" && filepath.Clean(path) == filepath.Clean(input) {
			return fmt.Errorf("refusing to overwrite input %s, pass --output", input)
		}
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := paths[format]
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(g, status)

	return nil
}

// outputPaths maps each format to its file. A single format goes to output
// when given; otherwise files share a base path derived from output or the
// input graph and differ by extension.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, falling back to
// the input file name and then to "mindmap".
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "mindmap"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
