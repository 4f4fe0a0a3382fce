package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/gregorypanta/mental-models-app/pkg/io"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

const defaultSnapshotFile = "catalog.json"

// exportCommand creates the export command for saving catalog snapshots.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		src    sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save a catalog snapshot to a JSON file",
		Long: `Save a catalog snapshot to a JSON file.

The snapshot holds every loaded section and model. Use it offline with
--snapshot, or load it into MongoDB with 'seed'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			src.apply(cmd, &opts)
			return c.runExport(cmd.Context(), opts, output, src.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultSnapshotFile, "output file")
	src.register(cmd)

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	snap, _, err := c.load(ctx, runner, opts)
	if err != nil {
		return err
	}
	if err := pkgio.ExportSnapshot(snap, opts.SourceName(), output); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	printSuccess("Exported %d sections and %d models", len(snap.Sections), len(snap.Models))
	printFile(output)
	printNewline()
	printNextStep("Lay out offline", "mindmap layout --snapshot "+output)
	return nil
}
