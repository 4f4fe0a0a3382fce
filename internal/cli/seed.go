package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/pkg/catalog/mongo"
	"github.com/gregorypanta/mental-models-app/pkg/errors"
	pkgio "github.com/gregorypanta/mental-models-app/pkg/io"
)

// seedCommand creates the seed command for populating MongoDB.
func (c *CLI) seedCommand() *cobra.Command {
	var uri, database string

	cmd := &cobra.Command{
		Use:   "seed <catalog.json>",
		Short: "Replace the MongoDB catalog with a snapshot file",
		Long: `Replace the MongoDB catalog with a snapshot file.

Both the sections and the models collections are emptied and refilled from
the snapshot written by 'export'. The connection defaults to the [mongo]
section of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			if !cmd.Flags().Changed("mongo-uri") {
				uri = cfg.Mongo.URI
			}
			if !cmd.Flags().Changed("mongo-db") {
				database = cfg.Mongo.Database
			}
			return c.runSeed(cmd.Context(), args[0], uri, database)
		},
	}

	cmd.Flags().StringVar(&uri, "mongo-uri", "", "MongoDB connection string")
	cmd.Flags().StringVar(&database, "mongo-db", "", "MongoDB database name")

	return cmd
}

func (c *CLI) runSeed(ctx context.Context, path, uri, database string) error {
	if err := errors.ValidateMongoURI(uri); err != nil {
		return err
	}
	f, err := pkgio.ImportSnapshot(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	c.Logger.Debug("snapshot read", "path", path, "source", f.Source, "exported", f.ExportedAt)

	spinner := newSpinnerWithContext(ctx, "Seeding "+database+"...")
	spinner.Start()

	store, err := mongo.Connect(ctx, uri, database)
	if err != nil {
		spinner.StopWithError("Connecting to MongoDB failed")
		return err
	}
	defer store.Close(context.WithoutCancel(ctx))

	if err := store.Seed(ctx, &f.Snapshot); err != nil {
		spinner.StopWithError("Seeding failed")
		return err
	}
	spinner.Stop()

	printSuccess("Seeded %d sections and %d models", len(f.Sections), len(f.Models))
	printDetail("Database: %s", database)
	return nil
}
