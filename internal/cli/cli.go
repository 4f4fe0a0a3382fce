// Package cli implements the mindmap command-line interface.
//
// The commands load the mental-models catalog, lay it out as a radial mind
// map and write the result as graph JSON, SVG, DOT, PNG or PDF. The same
// pipeline backs `mindmap serve`, which exposes the map over HTTP.
//
// # Commands
//
//   - layout: load the catalog and write the mind-map graph as JSON
//   - render: draw a graph file (or a freshly loaded catalog)
//   - export: save a catalog snapshot for offline use
//   - seed: load a snapshot file into MongoDB
//   - serve: run the HTTP API
//   - explore: browse the mind map in the terminal
//   - cache, config: inspect and manage local state
//
// # Configuration
//
// Settings come from the config file (see package config), MINDMAP_*
// environment variables and flags, in increasing priority. --verbose logs
// every pipeline stage at debug level.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/pkg/buildinfo"
	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/config"
	"github.com/gregorypanta/mental-models-app/pkg/observability"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Mindmap lays out the mental-models catalog as a radial mind map",
		Long: `Mindmap turns the mental-models catalog into a radial mind map: the catalog
sits at the center, its sections on a ring around it and a few models fanned
out behind each section. Every node links to its section or model page.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Register()
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mindmap/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once per invocation.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "source", cfg.Source, "renderer", cfg.Renderer)
	return nil
}

// settings returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (as in tests).
func (c *CLI) settings() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// pipelineOptions seeds options from the configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := c.settings().PipelineOptions()
	opts.Logger = c.Logger
	return opts
}

// newRunner creates a pipeline runner backed by the configured cache. An
// unreachable cache backend degrades to no caching.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	opts := c.settings().CacheOptions()
	if noCache {
		opts.Disabled = true
	}
	cc, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "err", err)
		cc = cache.NewNullCache()
	}
	return pipeline.NewRunner(cc, nil, c.Logger)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}
