package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	pkgio "github.com/gregorypanta/mental-models-app/pkg/io"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that catalog caching behaves the same.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Loader overrides the loader chosen from Options.Source.
	Loader catalog.Loader
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	snap, hit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Snapshot = snap
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SectionCount = len(snap.Sections)
	result.Stats.ModelCount = len(snap.Models)
	result.CacheInfo.LoadHit = hit

	r.Logger.Info("loaded catalog",
		"source", opts.SourceName(),
		"sections", len(snap.Sections),
		"models", len(snap.Models),
		"cached", hit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	g := r.Layout(ctx, snap, opts)
	result.Graph = g
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)

	r.Logger.Info("computed layout",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the catalog and reports whether it came from the
// snapshot cache. Only MongoDB snapshots are cached here: the content API
// client caches its own responses and snapshot files are already local.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*catalog.Snapshot, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	source := opts.SourceName()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	snap, hit, err := r.load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLoadComplete(ctx, source, len(snap.Sections), len(snap.Models), time.Since(start), nil)
	return snap, hit, nil
}

func (r *Runner) load(ctx context.Context, opts Options) (*catalog.Snapshot, bool, error) {
	useCache := opts.Source == SourceMongo && r.Loader == nil
	cacheKey := r.Keyer.CatalogKey(opts.SourceName(), opts.CatalogKeyOpts())

	if useCache && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			f, err := pkgio.ReadSnapshot(bytes.NewReader(data))
			if err == nil {
				return &f.Snapshot, true, nil
			}
			opts.Logger.Debug("discarding cached snapshot", "key", cacheKey, "err", err)
		}
	}

	loader := r.Loader
	if loader == nil {
		var err error
		if loader, err = NewLoader(opts, r.Cache); err != nil {
			return nil, false, err
		}
	}
	snap, err := loader.Load(ctx, opts.LoadOptions())
	if err != nil {
		return nil, false, err
	}

	if useCache {
		var buf bytes.Buffer
		if err := pkgio.WriteSnapshot(&buf, snap, opts.Source); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLCatalog); err != nil {
				opts.Logger.Warn("cache snapshot", "err", err)
			}
		}
	}
	return snap, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*catalog.Snapshot, error) {
	snap, _, err := r.LoadWithCacheInfo(ctx, opts)
	return snap, err
}

// Layout computes the mind map of snap. It never fails: invalid references
// in the snapshot are skipped by the layout engine.
func (r *Runner) Layout(ctx context.Context, snap *catalog.Snapshot, opts Options) mindmap.Graph {
	sections, models := snap.Refs()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(sections), len(models))
	start := time.Now()

	g := opts.LayoutOptions().Build(sections, models)

	hooks.OnLayoutComplete(ctx, len(g.Nodes), len(g.Edges), time.Since(start))
	return g
}

// Render generates the requested artifacts for g.
func (r *Runner) Render(ctx context.Context, g mindmap.Graph, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
