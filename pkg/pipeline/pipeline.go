// Package pipeline runs the load → layout → render pipeline for the mind map.
//
// The CLI and the HTTP API both go through this package so that a given set
// of options produces the same graph and the same artifacts everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Fetch the catalog from the content API, MongoDB, or a snapshot file
//  2. Layout: Compute the radial graph with [mindmap.Options.Build]
//  3. Render: Generate output in the requested formats (JSON, SVG, DOT, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layouts are recomputed on every run; only catalog data is cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  pipeline.SourceHTTP,
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	snap, err := runner.Load(ctx, opts)
//	g := runner.Layout(ctx, snap, opts)
//	artifacts, err := runner.Render(ctx, g, opts)
//
// [mindmap.Options.Build]: github.com/gregorypanta/mental-models-app/pkg/mindmap.Options.Build
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/integrations/contentapi"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Catalog sources.
const (
	SourceHTTP  = "http"
	SourceMongo = "mongo"
	SourceFile  = "file"
)

// Renderers.
const (
	RendererRadial   = "radial"
	RendererGraphviz = "graphviz"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

const (
	// DefaultSource is where catalogs come from unless configured otherwise.
	DefaultSource = SourceHTTP

	// DefaultRenderer draws SVG natively.
	DefaultRenderer = RendererRadial

	// DefaultMongoDatabase matches the backend's database name.
	DefaultMongoDatabase = "mental_models"

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// ValidSources is the set of supported catalog sources.
var ValidSources = map[string]bool{
	SourceHTTP:  true,
	SourceMongo: true,
	SourceFile:  true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidRenderers is the set of supported SVG renderers.
var ValidRenderers = map[string]bool{
	RendererRadial:   true,
	RendererGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source        string `json:"source,omitempty"`
	APIURL        string `json:"api_url,omitempty"`
	MongoURI      string `json:"-"`
	MongoDatabase string `json:"mongo_database,omitempty"`
	SnapshotPath  string `json:"snapshot_path,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Section       string `json:"section,omitempty"`
	Search        string `json:"search,omitempty"`
	Refresh       bool   `json:"refresh,omitempty"`

	// CacheTTL is how long content API responses are cached.
	CacheTTL time.Duration `json:"-"`

	// Layout options
	RootLabel           string         `json:"root_label,omitempty"`
	MaxModelsPerSection int            `json:"max_models_per_section,omitempty"`
	Geometry            mindmap.Config `json:"geometry,omitzero"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Renderer    string   `json:"renderer,omitempty"`
	NavBaseURL  string   `json:"nav_base_url,omitempty"`
	Links       bool     `json:"links,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // DOT labels with ids and counts
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the loaded catalog.
	Snapshot *catalog.Snapshot

	// Graph is the computed mind map.
	Graph mindmap.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SectionCount int
	ModelCount   int
	NodeCount    int
	EdgeCount    int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit bool // Whether the snapshot came from the catalog cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateSource checks that a catalog source is valid.
func ValidateSource(source string) error {
	if !ValidSources[source] {
		return errors.New(errors.ErrCodeInvalidSource, "invalid source: %q (must be one of: http, mongo, file)", source)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, dot, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRenderer checks that a renderer is valid.
func ValidateRenderer(renderer string) error {
	if !ValidRenderers[renderer] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid renderer: %q (must be one of: radial, graphviz)", renderer)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the source settings and applies load defaults.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if err := ValidateSource(o.Source); err != nil {
		return err
	}
	switch o.Source {
	case SourceHTTP:
		if o.APIURL == "" {
			o.APIURL = contentapi.DefaultBaseURL
		}
		if err := errors.ValidateURL(o.APIURL); err != nil {
			return err
		}
	case SourceMongo:
		if err := errors.ValidateMongoURI(o.MongoURI); err != nil {
			return err
		}
		if o.MongoDatabase == "" {
			o.MongoDatabase = DefaultMongoDatabase
		}
	case SourceFile:
		if o.SnapshotPath == "" {
			return errors.New(errors.ErrCodeInvalidInput, "snapshot path is required for the file source")
		}
		if err := errors.ValidatePath(o.SnapshotPath); err != nil {
			return err
		}
	}

	lo := o.LoadOptions()
	if err := lo.Normalize(); err != nil {
		return err
	}
	o.Limit, o.Section, o.Search = lo.Limit, lo.Section, lo.Search
	o.setLogger()
	return nil
}

// ValidateForLayout applies layout defaults and rejects impossible geometry.
func (o *Options) ValidateForLayout() error {
	if o.MaxModelsPerSection < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max models per section must not be negative")
	}
	if o.Geometry.SectionRadius < 0 || o.Geometry.ModelRadius < 0 || o.Geometry.ModelSpread < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout radii and spread must not be negative")
	}
	lo := o.LayoutOptions()
	o.RootLabel, o.MaxModelsPerSection, o.Geometry = lo.RootLabel, lo.MaxModelsPerSection, lo.Config
	o.setLogger()
	return nil
}

// ValidateForRender validates formats and renderer and applies defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	o.Formats = formats
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.NavBaseURL != "" {
		if err := errors.ValidateURL(o.NavBaseURL); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.setLogger()
	return ValidateRenderer(o.Renderer)
}

// LoadOptions returns the catalog load options.
func (o *Options) LoadOptions() catalog.LoadOptions {
	return catalog.LoadOptions{
		Limit:   o.Limit,
		Section: o.Section,
		Search:  o.Search,
		Refresh: o.Refresh,
	}
}

// LayoutOptions returns the layout engine options with defaults applied.
func (o *Options) LayoutOptions() mindmap.Options {
	lo := mindmap.Options{
		RootLabel:           o.RootLabel,
		MaxModelsPerSection: o.MaxModelsPerSection,
		Config:              o.Geometry,
	}
	lo.SetDefaults()
	return lo
}

// CatalogKeyOpts returns cache key options for the loaded snapshot.
func (o *Options) CatalogKeyOpts() cache.CatalogKeyOpts {
	return cache.CatalogKeyOpts{
		Limit:   o.Limit,
		Section: o.Section,
		Search:  o.Search,
	}
}

// SourceName identifies the catalog for logs and cache keys.
func (o *Options) SourceName() string {
	switch o.Source {
	case SourceMongo:
		return SourceMongo + ":" + o.MongoDatabase
	case SourceFile:
		return SourceFile + ":" + o.SnapshotPath
	default:
		return o.APIURL
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

