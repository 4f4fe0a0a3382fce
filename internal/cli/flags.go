package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

// Flags only override configured values when set on the command line, so
// their registered defaults are placeholders.

// sourceFlags select and filter the catalog.
type sourceFlags struct {
	source   string
	apiURL   string
	mongoURI string
	database string
	snapshot string
	limit    int
	section  string
	search   string
	refresh  bool
	noCache  bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.source, "source", "s", "", "catalog source: http, mongo, file (default from config)")
	fs.StringVar(&f.apiURL, "api-url", "", "content API base URL")
	fs.StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB connection string")
	fs.StringVar(&f.database, "mongo-db", "", "MongoDB database name")
	fs.StringVar(&f.snapshot, "snapshot", "", "snapshot file (file source)")
	fs.IntVar(&f.limit, "limit", 0, "maximum models to load")
	fs.StringVar(&f.section, "section", "", "only load models of this section")
	fs.StringVar(&f.search, "search", "", "only load models matching this query")
	fs.BoolVar(&f.refresh, "refresh", false, "bypass cached catalog data")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

func (f *sourceFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("source") {
		opts.Source = f.source
	}
	if fs.Changed("api-url") {
		opts.APIURL = f.apiURL
	}
	if fs.Changed("mongo-uri") {
		opts.MongoURI = f.mongoURI
	}
	if fs.Changed("mongo-db") {
		opts.MongoDatabase = f.database
	}
	if fs.Changed("snapshot") {
		opts.SnapshotPath = f.snapshot
		if !fs.Changed("source") {
			opts.Source = pipeline.SourceFile
		}
	}
	if fs.Changed("limit") {
		opts.Limit = f.limit
	}
	opts.Section = f.section
	opts.Search = f.search
	opts.Refresh = f.refresh
}

// layoutFlags tune the radial geometry.
type layoutFlags struct {
	root          string
	maxModels     int
	sectionRadius float64
	modelRadius   float64
	spread        float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.root, "root", "", "center node label")
	fs.IntVar(&f.maxModels, "max-models", 0, "models shown per section")
	fs.Float64Var(&f.sectionRadius, "section-radius", 0, "distance of sections from the center")
	fs.Float64Var(&f.modelRadius, "model-radius", 0, "distance of models from their section")
	fs.Float64Var(&f.spread, "spread", 0, "angular width of a section's model fan, in degrees")
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("root") {
		opts.RootLabel = f.root
	}
	if fs.Changed("max-models") {
		opts.MaxModelsPerSection = f.maxModels
	}
	if fs.Changed("section-radius") {
		opts.Geometry.SectionRadius = f.sectionRadius
	}
	if fs.Changed("model-radius") {
		opts.Geometry.ModelRadius = f.modelRadius
	}
	if fs.Changed("spread") {
		opts.Geometry.ModelSpread = f.spread * math.Pi / 180
	}
}

// renderFlags select output formats and drawing options.
type renderFlags struct {
	formats     string
	renderer    string
	links       bool
	navBaseURL  string
	interactive bool
	detailed    bool
	scale       float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	fs.StringVarP(&f.renderer, "renderer", "r", "", "SVG renderer: radial, graphviz (default from config)")
	fs.BoolVar(&f.links, "links", false, "wrap nodes in navigation links")
	fs.StringVar(&f.navBaseURL, "nav-base-url", "", "prefix for navigation links (implies --links)")
	fs.BoolVar(&f.interactive, "interactive", false, "embed hover highlighting (radial)")
	fs.BoolVar(&f.detailed, "detailed", false, "show node ids and model counts (graphviz, dot)")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	opts.Formats = parseFormats(f.formats)
	if fs.Changed("renderer") {
		opts.Renderer = f.renderer
	}
	if fs.Changed("nav-base-url") {
		opts.NavBaseURL = f.navBaseURL
	}
	opts.Links = f.links
	opts.Interactive = f.interactive
	opts.Detailed = f.detailed
	opts.Scale = f.scale
}
