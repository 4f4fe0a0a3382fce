package mindmap

import "math"

const (
	// DefaultRootLabel is the label of the center node.
	DefaultRootLabel = "AI-Powered Mind"

	// DefaultMaxModelsPerSection is how many models each section shows.
	DefaultMaxModelsPerSection = 6

	// DefaultSectionRadius is the distance from the root to each section node.
	DefaultSectionRadius = 350.0

	// DefaultModelRadius is the distance from a section node to its models.
	DefaultModelRadius = 180.0

	// DefaultModelSpread is the angular width of a section's model wedge.
	DefaultModelSpread = math.Pi / 2
)

// Config holds the geometric constants of the radial layout.
//
// The wedge width is fixed rather than scaled by the number of models, so
// very large caps crowd the wedge. That is a known limitation of the layout.
type Config struct {
	SectionRadius float64 `json:"section_radius"`
	ModelRadius   float64 `json:"model_radius"`
	ModelSpread   float64 `json:"model_spread"` // radians
}

// DefaultConfig returns the geometry used by the rest of the application.
func DefaultConfig() Config {
	return Config{
		SectionRadius: DefaultSectionRadius,
		ModelRadius:   DefaultModelRadius,
		ModelSpread:   DefaultModelSpread,
	}
}

// WithDefaults returns c with zero fields replaced by their defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.SectionRadius == 0 {
		c.SectionRadius = d.SectionRadius
	}
	if c.ModelRadius == 0 {
		c.ModelRadius = d.ModelRadius
	}
	if c.ModelSpread == 0 {
		c.ModelSpread = d.ModelSpread
	}
	return c
}

// Options bundles the caller-facing layout inputs besides the hierarchy.
type Options struct {
	RootLabel           string
	MaxModelsPerSection int
	Config              Config
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.RootLabel == "" {
		o.RootLabel = DefaultRootLabel
	}
	if o.MaxModelsPerSection == 0 {
		o.MaxModelsPerSection = DefaultMaxModelsPerSection
	}
	o.Config = o.Config.WithDefaults()
}

// Build runs [LayoutWithConfig] with the options.
func (o Options) Build(sections []SectionRef, models []ModelRef) Graph {
	o.SetDefaults()
	return LayoutWithConfig(o.RootLabel, sections, models, o.MaxModelsPerSection, o.Config)
}
