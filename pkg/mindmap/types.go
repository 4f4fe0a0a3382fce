package mindmap

import (
	"fmt"
	"math"
)

// =============================================================================
// Input - Hierarchy References
// =============================================================================

// SectionRef is the layout engine's view of a catalog section.
type SectionRef struct {
	Slug       string // Unique section identifier (e.g., "decision-making")
	Index      int    // Stable 1-based ordinal from the catalog
	ShortName  string // Display label; falls back to Slug when empty
	ModelCount int    // Advertised number of models in the section
}

// ModelRef is the layout engine's view of a single mental model.
type ModelRef struct {
	SectionSlug string // Owning section; must match a SectionRef.Slug
	ModelIndex  int    // Ordinal within the section, unique per section
	Title       string // Display label
}

// =============================================================================
// NodeKind - Tagged Variant
// =============================================================================

// NodeKind tells renderers and navigation which of the three node roles a
// node plays. Switch on it exhaustively instead of probing optional fields.
type NodeKind int

const (
	kindUnknown NodeKind = iota
	KindRoot
	KindSection
	KindModel
)

var kindNames = map[NodeKind]string{
	KindRoot:    "root",
	KindSection: "section",
	KindModel:   "model",
}

// String returns the lowercase name of the kind.
func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the kind as its name.
func (k NodeKind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid node kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a kind name.
func (k *NodeKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("invalid node kind %q", text)
}

// =============================================================================
// Output - Graph
// =============================================================================

// Position is a 2D coordinate. The root is at the origin; y grows downwards.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NavTarget is where clicking a node leads. Section nodes set only
// SectionSlug; model nodes also set ModelIndex.
type NavTarget struct {
	SectionSlug string `json:"section_slug"`
	ModelIndex  *int   `json:"model_index,omitempty"`
}

// Node is a positioned mind-map node.
type Node struct {
	ID         string     `json:"id"`
	Kind       NodeKind   `json:"kind"`
	Position   Position   `json:"position"`
	Label      string     `json:"label"`
	NavTarget  *NavTarget `json:"nav_target,omitempty"`
	ModelCount int        `json:"model_count,omitempty"` // sections only
}

// Edge connects a parent node to a child node.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the layout result: the root first, then every section followed
// by its models. Edges list each Root→Section edge followed by that
// section's Section→Model edges.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Root returns the root node. ok is false for a graph without one.
func (g Graph) Root() (Node, bool) {
	for _, n := range g.Nodes {
		if n.Kind == KindRoot {
			return n, true
		}
	}
	return Node{}, false
}

// Children returns the direct children of id in edge order.
func (g Graph) Children(id string) []Node {
	var out []Node
	for _, e := range g.Edges {
		if e.Source != id {
			continue
		}
		if n, ok := g.Node(e.Target); ok {
			out = append(out, n)
		}
	}
	return out
}

// CountKind returns how many nodes have the given kind.
func (g Graph) CountKind(kind NodeKind) int {
	count := 0
	for _, n := range g.Nodes {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// Bounds returns the smallest box containing every node position.
// An empty graph has zero bounds.
func (g Graph) Bounds() (min, max Position) {
	if len(g.Nodes) == 0 {
		return Position{}, Position{}
	}
	min = Position{X: math.Inf(1), Y: math.Inf(1)}
	max = Position{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, n := range g.Nodes {
		min.X = math.Min(min.X, n.Position.X)
		min.Y = math.Min(min.Y, n.Position.Y)
		max.X = math.Max(max.X, n.Position.X)
		max.Y = math.Max(max.Y, n.Position.Y)
	}
	return min, max
}
