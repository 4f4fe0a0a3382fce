// Package nodelink renders mind maps through Graphviz.
//
// # Overview
//
// [ToDOT] converts a [mindmap.Graph] to DOT source with every node pinned to
// its computed position (pos="x,y!"), so Graphviz draws the radial layout
// instead of inventing its own. The DOT can be saved for external tools or
// rendered in-process:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use [RenderPDF] and [RenderPNG].
//
// # Coordinates
//
// Layout coordinates grow downwards while Graphviz's grow upwards, so Y is
// negated. Options.Scale converts layout units to points (default 1).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] with the neato engine for
// in-process SVG rendering. PDF and PNG conversion requires librsvg
// (rsvg-convert).
//
// [mindmap.Graph]: github.com/gregorypanta/mental-models-app/pkg/mindmap.Graph
package nodelink
