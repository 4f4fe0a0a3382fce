// Package render turns laid-out mind maps into visual outputs.
//
// # Overview
//
// Two renderers consume a [mindmap.Graph]:
//
//   - [radial]: native SVG drawn straight from the computed positions
//   - [nodelink]: Graphviz DOT with pinned positions, rendered in-process
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers go through
// them for raster and print output.
//
//	svg := radial.RenderSVG(g, radial.WithLinks("https://example.org"))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [mindmap.Graph]: github.com/gregorypanta/mental-models-app/pkg/mindmap.Graph
// [radial]: github.com/gregorypanta/mental-models-app/pkg/render/radial
// [nodelink]: github.com/gregorypanta/mental-models-app/pkg/render/nodelink
package render
