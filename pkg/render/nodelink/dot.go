package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the node id and section model counts to labels.
	Detailed bool
	// Scale multiplies layout coordinates. Zero means 1.
	Scale float64
}

// ToDOT converts a mind map to Graphviz DOT with pinned node positions.
// Positions stay in layout points; inputscale=72 stops neato from reading
// them as inches.
func ToDOT(g mindmap.Graph, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  node [fontname=\"Helvetica\", style=\"rounded,filled\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#a5b4fc\", penwidth=2];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.Position.X*scale), fmtCoord(-n.Position.Y*scale)))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fmtCoord prints v in points; values that round to zero print as 0.00.
func fmtCoord(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fmtLabel(n mindmap.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	parts := []string{n.Label, n.ID}
	if n.Kind == mindmap.KindSection && n.ModelCount > 0 {
		parts = append(parts, fmt.Sprintf("models: %d", n.ModelCount))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n mindmap.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case mindmap.KindRoot:
		attrs = append(attrs, "shape=circle", "style=filled", "fillcolor=\"#4f46e5\"", "fontcolor=white", "fontsize=18")
	case mindmap.KindSection:
		attrs = append(attrs, "shape=box", "fillcolor=\"#e0e7ff\"", "color=\"#6366f1\"", "fontsize=16")
	case mindmap.KindModel:
		attrs = append(attrs, "shape=box", "fillcolor=white", "color=\"#6366f1\"", "fontsize=12")
	default:
		attrs = append(attrs, "shape=point")
	}
	return attrs
}

// RenderSVG lays out DOT with neato and returns the SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// one so the SVG scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %.2f %.2f" width="%.0f" height="%.0f">`,
		match[1], match[2], w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
