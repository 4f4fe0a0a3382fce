package radial

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette     Palette
	padding     float64
	linkBase    string
	links       bool
	interactive bool
}

// WithLinks wraps section and model nodes in links to their navigation
// routes, resolved against baseURL. An empty baseURL keeps paths relative.
func WithLinks(baseURL string) SVGOption {
	return func(r *svgRenderer) {
		r.links = true
		r.linkBase = strings.TrimRight(baseURL, "/")
	}
}

// WithInteraction embeds the hover highlight script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithPalette replaces the default colors.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithPadding sets the margin around the outermost nodes. Negative values
// are ignored.
func WithPadding(p float64) SVGOption {
	return func(r *svgRenderer) {
		if p >= 0 {
			r.padding = p
		}
	}
}

// RenderSVG draws g as a complete SVG document.
func RenderSVG(g mindmap.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette, padding: defaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	x, y, w, h := r.viewBox(g)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		x, y, w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		x, y, w, h, r.palette.Background)

	buf.WriteString("  <g class=\"edges\">\n")
	for _, e := range g.Edges {
		r.renderEdge(&buf, g, e)
	}
	buf.WriteString("  </g>\n  <g class=\"nodes\">\n")
	for _, n := range g.Nodes {
		r.renderNode(&buf, n)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// viewBox fits the node extents plus padding.
func (r svgRenderer) viewBox(g mindmap.Graph) (x, y, w, h float64) {
	if len(g.Nodes) == 0 {
		side := 2 * (rootRadius + r.padding)
		return -side / 2, -side / 2, side, side
	}
	minX, minY := g.Nodes[0].Position.X, g.Nodes[0].Position.Y
	maxX, maxY := minX, minY
	for _, n := range g.Nodes {
		hw, hh := halfExtent(n)
		minX = min(minX, n.Position.X-hw)
		maxX = max(maxX, n.Position.X+hw)
		minY = min(minY, n.Position.Y-hh)
		maxY = max(maxY, n.Position.Y+hh)
	}
	return minX - r.padding, minY - r.padding, maxX - minX + 2*r.padding, maxY - minY + 2*r.padding
}

func (r svgRenderer) renderEdge(buf *bytes.Buffer, g mindmap.Graph, e mindmap.Edge) {
	src, ok := g.Node(e.Source)
	if !ok {
		return
	}
	dst, ok := g.Node(e.Target)
	if !ok {
		return
	}
	fmt.Fprintf(buf, `    <line id="%s" class="edge" data-source="%s" data-target="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		escapeXML(e.ID), escapeXML(e.Source), escapeXML(e.Target),
		src.Position.X, src.Position.Y, dst.Position.X, dst.Position.Y, r.palette.Edge)
}

func (r svgRenderer) renderNode(buf *bytes.Buffer, n mindmap.Node) {
	href := r.href(n)
	if href != "" {
		fmt.Fprintf(buf, `    <a href="%s">`+"\n", escapeXML(href))
	}
	fmt.Fprintf(buf, `    <g id="node-%s" class="node node-%s" data-node="%s" transform="translate(%.1f %.1f)">`+"\n",
		escapeXML(n.ID), n.Kind, escapeXML(n.ID), n.Position.X, n.Position.Y)

	label := truncateLabel(n.Label, maxLabelRunes)
	switch n.Kind {
	case mindmap.KindRoot:
		fmt.Fprintf(buf, `      <circle class="shape" r="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			rootRadius, r.palette.Root, r.palette.Badge)
		renderText(buf, label, rootFontSize, r.palette.RootText, true)
	case mindmap.KindSection:
		w := pillWidth(label, sectionFontSize)
		renderPill(buf, w, sectionHeight, r.palette.Section, r.palette.Model)
		renderText(buf, label, sectionFontSize, r.palette.SectionText, true)
		if n.ModelCount > 0 {
			r.renderBadge(buf, w/2, -sectionHeight/2, n.ModelCount)
		}
	case mindmap.KindModel:
		renderPill(buf, pillWidth(label, modelFontSize), modelHeight, "#ffffff", r.palette.Model)
		renderText(buf, label, modelFontSize, r.palette.ModelText, false)
	default:
		fmt.Fprintf(buf, `      <circle class="shape" r="4" fill="%s"/>`+"\n", r.palette.Edge)
	}

	fmt.Fprintf(buf, "      <title>%s</title>\n", escapeXML(n.Label))
	buf.WriteString("    </g>\n")
	if href != "" {
		buf.WriteString("    </a>\n")
	}
}

func (r svgRenderer) href(n mindmap.Node) string {
	if !r.links {
		return ""
	}
	intent := mindmap.Navigate(n)
	if intent.None() {
		return ""
	}
	return r.linkBase + intent.Path
}

func (r svgRenderer) renderBadge(buf *bytes.Buffer, cx, cy float64, count int) {
	fmt.Fprintf(buf, `      <circle class="badge" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
		cx, cy, badgeRadius, r.palette.Badge)
	fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" font-size="11" font-family="sans-serif" text-anchor="middle" dominant-baseline="central" fill="#ffffff">%d</text>`+"\n",
		cx, cy, count)
}

func renderPill(buf *bytes.Buffer, w, h float64, fill, stroke string) {
	fmt.Fprintf(buf, `      <rect class="shape" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		-w/2, -h/2, w, h, h/2, fill, stroke)
}

func renderText(buf *bytes.Buffer, label string, size float64, fill string, bold bool) {
	weight := "normal"
	if bold {
		weight = "bold"
	}
	fmt.Fprintf(buf, `      <text font-size="%.0f" font-family="sans-serif" font-weight="%s" text-anchor="middle" dominant-baseline="central" fill="%s">%s</text>`+"\n",
		size, weight, fill, escapeXML(label))
}

// halfExtent returns half the drawn width and height of n.
func halfExtent(n mindmap.Node) (float64, float64) {
	label := truncateLabel(n.Label, maxLabelRunes)
	switch n.Kind {
	case mindmap.KindRoot:
		return rootRadius, rootRadius
	case mindmap.KindSection:
		return pillWidth(label, sectionFontSize)/2 + badgeRadius, sectionHeight/2 + badgeRadius
	case mindmap.KindModel:
		return pillWidth(label, modelFontSize) / 2, modelHeight / 2
	default:
		return 4, 4
	}
}
