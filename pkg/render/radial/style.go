package radial

// Palette holds the fill and stroke colors of a rendering.
type Palette struct {
	Background  string
	Root        string
	RootText    string
	Section     string
	SectionText string
	Model       string
	ModelText   string
	Edge        string
	Badge       string
}

// DefaultPalette is the indigo scheme of the web frontend.
var DefaultPalette = Palette{
	Background:  "#f8fafc",
	Root:        "#4f46e5",
	RootText:    "#ffffff",
	Section:     "#e0e7ff",
	SectionText: "#1e1b4b",
	Model:       "#6366f1",
	ModelText:   "#312e81",
	Edge:        "#a5b4fc",
	Badge:       "#4338ca",
}

// Node geometry in user units.
const (
	rootRadius      = 70.0
	sectionHeight   = 44.0
	modelHeight     = 32.0
	sectionFontSize = 16.0
	modelFontSize   = 13.0
	rootFontSize    = 18.0
	charWidth       = 0.58 // average glyph width relative to font size
	pillPadding     = 28.0
	badgeRadius     = 13.0
	maxLabelRunes   = 28
	defaultPadding  = 40.0
)

const interactionCSS = `
    .node { cursor: default; }
    a .node { cursor: pointer; }
    .edge { transition: stroke-width 0.2s ease, opacity 0.2s ease; }
    .edge.dim { opacity: 0.25; }
    .edge.highlight { stroke-width: 3; opacity: 1; }
    .node.highlight .shape { stroke-width: 3; }`

const interactionJS = `
    function highlight(id) {
      document.querySelectorAll('.edge').forEach(e => {
        const on = e.dataset.source === id || e.dataset.target === id;
        e.classList.toggle('highlight', on);
        e.classList.toggle('dim', !on);
      });
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', n.dataset.node === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.edge, .node').forEach(el => el.classList.remove('highlight', 'dim'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.node));
      el.addEventListener('mouseleave', clearHighlight);
    });`
