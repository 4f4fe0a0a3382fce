package mindmap

import "math"

// Layout computes the radial mind-map graph with [DefaultConfig].
//
// The result always contains the root node. Sections are placed in input
// order; each section shows at most maxModelsPerSection of its models, taken
// in input order. See the package documentation for the geometry.
func Layout(rootLabel string, sections []SectionRef, models []ModelRef, maxModelsPerSection int) Graph {
	return LayoutWithConfig(rootLabel, sections, models, maxModelsPerSection, DefaultConfig())
}

// LayoutWithConfig is [Layout] with explicit geometry.
func LayoutWithConfig(rootLabel string, sections []SectionRef, models []ModelRef, maxModelsPerSection int, cfg Config) Graph {
	sections = uniqueSections(sections)
	if maxModelsPerSection < 1 {
		maxModelsPerSection = 1
	}
	selected := selectModels(sections, models, maxModelsPerSection)

	g := Graph{
		Nodes: make([]Node, 0, 1+len(sections)+countSelected(selected)),
		Edges: make([]Edge, 0, len(sections)+countSelected(selected)),
	}
	g.Nodes = append(g.Nodes, Node{
		ID:    RootID,
		Kind:  KindRoot,
		Label: rootLabel,
	})
	if len(sections) == 0 {
		return g
	}

	slot := 2 * math.Pi / float64(len(sections))
	for i, s := range sections {
		angle := slot*float64(i) - math.Pi/2
		pos := polar(Position{}, angle, cfg.SectionRadius)

		sid := SectionID(s.Slug)
		g.Nodes = append(g.Nodes, Node{
			ID:         sid,
			Kind:       KindSection,
			Position:   pos,
			Label:      sectionLabel(s),
			NavTarget:  &NavTarget{SectionSlug: s.Slug},
			ModelCount: s.ModelCount,
		})
		g.Edges = append(g.Edges, Edge{ID: EdgeID(RootID, sid), Source: RootID, Target: sid})

		placed := selected[s.Slug]
		for j, m := range placed {
			mid := ModelID(m.SectionSlug, m.ModelIndex)
			idx := m.ModelIndex
			g.Nodes = append(g.Nodes, Node{
				ID:        mid,
				Kind:      KindModel,
				Position:  polar(pos, modelAngle(angle, cfg.ModelSpread, len(placed), j), cfg.ModelRadius),
				Label:     modelLabel(m),
				NavTarget: &NavTarget{SectionSlug: m.SectionSlug, ModelIndex: &idx},
			})
			g.Edges = append(g.Edges, Edge{ID: EdgeID(sid, mid), Source: sid, Target: mid})
		}
	}
	return g
}

// modelAngle returns the direction of the j-th of k models in a wedge of the
// given spread centered on sectionAngle. A single model sits on sectionAngle.
func modelAngle(sectionAngle, spread float64, k, j int) float64 {
	if k == 1 {
		return sectionAngle
	}
	step := spread / float64(max(k-1, 1))
	return sectionAngle - spread/2 + step*float64(j)
}

func polar(origin Position, angle, radius float64) Position {
	return Position{
		X: origin.X + math.Cos(angle)*radius,
		Y: origin.Y + math.Sin(angle)*radius,
	}
}

// uniqueSections drops sections with an empty slug and sections whose slug
// was already seen.
func uniqueSections(sections []SectionRef) []SectionRef {
	seen := make(map[string]bool, len(sections))
	out := make([]SectionRef, 0, len(sections))
	for _, s := range sections {
		if s.Slug == "" || seen[s.Slug] {
			continue
		}
		seen[s.Slug] = true
		out = append(out, s)
	}
	return out
}

type modelKey struct {
	slug  string
	index int
}

// selectModels groups models by known section in input order, keeping at
// most limit per section. Unknown sections, negative indexes and repeated
// (slug, index) pairs are skipped.
func selectModels(sections []SectionRef, models []ModelRef, limit int) map[string][]ModelRef {
	out := make(map[string][]ModelRef, len(sections))
	for _, s := range sections {
		out[s.Slug] = nil
	}
	seen := make(map[modelKey]bool)
	for _, m := range models {
		group, known := out[m.SectionSlug]
		if !known || m.ModelIndex < 0 || len(group) >= limit {
			continue
		}
		key := modelKey{m.SectionSlug, m.ModelIndex}
		if seen[key] {
			continue
		}
		seen[key] = true
		out[m.SectionSlug] = append(group, m)
	}
	return out
}

func countSelected(selected map[string][]ModelRef) int {
	n := 0
	for _, ms := range selected {
		n += len(ms)
	}
	return n
}

func sectionLabel(s SectionRef) string {
	if s.ShortName != "" {
		return s.ShortName
	}
	return s.Slug
}

func modelLabel(m ModelRef) string {
	if m.Title != "" {
		return m.Title
	}
	return ModelID(m.SectionSlug, m.ModelIndex)
}
