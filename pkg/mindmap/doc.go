// Package mindmap computes the radial mind-map layout of the mental-models
// catalog.
//
// # Overview
//
// The catalog is a two-level hierarchy: a root, N sections, and the models of
// each section. [Layout] turns a snapshot of that hierarchy into a fully
// positioned [Graph] (node coordinates, parent/child edges and navigation
// targets) that a renderer can draw and make interactive:
//
//	g := mindmap.Layout("AI-Powered Mind", sections, models, 6)
//	for _, n := range g.Nodes {
//	    fmt.Println(n.ID, n.Kind, n.Position.X, n.Position.Y)
//	}
//
// # Algorithm
//
// The root sits at the origin. The full circle is split into len(sections)
// equal slots; slot i is centered at
//
//	angle_i = 2π/n · i − π/2
//
// so slot 0 points up (screen coordinates, y grows downwards). Each section
// node sits at [Config.SectionRadius] along its slot. The first
// maxModelsPerSection models of a section (input order) fan out across a wedge
// of [Config.ModelSpread] radians centered on the section's own angle, at
// [Config.ModelRadius] from the section node:
//
//	angle = angle_i − spread/2 + spread/max(k−1, 1) · j
//
// A section with a single model places it exactly on angle_i.
//
// # Identity
//
// Node and edge ids depend only on semantic identity ([RootID], [SectionID],
// [ModelID], [EdgeID]), never on slice positions, so the same logical input
// always yields the same ids and re-renders can be diffed by id.
//
// # Tolerances
//
// Layout never fails. Malformed-but-typed input degrades by omission.
// Sections with an empty slug, models with a negative index and models that
// reference an unknown section are dropped, as are duplicates after the first
// occurrence. Caps below 1 are clamped to 1, and an empty section list yields
// a root-only graph. Use [Validate] to check the tree invariants
// of a graph that came from somewhere else (for example a JSON file).
//
// # Navigation
//
// [Navigate] resolves a clicked node into an [Intent] with a single switch on
// [NodeKind]: sections open their listing, models open their detail view and
// the root is a no-op.
//
// # Concurrency
//
// Layout is a pure function that allocates only its own output; it is safe to
// call concurrently with independent inputs.
package mindmap
