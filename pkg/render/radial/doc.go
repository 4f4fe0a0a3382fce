// Package radial renders a mind-map graph as a standalone SVG document.
//
// Nodes are drawn at the positions computed by the layout engine: the root
// as a filled circle, sections as rounded pills with a badge showing their
// model count, and models as outlined pills. Edges are straight lines drawn
// beneath the nodes. The viewBox is fitted to the graph's bounds so the
// output scales cleanly.
//
// # Options
//
//   - [WithLinks] wraps navigable nodes in links to their routes
//   - [WithInteraction] adds a hover script that highlights a node's edges
//   - [WithPalette] overrides the colors
//   - [WithPadding] changes the margin around the graph
//
// The renderer is pure: the same graph and options always produce the same
// bytes.
package radial
