// Package graph serializes mind-map graphs.
//
// A laid-out [mindmap.Graph] is written as a JSON document that carries the
// graph together with its revision:
//
//	{
//	  "revision": "6f1c0a6e-....",
//	  "nodes": [
//	    {"id": "center", "kind": "root", "position": {"x": 0, "y": 0}, "label": "AI-Powered Mind"},
//	    {"id": "section-thinking", "kind": "section", "position": {"x": 0, "y": -350},
//	     "label": "Thinking", "nav_target": {"section_slug": "thinking"}, "model_count": 12}
//	  ],
//	  "edges": [
//	    {"id": "e-center-section-thinking", "source": "center", "target": "section-thinking"}
//	  ]
//	}
//
// Common operations:
//
//	graph.WriteGraphFile(g, "mindmap.json")  // Graph → File
//	g, _ := graph.ReadGraphFile("mindmap.json") // File → Graph (validated)
//	data, _ := graph.MarshalGraph(g)          // Graph → []byte
//	g, _ = graph.UnmarshalGraph(data)         // []byte → Graph (validated)
//
// # Revisions
//
// [Revision] derives a name-based UUID (version 5) from the graph's compact
// JSON encoding. Identical logical input always lays out to the same graph,
// so the revision changes only when the catalog or layout options do. The
// HTTP API serves it as the ETag.
//
// [mindmap.Graph]: github.com/gregorypanta/mental-models-app/pkg/mindmap.Graph
package graph
