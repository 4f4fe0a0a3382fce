package mindmap_test

import (
	"fmt"

	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

func ExampleLayout() {
	sections := []mindmap.SectionRef{
		{Slug: "a", Index: 1},
		{Slug: "b", Index: 2},
	}
	models := []mindmap.ModelRef{
		{SectionSlug: "a", ModelIndex: 0},
		{SectionSlug: "a", ModelIndex: 1},
	}

	g := mindmap.Layout("AI-Powered Mind", sections, models, 6)
	for _, n := range g.Nodes {
		fmt.Printf("%-8s %s\n", n.Kind, n.ID)
	}
	fmt.Println("edges:", len(g.Edges))
	// Output:
	// root     center
	// section  section-a
	// model    model-a-0
	// model    model-a-1
	// section  section-b
	// edges: 4
}

func ExampleLayoutWithConfig() {
	cfg := mindmap.Config{SectionRadius: 100, ModelRadius: 40, ModelSpread: 0}
	g := mindmap.LayoutWithConfig("root",
		[]mindmap.SectionRef{{Slug: "only", Index: 1}},
		[]mindmap.ModelRef{{SectionSlug: "only", ModelIndex: 0}},
		6, cfg)

	for _, n := range g.Nodes {
		fmt.Printf("%s (%.0f, %.0f)\n", n.ID, n.Position.X, n.Position.Y)
	}
	// Output:
	// center (0, 0)
	// section-only (0, -100)
	// model-only-0 (0, -140)
}

func ExampleNavigate() {
	g := mindmap.Layout("root",
		[]mindmap.SectionRef{{Slug: "thinking", Index: 1}},
		[]mindmap.ModelRef{{SectionSlug: "thinking", ModelIndex: 0}},
		6)

	for _, n := range g.Nodes {
		intent := mindmap.Navigate(n)
		if intent.None() {
			fmt.Println(n.ID, "-> (no-op)")
			continue
		}
		fmt.Println(n.ID, "->", intent.Path)
	}
	// Output:
	// center -> (no-op)
	// section-thinking -> /domain/thinking
	// model-thinking-0 -> /model/thinking/0
}
