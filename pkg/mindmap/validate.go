package mindmap

import (
	"github.com/gregorypanta/mental-models-app/pkg/errors"
)

// Validate checks that g is a well-formed mind map: unique node and edge ids,
// exactly one root, every edge between existing nodes and either
// Root→Section or Section→Model, every non-root node with exactly one parent,
// and navigation targets that match each node's kind.
//
// Graphs produced by [Layout] always validate. Validate exists for graphs
// that arrive from elsewhere, such as a JSON file. Errors carry
// [errors.ErrCodeInvalidGraph].
func Validate(g Graph) error {
	kinds := make(map[string]NodeKind, len(g.Nodes))
	roots := 0
	for _, n := range g.Nodes {
		if n.ID == "" {
			return invalid("node with empty id")
		}
		if _, dup := kinds[n.ID]; dup {
			return invalid("duplicate node id %q", n.ID)
		}
		kinds[n.ID] = n.Kind
		if err := validateNavTarget(n); err != nil {
			return err
		}
		if n.Kind == KindRoot {
			roots++
		}
	}
	if roots != 1 {
		return invalid("graph has %d root nodes, want 1", roots)
	}

	edgeIDs := make(map[string]bool, len(g.Edges))
	parents := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return invalid("duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true

		src, ok := kinds[e.Source]
		if !ok {
			return invalid("edge %q: unknown source %q", e.ID, e.Source)
		}
		dst, ok := kinds[e.Target]
		if !ok {
			return invalid("edge %q: unknown target %q", e.ID, e.Target)
		}
		if !(src == KindRoot && dst == KindSection) && !(src == KindSection && dst == KindModel) {
			return invalid("edge %q: %s→%s is not allowed", e.ID, src, dst)
		}
		parents[e.Target]++
	}

	for _, n := range g.Nodes {
		if n.Kind == KindRoot {
			continue
		}
		if p := parents[n.ID]; p != 1 {
			return invalid("node %q has %d parents, want 1", n.ID, p)
		}
	}
	return nil
}

func validateNavTarget(n Node) error {
	switch n.Kind {
	case KindRoot:
		if n.NavTarget != nil {
			return invalid("root node %q has a navigation target", n.ID)
		}
	case KindSection:
		if n.NavTarget == nil || n.NavTarget.SectionSlug == "" {
			return invalid("section node %q has no section slug", n.ID)
		}
		if n.NavTarget.ModelIndex != nil {
			return invalid("section node %q targets a model", n.ID)
		}
	case KindModel:
		if n.NavTarget == nil || n.NavTarget.SectionSlug == "" || n.NavTarget.ModelIndex == nil {
			return invalid("model node %q needs section slug and model index", n.ID)
		}
	default:
		return invalid("node %q has unknown kind", n.ID)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidGraph, format, args...)
}
