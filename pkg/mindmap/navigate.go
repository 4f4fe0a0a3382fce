package mindmap

import (
	"strconv"
)

// IntentAction says what a click on a node should do.
type IntentAction int

const (
	// NavNone means the click does nothing (the root node).
	NavNone IntentAction = iota
	// NavSection opens a section's model listing.
	NavSection
	// NavModel opens a single model's detail view.
	NavModel
)

func (a IntentAction) String() string {
	switch a {
	case NavSection:
		return "section"
	case NavModel:
		return "model"
	default:
		return "none"
	}
}

// MarshalText encodes the action name.
func (a IntentAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Intent is the result of clicking a node.
type Intent struct {
	Action      IntentAction `json:"action"`
	SectionSlug string       `json:"section_slug,omitempty"`
	ModelIndex  *int         `json:"model_index,omitempty"`
	Path        string       `json:"path,omitempty"`
}

// None reports whether the intent is a no-op.
func (i Intent) None() bool {
	return i.Action == NavNone
}

// Navigate resolves a clicked node into its navigation intent. Section nodes
// route to /domain/<slug> and model nodes to /model/<slug>/<index>; the root
// and nodes missing their target are no-ops. Model index 0 is a valid target.
func Navigate(n Node) Intent {
	switch n.Kind {
	case KindSection:
		if n.NavTarget == nil {
			return Intent{}
		}
		slug := n.NavTarget.SectionSlug
		return Intent{
			Action:      NavSection,
			SectionSlug: slug,
			Path:        "/domain/" + slug,
		}
	case KindModel:
		if n.NavTarget == nil || n.NavTarget.ModelIndex == nil {
			return Intent{}
		}
		slug := n.NavTarget.SectionSlug
		idx := *n.NavTarget.ModelIndex
		return Intent{
			Action:      NavModel,
			SectionSlug: slug,
			ModelIndex:  &idx,
			Path:        "/model/" + slug + "/" + strconv.Itoa(idx),
		}
	case KindRoot:
		return Intent{}
	default:
		return Intent{}
	}
}

// NavigateID looks up id in g and resolves it. ok is false for unknown ids.
func (g Graph) NavigateID(id string) (Intent, bool) {
	n, ok := g.Node(id)
	if !ok {
		return Intent{}, false
	}
	return Navigate(n), true
}
