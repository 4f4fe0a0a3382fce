package catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/gregorypanta/mental-models-app/pkg/errors"
)

// Model limits, matching the content API.
const (
	DefaultLimit = 300
	MaxLimit     = 500
)

// Loader fetches a catalog snapshot. Implementations validate what they
// return and honour ctx cancellation.
type Loader interface {
	Load(ctx context.Context, opts LoadOptions) (*Snapshot, error)
}

// LoaderFunc adapts a function to [Loader].
type LoaderFunc func(ctx context.Context, opts LoadOptions) (*Snapshot, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, opts LoadOptions) (*Snapshot, error) {
	return f(ctx, opts)
}

// LoadOptions narrows what a loader returns.
type LoadOptions struct {
	Limit   int    // Maximum number of models (1..MaxLimit, 0 = DefaultLimit)
	Section string // Only models of this section slug
	Search  string // Case-insensitive match on title, explanation or example
	Refresh bool   // Bypass caches
}

// Normalize applies the default limit and validates the options.
func (o *LoadOptions) Normalize() error {
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit < 1 || o.Limit > MaxLimit {
		return errors.New(errors.ErrCodeInvalidInput, "limit %d out of range 1..%d", o.Limit, MaxLimit)
	}
	o.Section = strings.TrimSpace(o.Section)
	if o.Section != "" {
		if err := errors.ValidateSlug(o.Section); err != nil {
			return err
		}
	}
	o.Search = strings.TrimSpace(o.Search)
	return nil
}

// Sort orders sections by index and models by (section index, model index).
// Ties keep their input order.
func (s *Snapshot) Sort() {
	slices.SortStableFunc(s.Sections, func(a, b Section) int {
		return a.Index - b.Index
	})
	slices.SortStableFunc(s.Models, func(a, b Model) int {
		if a.SectionIndex != b.SectionIndex {
			return a.SectionIndex - b.SectionIndex
		}
		return a.ModelIndex - b.ModelIndex
	})
}

// Filter returns a sorted copy of s narrowed by opts the way the content
// API narrows its responses. Sections are never filtered; models are
// matched by section and search, then truncated to opts.Limit.
func (s *Snapshot) Filter(opts LoadOptions) *Snapshot {
	out := &Snapshot{
		Sections: slices.Clone(s.Sections),
		Models:   make([]Model, 0, len(s.Models)),
	}
	search := strings.ToLower(opts.Search)
	for _, m := range s.Models {
		if opts.Section != "" && m.SectionSlug != opts.Section {
			continue
		}
		if search != "" && !m.matches(search) {
			continue
		}
		out.Models = append(out.Models, m)
	}
	out.Sort()
	if opts.Limit > 0 && len(out.Models) > opts.Limit {
		out.Models = out.Models[:opts.Limit]
	}
	return out
}

func (m Model) matches(lowerQuery string) bool {
	for _, field := range []string{m.Title, m.Explanation, m.Example} {
		if strings.Contains(strings.ToLower(field), lowerQuery) {
			return true
		}
	}
	return false
}
