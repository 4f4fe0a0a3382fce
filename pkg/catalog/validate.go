package catalog

import (
	"github.com/gregorypanta/mental-models-app/pkg/errors"
)

// Validate rejects snapshots that break the layout's input contract: every
// section needs a unique non-empty slug and an index of at least 1, and every
// model needs a section slug and a non-negative index.
//
// Models that reference a section missing from the snapshot are allowed.
// The layout drops them, which keeps catalog drift from failing a render.
func (s *Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Sections))
	for i, sec := range s.Sections {
		if sec.Slug == "" {
			return errors.New(errors.ErrCodeInvalidSection, "section %d has an empty slug", i)
		}
		if seen[sec.Slug] {
			return errors.New(errors.ErrCodeInvalidSection, "duplicate section slug %q", sec.Slug)
		}
		seen[sec.Slug] = true
		if sec.Index < 1 {
			return errors.New(errors.ErrCodeInvalidSection, "section %q has index %d, want >= 1", sec.Slug, sec.Index)
		}
		if sec.ModelCount < 0 {
			return errors.New(errors.ErrCodeInvalidSection, "section %q has negative model_count", sec.Slug)
		}
	}
	for i, m := range s.Models {
		if m.SectionSlug == "" {
			return errors.New(errors.ErrCodeInvalidModel, "model %d (%q) has no section_slug", i, m.Title)
		}
		if m.ModelIndex < 0 {
			return errors.New(errors.ErrCodeInvalidModel, "model %q in %q has negative model_index %d", m.Title, m.SectionSlug, m.ModelIndex)
		}
	}
	return nil
}
