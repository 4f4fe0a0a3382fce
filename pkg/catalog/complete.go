package catalog

import (
	"github.com/google/uuid"
)

// Complete fills the derived fields of a hand-written or seed snapshot:
// a model's section slug and name come from the section with the same index,
// models without an id get a random UUID, and sections without a model count
// get the number of models that reference them.
func (s *Snapshot) Complete() {
	byIndex := make(map[int]Section, len(s.Sections))
	for _, sec := range s.Sections {
		byIndex[sec.Index] = sec
	}

	counts := make(map[string]int, len(s.Sections))
	for i := range s.Models {
		m := &s.Models[i]
		if sec, ok := byIndex[m.SectionIndex]; ok {
			if m.SectionSlug == "" {
				m.SectionSlug = sec.Slug
			}
			if m.SectionName == "" {
				m.SectionName = sec.ShortName
			}
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		counts[m.SectionSlug]++
	}

	for i := range s.Sections {
		if s.Sections[i].ModelCount == 0 {
			s.Sections[i].ModelCount = counts[s.Sections[i].Slug]
		}
	}
}
