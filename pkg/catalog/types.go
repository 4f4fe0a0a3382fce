package catalog

import (
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

// Section is a top-level catalog category.
type Section struct {
	Index       int    `json:"index" bson:"index"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug" bson:"slug"`
	ShortName   string `json:"short_name" bson:"short_name"`
	Description string `json:"description" bson:"description"`
	Icon        string `json:"icon" bson:"icon"`
	ModelCount  int    `json:"model_count" bson:"model_count"`
}

// Model is a single mental model, addressed by (SectionSlug, ModelIndex).
type Model struct {
	ID           string `json:"id" bson:"id"`
	SectionIndex int    `json:"section_index" bson:"section_index"`
	SectionSlug  string `json:"section_slug" bson:"section_slug"`
	SectionName  string `json:"section_name" bson:"section_name"`
	ModelIndex   int    `json:"model_index" bson:"model_index"`
	Title        string `json:"title" bson:"title"`
	Explanation  string `json:"explanation" bson:"explanation"`
	Example      string `json:"example" bson:"example"`
	AIPrompt     string `json:"ai_prompt" bson:"ai_prompt"`
}

// Snapshot is a complete, immutable view of the catalog.
type Snapshot struct {
	Sections []Section `json:"sections"`
	Models   []Model   `json:"models"`
}

// Refs converts the snapshot into layout input, preserving order.
func (s *Snapshot) Refs() ([]mindmap.SectionRef, []mindmap.ModelRef) {
	sections := make([]mindmap.SectionRef, len(s.Sections))
	for i, sec := range s.Sections {
		sections[i] = mindmap.SectionRef{
			Slug:       sec.Slug,
			Index:      sec.Index,
			ShortName:  sec.ShortName,
			ModelCount: sec.ModelCount,
		}
	}
	models := make([]mindmap.ModelRef, len(s.Models))
	for i, m := range s.Models {
		models[i] = mindmap.ModelRef{
			SectionSlug: m.SectionSlug,
			ModelIndex:  m.ModelIndex,
			Title:       m.Title,
		}
	}
	return sections, models
}

// Section returns the section with the given slug.
func (s *Snapshot) Section(slug string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Slug == slug {
			return sec, true
		}
	}
	return Section{}, false
}

// SectionModels returns the models of a section in snapshot order.
func (s *Snapshot) SectionModels(slug string) []Model {
	var out []Model
	for _, m := range s.Models {
		if m.SectionSlug == slug {
			out = append(out, m)
		}
	}
	return out
}

// FindModel returns the model addressed by (slug, index).
func (s *Snapshot) FindModel(slug string, index int) (Model, bool) {
	for _, m := range s.Models {
		if m.SectionSlug == slug && m.ModelIndex == index {
			return m, true
		}
	}
	return Model{}, false
}
