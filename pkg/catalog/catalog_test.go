package catalog

import (
	"context"
	"reflect"
	"testing"

	"github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Sections: []Section{
			{Index: 2, Slug: "decisions", ShortName: "Decisions", ModelCount: 2},
			{Index: 1, Slug: "thinking", ShortName: "Thinking", ModelCount: 3},
		},
		Models: []Model{
			{SectionIndex: 2, SectionSlug: "decisions", ModelIndex: 1, Title: "Regret Minimization"},
			{SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 2, Title: "Second-Order Thinking", Example: "Rent control"},
			{SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 0, Title: "First Principles"},
			{SectionIndex: 2, SectionSlug: "decisions", ModelIndex: 0, Title: "Inversion", Explanation: "Think backwards"},
			{SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 1, Title: "Map vs Territory"},
		},
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *Snapshot)
		wantCode errors.Code
	}{
		{"valid", func(s *Snapshot) {}, ""},
		{"unknown section reference allowed", func(s *Snapshot) {
			s.Models = append(s.Models, Model{SectionSlug: "ghost", ModelIndex: 0})
		}, ""},
		{"empty section slug", func(s *Snapshot) { s.Sections[0].Slug = "" }, errors.ErrCodeInvalidSection},
		{"duplicate section slug", func(s *Snapshot) { s.Sections[1].Slug = s.Sections[0].Slug }, errors.ErrCodeInvalidSection},
		{"zero index", func(s *Snapshot) { s.Sections[0].Index = 0 }, errors.ErrCodeInvalidSection},
		{"negative model count", func(s *Snapshot) { s.Sections[0].ModelCount = -1 }, errors.ErrCodeInvalidSection},
		{"model without section", func(s *Snapshot) { s.Models[2].SectionSlug = "" }, errors.ErrCodeInvalidModel},
		{"negative model index", func(s *Snapshot) { s.Models[2].ModelIndex = -1 }, errors.ErrCodeInvalidModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnapshot()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestSnapshotRefs(t *testing.T) {
	s := testSnapshot()
	sections, models := s.Refs()

	if len(sections) != 2 || len(models) != 5 {
		t.Fatalf("refs = %d sections, %d models", len(sections), len(models))
	}
	want := mindmap.SectionRef{Slug: "decisions", Index: 2, ShortName: "Decisions", ModelCount: 2}
	if sections[0] != want {
		t.Errorf("sections[0] = %+v, want %+v", sections[0], want)
	}
	if models[3] != (mindmap.ModelRef{SectionSlug: "decisions", ModelIndex: 0, Title: "Inversion"}) {
		t.Errorf("models[3] = %+v", models[3])
	}
}

func TestSnapshotLookups(t *testing.T) {
	s := testSnapshot()

	if sec, ok := s.Section("thinking"); !ok || sec.ShortName != "Thinking" {
		t.Errorf("Section(thinking) = %+v, %v", sec, ok)
	}
	if _, ok := s.Section("missing"); ok {
		t.Error("Section(missing) found")
	}
	if got := s.SectionModels("thinking"); len(got) != 3 {
		t.Errorf("SectionModels(thinking) = %d, want 3", len(got))
	}
	if m, ok := s.FindModel("decisions", 0); !ok || m.Title != "Inversion" {
		t.Errorf("FindModel(decisions, 0) = %+v, %v", m, ok)
	}
	if _, ok := s.FindModel("decisions", 9); ok {
		t.Error("FindModel(decisions, 9) found")
	}
}

func titles(ms []Model) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

func TestSnapshotFilter(t *testing.T) {
	tests := []struct {
		name string
		opts LoadOptions
		want []string
	}{
		{"all sorted", LoadOptions{}, []string{
			"First Principles", "Map vs Territory", "Second-Order Thinking", "Inversion", "Regret Minimization",
		}},
		{"limit", LoadOptions{Limit: 2}, []string{"First Principles", "Map vs Territory"}},
		{"section", LoadOptions{Section: "decisions"}, []string{"Inversion", "Regret Minimization"}},
		{"search title", LoadOptions{Search: "map"}, []string{"Map vs Territory"}},
		{"search explanation", LoadOptions{Search: "BACKWARDS"}, []string{"Inversion"}},
		{"search example", LoadOptions{Search: "rent"}, []string{"Second-Order Thinking"}},
		{"no match", LoadOptions{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnapshot()
			got := s.Filter(tt.opts)
			if !reflect.DeepEqual(titles(got.Models), tt.want) {
				t.Errorf("models = %v, want %v", titles(got.Models), tt.want)
			}
			if len(got.Sections) != 2 || got.Sections[0].Slug != "thinking" {
				t.Errorf("sections not sorted or filtered: %+v", got.Sections)
			}
			if s.Models[0].Title != "Regret Minimization" {
				t.Error("Filter modified the receiver")
			}
		})
	}
}

func TestLoadOptionsNormalize(t *testing.T) {
	tests := []struct {
		name      string
		opts      LoadOptions
		wantLimit int
		wantErr   bool
	}{
		{"default", LoadOptions{}, DefaultLimit, false},
		{"explicit", LoadOptions{Limit: 10}, 10, false},
		{"max", LoadOptions{Limit: MaxLimit}, MaxLimit, false},
		{"too large", LoadOptions{Limit: MaxLimit + 1}, 0, true},
		{"negative", LoadOptions{Limit: -1}, 0, true},
		{"bad section", LoadOptions{Section: "Not A Slug"}, 0, true},
		{"trimmed section", LoadOptions{Section: " thinking "}, DefaultLimit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.Normalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && opts.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", opts.Limit, tt.wantLimit)
			}
		})
	}
}

func TestLoaderFunc(t *testing.T) {
	var got LoadOptions
	var l Loader = LoaderFunc(func(ctx context.Context, opts LoadOptions) (*Snapshot, error) {
		got = opts
		return testSnapshot(), nil
	})
	s, err := l.Load(context.Background(), LoadOptions{Section: "thinking"})
	if err != nil || s == nil {
		t.Fatalf("Load() = %v, %v", s, err)
	}
	if got.Section != "thinking" {
		t.Errorf("options not passed through: %+v", got)
	}
}

func TestSnapshotComplete(t *testing.T) {
	s := &Snapshot{
		Sections: []Section{
			{Index: 1, Slug: "thinking", ShortName: "Thinking"},
			{Index: 2, Slug: "decisions", ShortName: "Decisions", ModelCount: 40},
		},
		Models: []Model{
			{SectionIndex: 1, ModelIndex: 0, Title: "First Principles"},
			{SectionIndex: 1, ModelIndex: 1, Title: "Inversion", ID: "fixed"},
			{SectionIndex: 2, ModelIndex: 0, Title: "Regret"},
		},
	}
	s.Complete()

	if err := s.Validate(); err != nil {
		t.Fatalf("completed snapshot invalid: %v", err)
	}
	m := s.Models[0]
	if m.SectionSlug != "thinking" || m.SectionName != "Thinking" {
		t.Errorf("derived section = %q/%q", m.SectionSlug, m.SectionName)
	}
	if len(m.ID) != 36 {
		t.Errorf("generated id = %q, want a UUID", m.ID)
	}
	if s.Models[1].ID != "fixed" {
		t.Error("existing id was replaced")
	}
	if s.Sections[0].ModelCount != 2 {
		t.Errorf("thinking model_count = %d, want 2", s.Sections[0].ModelCount)
	}
	if s.Sections[1].ModelCount != 40 {
		t.Errorf("explicit model_count was overwritten: %d", s.Sections[1].ModelCount)
	}
}
