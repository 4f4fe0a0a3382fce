package graph

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

func sampleGraph() mindmap.Graph {
	return mindmap.Layout("AI-Powered Mind",
		[]mindmap.SectionRef{
			{Slug: "thinking", Index: 1, ShortName: "Thinking", ModelCount: 2},
			{Slug: "decisions", Index: 2, ShortName: "Decisions"},
		},
		[]mindmap.ModelRef{
			{SectionSlug: "thinking", ModelIndex: 0, Title: "First Principles"},
			{SectionSlug: "thinking", ModelIndex: 1, Title: "Inversion"},
		},
		6)
}

func TestMarshalUnmarshalGraph(t *testing.T) {
	g := sampleGraph()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"revision", "nodes", "edges"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing %q in output", key)
		}
	}
	if !strings.Contains(string(data), `"kind": "section"`) {
		t.Error("node kind not encoded as text")
	}

	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Error("graph changed after marshal/unmarshal")
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"root only", `{"nodes":[{"id":"center","kind":"root","position":{"x":0,"y":0},"label":"r"}],"edges":[]}`, ""},
		{"malformed", `{"nodes":[`, errors.ErrCodeInvalidFormat},
		{"unknown kind", `{"nodes":[{"id":"center","kind":"leaf"}]}`, errors.ErrCodeInvalidFormat},
		{"no root", `{"nodes":[],"edges":[]}`, errors.ErrCodeInvalidGraph},
		{"dangling edge", `{"nodes":[{"id":"center","kind":"root"}],"edges":[{"id":"e","source":"center","target":"x"}]}`, errors.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ReadGraph() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ReadGraph() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindmap.json")
	g := sampleGraph()

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(got.Nodes) != len(g.Nodes) || len(got.Edges) != len(g.Edges) {
		t.Errorf("got %d nodes/%d edges, want %d/%d", len(got.Nodes), len(got.Edges), len(g.Nodes), len(g.Edges))
	}

	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestRevision(t *testing.T) {
	a, err := Revision(sampleGraph())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Revision(sampleGraph())
	if a != b {
		t.Errorf("revision not deterministic: %s != %s", a, b)
	}
	if len(a) != 36 || a[14] != '5' {
		t.Errorf("revision %s is not a version 5 UUID", a)
	}

	changed := sampleGraph()
	changed.Nodes[0].Label = "Other"
	c, _ := Revision(changed)
	if c == a {
		t.Error("label change did not change the revision")
	}
}

func TestWriteGraphIncludesRevision(t *testing.T) {
	g := sampleGraph()
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	want, _ := Revision(g)
	if doc.Revision != want {
		t.Errorf("revision = %s, want %s", doc.Revision, want)
	}
}
