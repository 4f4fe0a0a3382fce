package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/errors"
	pkgio "github.com/gregorypanta/mental-models-app/pkg/io"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/observability"
	"github.com/gregorypanta/mental-models-app/pkg/render"
)

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Sections: []catalog.Section{
			{Index: 1, Name: "General Thinking", Slug: "thinking", ShortName: "Thinking", ModelCount: 3},
			{Index: 2, Name: "Decision Making", Slug: "decisions", ShortName: "Decisions", ModelCount: 1},
		},
		Models: []catalog.Model{
			{ID: "m1", SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 0, Title: "First Principles"},
			{ID: "m2", SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 1, Title: "Inversion"},
			{ID: "m3", SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 2, Title: "Second-Order Thinking"},
			{ID: "m4", SectionIndex: 2, SectionSlug: "decisions", ModelIndex: 0, Title: "Regret Minimization"},
		},
	}
}

func staticLoader(snap *catalog.Snapshot) catalog.Loader {
	return catalog.LoaderFunc(func(ctx context.Context, opts catalog.LoadOptions) (*catalog.Snapshot, error) {
		return snap.Filter(opts), nil
	})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateRendererAndSource(t *testing.T) {
	for _, r := range []string{"radial", "graphviz"} {
		if err := ValidateRenderer(r); err != nil {
			t.Errorf("ValidateRenderer(%q) = %v", r, err)
		}
	}
	if err := ValidateRenderer("sketch"); err == nil {
		t.Error("ValidateRenderer(sketch) should fail")
	}
	for _, s := range []string{"http", "mongo", "file"} {
		if err := ValidateSource(s); err != nil {
			t.Errorf("ValidateSource(%q) = %v", s, err)
		}
	}
	if err := ValidateSource("ftp"); !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("ValidateSource(ftp) = %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Source != SourceHTTP {
		t.Errorf("Source = %q", opts.Source)
	}
	if opts.APIURL == "" {
		t.Error("APIURL not defaulted")
	}
	if opts.Limit != catalog.DefaultLimit {
		t.Errorf("Limit = %d", opts.Limit)
	}
	if opts.RootLabel != mindmap.DefaultRootLabel {
		t.Errorf("RootLabel = %q", opts.RootLabel)
	}
	if opts.MaxModelsPerSection != mindmap.DefaultMaxModelsPerSection {
		t.Errorf("MaxModelsPerSection = %d", opts.MaxModelsPerSection)
	}
	if opts.Geometry != mindmap.DefaultConfig() {
		t.Errorf("Geometry = %+v", opts.Geometry)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Renderer != RendererRadial {
		t.Errorf("Renderer = %q", opts.Renderer)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"bad source", Options{Source: "ftp"}, errors.ErrCodeInvalidSource},
		{"bad api url", Options{APIURL: "not a url"}, errors.ErrCodeInvalidInput},
		{"limit too large", Options{Limit: 501}, errors.ErrCodeInvalidInput},
		{"bad section", Options{Section: "Not A Slug"}, errors.ErrCodeInvalidSection},
		{"file without path", Options{Source: SourceFile}, errors.ErrCodeInvalidInput},
		{"mongo without uri", Options{Source: SourceMongo}, errors.ErrCodeInvalidConfig},
		{"negative cap", Options{MaxModelsPerSection: -1}, errors.ErrCodeInvalidInput},
		{"negative radius", Options{Geometry: mindmap.Config{SectionRadius: -5}}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad renderer", Options{Renderer: "sketch"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestFormatsNormalized(t *testing.T) {
	formats := []string{" SVG", "Json "}
	opts := Options{Formats: formats}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if opts.Formats[0] != "svg" || opts.Formats[1] != "json" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if formats[0] != " SVG" {
		t.Error("caller's slice was modified")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingHooks) OnLayoutComplete(_ context.Context, nodes, _ int, _ time.Duration) {
	h.record("layout")
}
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}

func TestRunnerExecute(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	runner := NewRunner(nil, nil, nil)
	runner.Loader = staticLoader(testSnapshot())

	result, err := runner.Execute(context.Background(), Options{
		Formats:             []string{"json", "svg", "dot"},
		MaxModelsPerSection: 2,
		NavBaseURL:          "https://mm.example",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// root + 2 sections + 2 + 1 models
	if result.Stats.NodeCount != 6 || result.Stats.EdgeCount != 5 {
		t.Errorf("got %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.Stats.SectionCount != 2 || result.Stats.ModelCount != 4 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if err := mindmap.Validate(result.Graph); err != nil {
		t.Errorf("graph invalid: %v", err)
	}

	var doc struct {
		Revision string         `json:"revision"`
		Nodes    []mindmap.Node `json:"nodes"`
	}
	if err := json.Unmarshal(result.Artifacts["json"], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Revision == "" || len(doc.Nodes) != 6 {
		t.Errorf("json artifact = %+v", doc)
	}
	if !bytes.Contains(result.Artifacts["svg"], []byte(`href="https://mm.example/model/thinking/1"`)) {
		t.Error("svg artifact lacks navigation links")
	}
	if !strings.HasPrefix(string(result.Artifacts["dot"]), "graph G {") {
		t.Error("dot artifact malformed")
	}

	want := []string{"load", "layout", "render"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("hook events = %v, want %v", hooks.events, want)
	}
}

func TestRunnerSectionFilter(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	runner.Loader = staticLoader(testSnapshot())

	result, err := runner.Execute(context.Background(), Options{
		Section: "decisions",
		Formats: []string{"json"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Graph.CountKind(mindmap.KindModel); got != 1 {
		t.Errorf("model nodes = %d, want 1", got)
	}
	if got := result.Graph.CountKind(mindmap.KindSection); got != 2 {
		t.Errorf("section nodes = %d, want 2", got)
	}
}

func TestRunnerFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := pkgio.ExportSnapshot(testSnapshot(), "test", path); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	snap, err := runner.Load(context.Background(), Options{Source: SourceFile, SnapshotPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Sections) != 2 || len(snap.Models) != 4 {
		t.Errorf("loaded %d sections, %d models", len(snap.Sections), len(snap.Models))
	}

	_, err = runner.Load(context.Background(), Options{Source: SourceFile, SnapshotPath: filepath.Join(t.TempDir(), "none.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestRunnerMongoSnapshotCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)

	opts := Options{Source: SourceMongo, MongoURI: "mongodb://127.0.0.1:1"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := pkgio.WriteSnapshot(&buf, testSnapshot(), SourceMongo); err != nil {
		t.Fatal(err)
	}
	key := runner.Keyer.CatalogKey(opts.SourceName(), opts.CatalogKeyOpts())
	if err := fc.Set(context.Background(), key, buf.Bytes(), time.Minute); err != nil {
		t.Fatal(err)
	}

	// The URI points nowhere; a hit must not touch the network.
	snap, hit, err := runner.LoadWithCacheInfo(context.Background(), opts)
	if err != nil {
		t.Fatalf("LoadWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("expected cache hit")
	}
	if len(snap.Models) != 4 {
		t.Errorf("cached snapshot has %d models", len(snap.Models))
	}
}

func TestRenderGraphviz(t *testing.T) {
	g := mindmap.Layout("Mind", []mindmap.SectionRef{{Slug: "a", ShortName: "A"}}, nil, 6)
	opts := Options{Formats: []string{"svg"}, Renderer: RendererGraphviz}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(artifacts["svg"], []byte("<svg")) {
		t.Error("graphviz output is not SVG")
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	g := mindmap.Layout("Mind", nil, nil, 6)
	opts := Options{Formats: []string{"png", "svg"}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts["png"]) == 0 || len(artifacts["svg"]) == 0 {
		t.Error("missing artifacts")
	}
}
