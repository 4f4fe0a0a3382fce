package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Sections: []catalog.Section{
			{Index: 1, Slug: "thinking", ShortName: "Thinking", ModelCount: 3},
			{Index: 2, Slug: "decisions", ShortName: "Decisions", ModelCount: 1},
		},
		Models: []catalog.Model{
			{SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 0, Title: "First Principles"},
			{SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 1, Title: "Inversion"},
			{SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 2, Title: "Second-Order Thinking"},
			{SectionIndex: 2, SectionSlug: "decisions", ModelIndex: 0, Title: "Regret Minimization"},
		},
	}
}

func newTestServer(t *testing.T, loader catalog.Loader) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	runner.Loader = loader

	s, err := New(Config{CORSOrigins: []string{"https://app.example"}}, runner,
		pipeline.Options{NavBaseURL: "https://app.example"}, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func staticLoader() catalog.Loader {
	snap := testSnapshot()
	return catalog.LoaderFunc(func(ctx context.Context, opts catalog.LoadOptions) (*catalog.Snapshot, error) {
		return snap.Filter(opts), nil
	})
}

func get(t *testing.T, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, staticLoader())
	resp, body := get(t, ts.URL+"/health", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"ok"`) {
		t.Errorf("GET /health = %d %s", resp.StatusCode, body)
	}
}

func TestMindmap(t *testing.T) {
	ts := newTestServer(t, staticLoader())

	resp, body := get(t, ts.URL+"/api/mindmap", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var g mindmap.Graph
	if err := json.Unmarshal(body, &g); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Nodes) != 7 || len(g.Edges) != 6 {
		t.Errorf("got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	resp, _ = get(t, ts.URL+"/api/mindmap", http.Header{"If-None-Match": {etag}})
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET = %d, want 304", resp.StatusCode)
	}

	resp, body = get(t, ts.URL+"/api/mindmap?cap=1&root=Mind", http.Header{"If-None-Match": {etag}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cap=1 status = %d", resp.StatusCode)
	}
	if resp.Header.Get("ETag") == etag {
		t.Error("ETag unchanged after cap override")
	}
	g = mindmap.Graph{}
	if err := json.Unmarshal(body, &g); err != nil {
		t.Fatal(err)
	}
	if got := g.CountKind(mindmap.KindModel); got != 2 {
		t.Errorf("cap=1 model nodes = %d, want 2", got)
	}
	if root, _ := g.Root(); root.Label != "Mind" {
		t.Errorf("root label = %q", root.Label)
	}
}

func TestMindmapBadQuery(t *testing.T) {
	ts := newTestServer(t, staticLoader())
	for _, q := range []string{"cap=0", "cap=x", "section=Not%20Slug", "refresh=perhaps"} {
		resp, body := get(t, ts.URL+"/api/mindmap?"+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
		var e errorBody
		if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
			t.Errorf("%s: error body = %s", q, body)
		}
	}
}

func TestMindmapLoaderFailure(t *testing.T) {
	ts := newTestServer(t, catalog.LoaderFunc(func(context.Context, catalog.LoadOptions) (*catalog.Snapshot, error) {
		return nil, errors.New(errors.ErrCodeNetwork, "content API unreachable")
	}))
	resp, body := get(t, ts.URL+"/api/mindmap", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"code":"NETWORK_ERROR"`) {
		t.Errorf("body = %s", body)
	}
}

func TestRenderedFormats(t *testing.T) {
	ts := newTestServer(t, staticLoader())

	resp, body := get(t, ts.URL+"/api/mindmap.svg", nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("svg: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), `href="https://app.example/domain/thinking"`) {
		t.Error("svg lacks navigation links")
	}

	resp, body = get(t, ts.URL+"/api/mindmap.dot?section=decisions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dot: %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"section-decisions" -- "model-decisions-0";`) {
		t.Errorf("dot body:\n%s", body)
	}
	if strings.Contains(string(body), "model-thinking-0") {
		t.Error("section filter not applied")
	}
}

func TestNavigate(t *testing.T) {
	ts := newTestServer(t, staticLoader())

	tests := []struct {
		node       string
		wantStatus int
		wantAction string
		wantPath   string
	}{
		{"section-thinking", http.StatusOK, "section", "/domain/thinking"},
		{"model-thinking-0", http.StatusOK, "model", "/model/thinking/0"},
		{"center", http.StatusOK, "none", ""},
		{"model-thinking-9", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.node, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/navigate/"+tt.node, nil)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var intent struct {
				Action     string `json:"action"`
				Path       string `json:"path"`
				ModelIndex *int   `json:"model_index"`
			}
			if err := json.Unmarshal(body, &intent); err != nil {
				t.Fatal(err)
			}
			if intent.Action != tt.wantAction || intent.Path != tt.wantPath {
				t.Errorf("intent = %+v", intent)
			}
			if tt.wantAction == "model" && (intent.ModelIndex == nil || *intent.ModelIndex != 0) {
				t.Error("model index 0 not reported")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, staticLoader())
	resp, _ := get(t, ts.URL+"/api/mindmap", http.Header{"Origin": {"https://app.example"}})
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestEtagMatches(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`*`, true},
		{`"abd"`, false},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatches(%q) = %v", tt.header, got)
		}
	}
}
