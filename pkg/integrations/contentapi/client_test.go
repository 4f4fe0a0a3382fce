package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	apperrors "github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/integrations"
)

var fixture = catalog.Snapshot{
	Sections: []catalog.Section{
		{Index: 1, Name: "General Thinking", Slug: "thinking", ShortName: "Thinking", ModelCount: 2},
		{Index: 2, Name: "Decision Making", Slug: "decisions", ShortName: "Decisions", ModelCount: 1},
	},
	Models: []catalog.Model{
		{ID: "m1", SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 0, Title: "First Principles"},
		{ID: "m2", SectionIndex: 1, SectionSlug: "thinking", ModelIndex: 1, Title: "Inversion"},
		{ID: "m3", SectionIndex: 2, SectionSlug: "decisions", ModelIndex: 0, Title: "Regret Minimization"},
	},
}

// fakeAPI serves the fixture with the content API's routes and query handling.
func fakeAPI(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sections", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		json.NewEncoder(w).Encode(fixture.Sections)
	})
	mux.HandleFunc("/api/models", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		snap := fixture.Filter(catalog.LoadOptions{
			Limit:   limit,
			Section: q.Get("section"),
			Search:  q.Get("search"),
		})
		json.NewEncoder(w).Encode(snap.Models)
	})
	mux.HandleFunc("/api/models/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/models/"), "/")
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil {
			http.Error(w, "bad index", http.StatusUnprocessableEntity)
			return
		}
		m, ok := fixture.FindModel(parts[0], idx)
		if !ok {
			http.Error(w, `{"detail":"Model not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(m)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server, backend cache.Cache) *Client {
	t.Helper()
	c := NewClient(srv.URL+"/api", backend, time.Hour)
	c.SetHTTPClient(srv.Client())
	return c
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	if got := NewClient("", nil, time.Hour).BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
}

func TestClientSections(t *testing.T) {
	c := newClient(t, fakeAPI(t, nil), nil)

	sections, err := c.Sections(context.Background(), false)
	if err != nil {
		t.Fatalf("Sections() error: %v", err)
	}
	if len(sections) != 2 || sections[1].Slug != "decisions" || sections[0].ModelCount != 2 {
		t.Errorf("Sections() = %+v", sections)
	}
}

func TestClientModels(t *testing.T) {
	c := newClient(t, fakeAPI(t, nil), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		query ModelsQuery
		want  int
	}{
		{"all", ModelsQuery{}, 3},
		{"limit", ModelsQuery{Limit: 1}, 1},
		{"section", ModelsQuery{Section: "thinking"}, 2},
		{"search", ModelsQuery{Search: "regret"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models, err := c.Models(ctx, tt.query, false)
			if err != nil {
				t.Fatalf("Models() error: %v", err)
			}
			if len(models) != tt.want {
				t.Errorf("Models() = %d models, want %d", len(models), tt.want)
			}
		})
	}
}

func TestClientModel(t *testing.T) {
	c := newClient(t, fakeAPI(t, nil), nil)
	ctx := context.Background()

	m, err := c.Model(ctx, "thinking", 0, false)
	if err != nil {
		t.Fatalf("Model() error: %v", err)
	}
	if m.Title != "First Principles" {
		t.Errorf("Model() title = %q", m.Title)
	}

	if _, err := c.Model(ctx, "thinking", 42, false); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Model(missing) error = %v, want ErrNotFound", err)
	}
}

func TestClientCachesResponses(t *testing.T) {
	var hits atomic.Int32
	srv := fakeAPI(t, &hits)
	backend, _ := cache.NewFileCache(t.TempDir())
	c := newClient(t, srv, backend)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Sections(ctx, false); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1", hits.Load())
	}
	if _, err := c.Sections(ctx, true); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("refresh should hit the server: hits = %d", hits.Load())
	}
}

func TestLoader(t *testing.T) {
	l := NewLoader(newClient(t, fakeAPI(t, nil), nil))

	snap, err := l.Load(context.Background(), catalog.LoadOptions{Section: "thinking"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(snap.Sections) != 2 {
		t.Errorf("sections = %d, want 2", len(snap.Sections))
	}
	if len(snap.Models) != 2 {
		t.Errorf("models = %d, want 2", len(snap.Models))
	}
}

func TestLoaderSortsResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sections", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"slug":"systems","index":3},{"slug":"thinking","index":1},{"slug":"decisions","index":2}]`))
	})
	mux.HandleFunc("/api/models", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"section_slug":"decisions","section_index":2,"model_index":0,"title":"Regret"},
			{"section_slug":"thinking","section_index":1,"model_index":1,"title":"Inversion"},
			{"section_slug":"thinking","section_index":1,"model_index":0,"title":"First Principles"}
		]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	snap, err := NewLoader(newClient(t, srv, nil)).Load(context.Background(), catalog.LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var slugs []string
	for _, s := range snap.Sections {
		slugs = append(slugs, s.Slug)
	}
	if got := strings.Join(slugs, ","); got != "thinking,decisions,systems" {
		t.Errorf("section order = %s", got)
	}

	var titles []string
	for _, m := range snap.Models {
		titles = append(titles, m.Title)
	}
	if got := strings.Join(titles, ","); got != "First Principles,Inversion,Regret" {
		t.Errorf("model order = %s", got)
	}
}

func TestLoaderRejectsBadOptions(t *testing.T) {
	l := NewLoader(NewClient("http://127.0.0.1:1/api", nil, time.Hour))
	_, err := l.Load(context.Background(), catalog.LoadOptions{Limit: 1000})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("Load() error = %v, want invalid input", err)
	}
}

func TestLoaderRejectsInvalidSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sections", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"slug":"a","index":1}]`))
	})
	mux.HandleFunc("/api/models", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"orphan","model_index":0}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewLoader(newClient(t, srv, nil)).Load(context.Background(), catalog.LoadOptions{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidModel) {
		t.Errorf("Load() error = %v, want invalid model", err)
	}
}

func TestLoaderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewLoader(newClient(t, srv, nil)).Load(context.Background(), catalog.LoadOptions{})
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("Load() error = %v, want not found", err)
	}
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Error("cause should unwrap to ErrNotFound")
	}
}

func TestClientIdentifiesItself(t *testing.T) {
	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua, accept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		json.NewEncoder(w).Encode(fixture.Sections)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/api", nil, time.Minute)
	if _, err := c.Sections(context.Background(), false); err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if !strings.HasPrefix(ua, "mindmap/") {
		t.Errorf("User-Agent = %q, want mindmap/<version>", ua)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
}
