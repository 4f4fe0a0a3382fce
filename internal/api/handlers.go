package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gregorypanta/mental-models-app/pkg/buildinfo"
	"github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/graph"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleMindmap(w http.ResponseWriter, r *http.Request) {
	g, rev, ok := s.buildGraph(w, r)
	if !ok {
		return
	}
	etag := `"` + rev + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := graph.WriteGraph(g, w); err != nil {
		s.logger.Error("write graph", "err", err)
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.renderFormat(w, r, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	s.renderFormat(w, r, pipeline.FormatDOT, "text/vnd.graphviz; charset=utf-8")
}

func (s *Server) renderFormat(w http.ResponseWriter, r *http.Request, format, contentType string) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g, rev, ok := s.buildGraphWith(w, r, opts)
	if !ok {
		return
	}
	opts.Formats = []string{format}
	opts.Links = true
	artifacts, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("ETag", `"`+rev+"-"+format+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	g, _, ok := s.buildGraph(w, r)
	if !ok {
		return
	}
	intent, found := g.NavigateID(nodeID)
	if !found {
		s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", nodeID))
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

func (s *Server) buildGraph(w http.ResponseWriter, r *http.Request) (mindmap.Graph, string, bool) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, err)
		return mindmap.Graph{}, "", false
	}
	return s.buildGraphWith(w, r, opts)
}

func (s *Server) buildGraphWith(w http.ResponseWriter, r *http.Request, opts pipeline.Options) (mindmap.Graph, string, bool) {
	snap, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return mindmap.Graph{}, "", false
	}
	g := s.runner.Layout(r.Context(), snap, opts)
	rev, err := graph.Revision(g)
	if err != nil {
		s.writeError(w, err)
		return mindmap.Graph{}, "", false
	}
	return g, rev, true
}

// requestOptions applies query overrides to the server's base options.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	q := r.URL.Query()

	if v := q.Get("cap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "cap must be a positive integer")
		}
		opts.MaxModelsPerSection = n
	}
	if v := q.Get("section"); v != "" {
		if err := errors.ValidateSlug(v); err != nil {
			return opts, err
		}
		opts.Section = v
	}
	if v := strings.TrimSpace(q.Get("search")); v != "" {
		opts.Search = v
	}
	if v := strings.TrimSpace(q.Get("root")); v != "" {
		opts.RootLabel = v
	}
	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh must be a boolean")
		}
		opts.Refresh = b
	}
	return opts, nil
}

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// etagMatches reports whether an If-None-Match header value matches etag.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
