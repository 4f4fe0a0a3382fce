package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

// Document is the serialized form of a graph.
type Document struct {
	Revision string `json:"revision,omitempty"`
	mindmap.Graph
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph encodes g as indented JSON with its revision.
func MarshalGraph(g mindmap.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes g as indented JSON to w.
func WriteGraph(g mindmap.Graph, w io.Writer) error {
	rev, err := Revision(g)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{Revision: rev, Graph: g}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes g to a JSON file at path.
func WriteGraphFile(g mindmap.Graph, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGraph(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// UnmarshalGraph decodes and validates a graph document.
func UnmarshalGraph(data []byte) (mindmap.Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// ReadGraph decodes a graph document from r and checks it with
// [mindmap.Validate]. The revision field is informational and not checked.
func ReadGraph(r io.Reader) (mindmap.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return mindmap.Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	if err := mindmap.Validate(doc.Graph); err != nil {
		return mindmap.Graph{}, err
	}
	return doc.Graph, nil
}

// ReadGraphFile reads and validates the graph document at path.
func ReadGraphFile(path string) (mindmap.Graph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return mindmap.Graph{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return mindmap.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", path)
	}
	if err != nil {
		return mindmap.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
