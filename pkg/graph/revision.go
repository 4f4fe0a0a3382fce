package graph

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
)

// revisionSpace namespaces graph revisions.
var revisionSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/gregorypanta/mental-models-app/graph"))

// Revision returns a deterministic UUIDv5 of g's compact JSON encoding.
func Revision(g mindmap.Graph) (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode graph: %w", err)
	}
	return uuid.NewSHA1(revisionSpace, data).String(), nil
}
