package io

import (
	"context"

	"github.com/gregorypanta/mental-models-app/pkg/catalog"
)

// FileLoader serves snapshots from a snapshot file, applying the same
// section, search and limit narrowing as the content API.
type FileLoader struct {
	Path string
}

// Load reads the file on every call so edits are picked up.
func (l FileLoader) Load(ctx context.Context, opts catalog.LoadOptions) (*catalog.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	f, err := ImportSnapshot(l.Path)
	if err != nil {
		return nil, err
	}
	return f.Snapshot.Filter(opts), nil
}

var _ catalog.Loader = FileLoader{}
