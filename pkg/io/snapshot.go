package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/errors"
)

// FormatVersion is the snapshot file version written by this package.
const FormatVersion = 1

// File is the on-disk envelope around a snapshot.
type File struct {
	Version    int       `json:"version"`
	Source     string    `json:"source,omitempty"`
	ExportedAt time.Time `json:"exported_at,omitzero"`
	catalog.Snapshot
}

// WriteSnapshot encodes snap as indented JSON. source records where the
// snapshot came from and may be empty.
func WriteSnapshot(w io.Writer, snap *catalog.Snapshot, source string) error {
	f := File{
		Version:    FormatVersion,
		Source:     source,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		Snapshot:   *snap,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSnapshot writes snap to a file at path.
func ExportSnapshot(snap *catalog.Snapshot, source, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(f, snap, source); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSnapshot decodes a snapshot file, completes derived fields and
// validates the result. ReadSnapshot does not close r.
func ReadSnapshot(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	if f.Version > FormatVersion {
		return nil, errors.New(errors.ErrCodeUnsupported, "snapshot version %d is newer than %d", f.Version, FormatVersion)
	}
	f.Snapshot.Complete()
	if err := f.Snapshot.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ImportSnapshot reads the snapshot file at path.
func ImportSnapshot(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	return ReadSnapshot(fh)
}
