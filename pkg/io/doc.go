// Package io reads and writes catalog snapshot files.
//
// # Overview
//
// A snapshot file freezes the catalog (sections and models) so a mind map can
// be laid out and rendered offline, reproduced in tests, or used to seed a
// fresh MongoDB database. `mindmap export` writes one; `--source file` and
// [FileLoader] read it back.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "source": "https://mental-models-backend.onrender.com/api",
//	  "exported_at": "2026-10-18T09:30:00Z",
//	  "sections": [
//	    {"index": 1, "slug": "thinking", "short_name": "Thinking", "model_count": 2}
//	  ],
//	  "models": [
//	    {"section_index": 1, "section_slug": "thinking", "model_index": 0, "title": "First Principles"}
//	  ]
//	}
//
// Field names match the content API, so a raw API dump with only "sections"
// and "models" is also accepted. Derived fields may be omitted: a model's
// section_slug and section_name are filled from its section_index, and
// missing ids and model counts are generated (see catalog.Snapshot.Complete).
//
// # Validation
//
// [ReadSnapshot] and [ImportSnapshot] reject unknown format versions and
// snapshots that fail catalog.Snapshot.Validate, so bad files are caught
// before they reach the layout.
package io
