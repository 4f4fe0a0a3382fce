// Package catalog defines the mental-models catalog as the mindmap loads it:
// sections, their models, and the [Loader] contract that fetches a
// [Snapshot] of both.
//
// Loaders live next to their transport:
//
//   - contentapi.Loader reads the HTTP content API
//   - mongo.Loader reads the MongoDB collections directly
//   - io.FileLoader reads a snapshot file written by `mindmap export`
//
// Every loader returns sections ordered by index and models ordered by
// (section index, model index), and validates the snapshot before handing it
// on, so precondition violations surface here rather than in the layout.
package catalog
