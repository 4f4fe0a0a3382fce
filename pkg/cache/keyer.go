package cache

import (
	"strings"
)

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// HTTPKey is the key of a cached HTTP response body.
	HTTPKey(namespace, key string) string

	// CatalogKey is the key of a loaded catalog snapshot.
	CatalogKey(source string, opts CatalogKeyOpts) string
}

// CatalogKeyOpts are the load options that change a snapshot's contents.
type CatalogKeyOpts struct {
	Limit   int    `json:"limit"`
	Section string `json:"section,omitempty"`
	Search  string `json:"search,omitempty"`
}

// DefaultKeyer produces plain "kind:..." keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CatalogKey returns "catalog:<hash>" over the source and options.
func (DefaultKeyer) CatalogKey(source string, opts CatalogKeyOpts) string {
	return hashKey("catalog", strings.ToLower(source), opts)
}
