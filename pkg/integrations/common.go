package integrations

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
)

const httpTimeout = 15 * time.Second

// Sentinel errors shared with the cache package so callers can match either.
var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with the standard request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// JoinURL appends path segments to base, escaping each segment.
//
//	JoinURL("https://host/api", "models", "decision-making", "3")
//	// https://host/api/models/decision-making/3
func JoinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// WithQuery appends non-empty query parameters to rawURL in key order.
func WithQuery(rawURL string, params url.Values) string {
	for k, vs := range params {
		if len(vs) == 0 || vs[0] == "" {
			delete(params, k)
		}
	}
	if len(params) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + params.Encode()
}
