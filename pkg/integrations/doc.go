// Package integrations provides HTTP clients for the services the mindmap
// reads from.
//
// # Overview
//
// The [Client] type carries the shared plumbing: JSON GET requests, default
// headers, response caching through [cache.Cache], retries with exponential
// backoff on network failures and 5xx responses, and the HTTP hooks of
// [observability]. Service clients live in subpackages:
//
//   - [contentapi]: the mental-models content API (sections and models)
//
// # Client Pattern
//
//	api := contentapi.NewClient(baseURL, backend, time.Hour)
//	sections, err := api.Sections(ctx, false) // false = use cache
//
// Errors match [ErrNotFound] for 404 responses and [ErrNetwork] for
// transport failures; transient ones are wrapped with [cache.Retryable].
//
// [contentapi]: github.com/gregorypanta/mental-models-app/pkg/integrations/contentapi
// [cache.Cache]: github.com/gregorypanta/mental-models-app/pkg/cache.Cache
// [cache.Retryable]: github.com/gregorypanta/mental-models-app/pkg/cache.Retryable
// [observability]: github.com/gregorypanta/mental-models-app/pkg/observability
package integrations
