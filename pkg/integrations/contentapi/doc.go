// Package contentapi is a client for the mental-models content API.
//
// The API serves the catalog the mindmap is drawn from:
//
//	GET /sections                      sections ordered by index
//	GET /models?limit=N&section=&search=  models ordered by (section, index)
//	GET /models/{section}/{index}      a single model, 404 when missing
//
// Responses are cached through [integrations.Client]. [Loader] adapts the
// client to [catalog.Loader], fetching sections and models concurrently.
//
// [integrations.Client]: github.com/gregorypanta/mental-models-app/pkg/integrations.Client
// [catalog.Loader]: github.com/gregorypanta/mental-models-app/pkg/catalog.Loader
package contentapi
