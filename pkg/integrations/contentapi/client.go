package contentapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gregorypanta/mental-models-app/pkg/buildinfo"
	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/integrations"
)

// DefaultBaseURL is the production content API.
const DefaultBaseURL = "https://mental-models-backend.onrender.com/api"

// Client fetches sections and models from the content API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
// Responses are cached in backend for ttl; backend may be nil.
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client: integrations.NewClient(backend, "contentapi", ttl, map[string]string{
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: baseURL,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Sections returns every section ordered by index.
func (c *Client) Sections(ctx context.Context, refresh bool) ([]catalog.Section, error) {
	u := integrations.JoinURL(c.baseURL, "sections")
	var out []catalog.Section
	err := c.Cached(ctx, u, refresh, &out, func() error {
		return c.Get(ctx, u, &out)
	})
	return out, err
}

// ModelsQuery narrows a models listing.
type ModelsQuery struct {
	Limit   int
	Section string
	Search  string
}

// Models returns models ordered by (section index, model index).
func (c *Client) Models(ctx context.Context, q ModelsQuery, refresh bool) ([]catalog.Model, error) {
	params := url.Values{
		"section": {q.Section},
		"search":  {q.Search},
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	u := integrations.WithQuery(integrations.JoinURL(c.baseURL, "models"), params)

	var out []catalog.Model
	err := c.Cached(ctx, u, refresh, &out, func() error {
		return c.Get(ctx, u, &out)
	})
	return out, err
}

// Model returns a single model. Missing models match [integrations.ErrNotFound].
func (c *Client) Model(ctx context.Context, sectionSlug string, modelIndex int, refresh bool) (*catalog.Model, error) {
	u := integrations.JoinURL(c.baseURL, "models", sectionSlug, strconv.Itoa(modelIndex))
	var out catalog.Model
	err := c.Cached(ctx, u, refresh, &out, func() error {
		return c.Get(ctx, u, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
