package contentapi

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	apperrors "github.com/gregorypanta/mental-models-app/pkg/errors"
	"github.com/gregorypanta/mental-models-app/pkg/integrations"
)

// Loader loads catalog snapshots from the content API.
type Loader struct {
	client *Client
}

// NewLoader wraps client as a [catalog.Loader].
func NewLoader(client *Client) *Loader {
	return &Loader{client: client}
}

// Load fetches sections and models concurrently, then sorts and validates
// the result.
func (l *Loader) Load(ctx context.Context, opts catalog.LoadOptions) (*catalog.Snapshot, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	var snap catalog.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sections, err := l.client.Sections(gctx, opts.Refresh)
		snap.Sections = sections
		return err
	})
	g.Go(func() error {
		models, err := l.client.Models(gctx, ModelsQuery{
			Limit:   opts.Limit,
			Section: opts.Section,
			Search:  opts.Search,
		}, opts.Refresh)
		snap.Models = models
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wrapErr(err, l.client.BaseURL())
	}

	snap.Sort()
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func wrapErr(err error, baseURL string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, "content API %s", baseURL)
	case errors.Is(err, integrations.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeNotFound, err, "content API %s", baseURL)
	default:
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "content API %s", baseURL)
	}
}

var _ catalog.Loader = (*Loader)(nil)
