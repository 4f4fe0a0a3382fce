package pipeline

import (
	"context"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/catalog/mongo"
	"github.com/gregorypanta/mental-models-app/pkg/integrations/contentapi"
	pkgio "github.com/gregorypanta/mental-models-app/pkg/io"
)

// NewLoader returns the catalog loader for opts.Source. HTTP responses are
// cached in c for opts.CacheTTL, or [cache.TTLHTTP] when unset; c may be nil.
//
// The MongoDB loader connects for each load and disconnects afterwards.
// Long-running callers should [mongo.Connect] once and set Runner.Loader.
func NewLoader(opts Options, c cache.Cache) (catalog.Loader, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	switch opts.Source {
	case SourceMongo:
		return mongoLoader(opts.MongoURI, opts.MongoDatabase), nil
	case SourceFile:
		return pkgio.FileLoader{Path: opts.SnapshotPath}, nil
	default:
		ttl := opts.CacheTTL
		if ttl <= 0 {
			ttl = cache.TTLHTTP
		}
		client := contentapi.NewClient(opts.APIURL, c, ttl)
		return contentapi.NewLoader(client), nil
	}
}

func mongoLoader(uri, database string) catalog.Loader {
	return catalog.LoaderFunc(func(ctx context.Context, lo catalog.LoadOptions) (*catalog.Snapshot, error) {
		store, err := mongo.Connect(ctx, uri, database)
		if err != nil {
			return nil, err
		}
		defer store.Close(context.WithoutCancel(ctx))
		return store.Load(ctx, lo)
	})
}
