// Package mongo loads the catalog straight from the MongoDB collections that
// back the content API: "sections" and "mental_models".
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	apperrors "github.com/gregorypanta/mental-models-app/pkg/errors"
)

// Collection names.
const (
	SectionsCollection = "sections"
	ModelsCollection   = "mental_models"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "mental_models"

const connectTimeout = 10 * time.Second

// Store reads (and seeds) the catalog collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for uri and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if err := apperrors.ValidateMongoURI(uri); err != nil {
		return nil, err
	}
	if database == "" {
		database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "ping mongo")
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Load implements [catalog.Loader] with the same ordering, filtering and
// limit as the content API.
func (s *Store) Load(ctx context.Context, opts catalog.LoadOptions) (*catalog.Snapshot, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	var snap catalog.Snapshot
	if err := s.find(ctx, SectionsCollection, bson.D{}, sectionsFindOptions(), &snap.Sections); err != nil {
		return nil, err
	}
	if err := s.find(ctx, ModelsCollection, modelFilter(opts), modelsFindOptions(opts.Limit), &snap.Models); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Model returns one model by address.
func (s *Store) Model(ctx context.Context, sectionSlug string, modelIndex int) (*catalog.Model, error) {
	var m catalog.Model
	err := s.db.Collection(ModelsCollection).
		FindOne(ctx, bson.D{{Key: "section_slug", Value: sectionSlug}, {Key: "model_index", Value: modelIndex}}).
		Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.ErrCodeModelNotFound, "model %s/%d not found", sectionSlug, modelIndex)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "find model")
	}
	return &m, nil
}

// Seed replaces both collections with snap. It is how a fresh database is
// populated from an exported snapshot file.
func (s *Store) Seed(ctx context.Context, snap *catalog.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	if err := replaceAll(ctx, s.db.Collection(SectionsCollection), snap.Sections); err != nil {
		return fmt.Errorf("seed sections: %w", err)
	}
	if err := replaceAll(ctx, s.db.Collection(ModelsCollection), snap.Models); err != nil {
		return fmt.Errorf("seed models: %w", err)
	}
	return nil
}

func replaceAll[T any](ctx context.Context, coll *mongo.Collection, items []T) error {
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

func (s *Store) find(ctx context.Context, collection string, filter any, opts *options.FindOptions, out any) error {
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "query %s", collection)
	}
	if err := cur.All(ctx, out); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "decode %s", collection)
	}
	return nil
}

var noID = bson.D{{Key: "_id", Value: 0}}

func sectionsFindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "index", Value: 1}}).
		SetProjection(noID)
}

func modelsFindOptions(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "section_index", Value: 1}, {Key: "model_index", Value: 1}}).
		SetProjection(noID).
		SetLimit(int64(limit))
}

// modelFilter builds the models query. Search text is matched literally and
// case-insensitively against title, explanation and example.
func modelFilter(opts catalog.LoadOptions) bson.D {
	filter := bson.D{}
	if opts.Section != "" {
		filter = append(filter, bson.E{Key: "section_slug", Value: opts.Section})
	}
	if opts.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "explanation", Value: re}},
			bson.D{{Key: "example", Value: re}},
		}})
	}
	return filter
}

var _ catalog.Loader = (*Store)(nil)
