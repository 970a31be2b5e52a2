package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/geoapi/pkg/dataset"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// DefaultBatchSize is the number of documents per bulk upsert.
const DefaultBatchSize = 1000

var ErrImportFailed = errors.New("location: import failed")

// ImportStats counts the documents read per collection.
type ImportStats struct {
	Countries int
	States    int
	Cities    int
}

// Importer loads dataset files into the location collections.
type Importer struct {
	db        *mongo.Database
	batchSize int
	logger    *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

func WithBatchSize(n int) ImporterOption {
	return func(i *Importer) {
		if n > 0 {
			i.batchSize = n
		}
	}
}

func WithImportLogger(l *slog.Logger) ImporterOption {
	return func(i *Importer) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewImporter creates an Importer writing into db.
func NewImporter(db *mongo.Database, opts ...ImporterOption) *Importer {
	i := &Importer{
		db:        db,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// EnsureIndexes creates the unique id indexes and the indexes backing the
// lookups by iso2 and by country and state code.
func (i *Importer) EnsureIndexes(ctx context.Context) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}
	plain := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys}
	}

	indexes := map[string][]mongo.IndexModel{
		CountriesCollection: {
			unique(bson.D{{Key: "id", Value: 1}}),
			plain(bson.D{{Key: "iso2", Value: 1}}),
		},
		StatesCollection: {
			unique(bson.D{{Key: "id", Value: 1}}),
			plain(bson.D{{Key: "country_code", Value: 1}, {Key: "state_code", Value: 1}}),
		},
		CitiesCollection: {
			unique(bson.D{{Key: "id", Value: 1}}),
			plain(bson.D{{Key: "country_code", Value: 1}, {Key: "state_code", Value: 1}}),
		},
	}

	for _, name := range []string{CountriesCollection, StatesCollection, CitiesCollection} {
		if _, err := i.db.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return errors.Join(ErrImportFailed, fmt.Errorf("create indexes on %s: %w", name, err))
		}
	}
	return nil
}

// ImportAll upserts countries, states and cities from src, keyed by id.
// Parents are imported before children.
func (i *Importer) ImportAll(ctx context.Context, src dataset.Source) (ImportStats, error) {
	var stats ImportStats
	var err error

	if stats.Countries, err = importFile(ctx, i, src, dataset.CountriesFile, CountriesCollection,
		func(c Country) int { return c.ID }); err != nil {
		return stats, err
	}
	if stats.States, err = importFile(ctx, i, src, dataset.StatesFile, StatesCollection,
		func(s State) int { return s.ID }); err != nil {
		return stats, err
	}
	if stats.Cities, err = importFile(ctx, i, src, dataset.CitiesFile, CitiesCollection,
		func(c City) int { return c.ID }); err != nil {
		return stats, err
	}
	return stats, nil
}

func importFile[T any](ctx context.Context, i *Importer, src dataset.Source, file, collection string, id func(T) int) (int, error) {
	start := time.Now()
	rc, err := src.Open(ctx, file)
	if err != nil {
		return 0, errors.Join(ErrImportFailed, err)
	}
	defer rc.Close()

	coll := i.db.Collection(collection)
	b := newBatcher(i.batchSize, func(docs []T) error {
		models := make([]mongo.WriteModel, 0, len(docs))
		for _, doc := range docs {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.D{{Key: "id", Value: id(doc)}}).
				SetReplacement(doc).
				SetUpsert(true))
		}
		_, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
		return err
	})

	n, err := dataset.Decode(rc, b.add)
	if err == nil {
		err = b.flush()
	}
	if err != nil {
		return n, errors.Join(ErrImportFailed, fmt.Errorf("%s: %w", file, err))
	}

	i.logger.InfoContext(ctx, "dataset imported",
		logger.Component("importer"),
		slog.String("collection", collection),
		slog.Int("documents", n),
		logger.Duration(time.Since(start)),
	)
	return n, nil
}

// batcher groups items and hands full batches to write.
type batcher[T any] struct {
	size  int
	items []T
	write func([]T) error
}

func newBatcher[T any](size int, write func([]T) error) *batcher[T] {
	return &batcher[T]{size: size, items: make([]T, 0, size), write: write}
}

func (b *batcher[T]) add(item T) error {
	b.items = append(b.items, item)
	if len(b.items) < b.size {
		return nil
	}
	return b.flush()
}

func (b *batcher[T]) flush() error {
	if len(b.items) == 0 {
		return nil
	}
	err := b.write(b.items)
	b.items = b.items[:0]
	return err
}
