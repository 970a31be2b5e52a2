package location

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/geoapi/pkg/breaker"
	"github.com/dmitrymomot/geoapi/pkg/filter"
)

// Collection names.
const (
	CountriesCollection = "countries"
	StatesCollection    = "states"
	CitiesCollection    = "cities"
)

// QueryRecorder observes store query latency. *metrics.Metrics implements it.
type QueryRecorder interface {
	ObserveStoreQuery(collection string, d time.Duration)
}

type nopQueryRecorder struct{}

func (nopQueryRecorder) ObserveStoreQuery(string, time.Duration) {}

// MongoStore implements Store on top of a MongoDB database.
type MongoStore struct {
	countries *mongo.Collection
	states    *mongo.Collection
	cities    *mongo.Collection
	breaker   *breaker.Breaker
	recorder  QueryRecorder
}

// StoreOption configures a MongoStore.
type StoreOption func(*MongoStore)

// WithBreaker routes every query through b. The breaker should ignore
// ErrNotFound so empty lookups never trip it.
func WithBreaker(b *breaker.Breaker) StoreOption {
	return func(s *MongoStore) {
		s.breaker = b
	}
}

// WithQueryRecorder reports query latency to r.
func WithQueryRecorder(r QueryRecorder) StoreOption {
	return func(s *MongoStore) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewMongoStore creates a Store reading the countries, states and cities
// collections of db.
func NewMongoStore(db *mongo.Database, opts ...StoreOption) *MongoStore {
	s := &MongoStore{
		countries: db.Collection(CountriesCollection),
		states:    db.Collection(StatesCollection),
		cities:    db.Collection(CitiesCollection),
		recorder:  nopQueryRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MongoStore) FindCountries(ctx context.Context, spec filter.Spec) ([]Country, error) {
	return findMany[Country](ctx, s, s.countries, CountryFields, spec)
}

func (s *MongoStore) FindCountry(ctx context.Context, spec filter.Spec) (Country, error) {
	return findOne[Country](ctx, s, s.countries, CountryFields, spec)
}

func (s *MongoStore) FindStates(ctx context.Context, spec filter.Spec) ([]State, error) {
	return findMany[State](ctx, s, s.states, StateFields, spec)
}

func (s *MongoStore) FindState(ctx context.Context, spec filter.Spec) (State, error) {
	return findOne[State](ctx, s, s.states, StateFields, spec)
}

func (s *MongoStore) FindCities(ctx context.Context, spec filter.Spec) ([]City, error) {
	return findMany[City](ctx, s, s.cities, CityFields, spec)
}

func findMany[T any](ctx context.Context, s *MongoStore, coll *mongo.Collection, fields filter.Fields, spec filter.Spec) ([]T, error) {
	query, ok, err := toQuery(fields, spec)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	if !ok {
		return []T{}, nil
	}

	return run(s, coll.Name(), func() ([]T, error) {
		cursor, err := coll.Find(ctx, query, options.Find().
			SetProjection(bson.D{{Key: "_id", Value: 0}}).
			SetSort(bson.D{{Key: "id", Value: 1}}))
		if err != nil {
			return nil, err
		}
		docs := []T{}
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	})
}

func findOne[T any](ctx context.Context, s *MongoStore, coll *mongo.Collection, fields filter.Fields, spec filter.Spec) (T, error) {
	var zero T
	query, ok, err := toQuery(fields, spec)
	if err != nil {
		return zero, errors.Join(ErrStore, err)
	}
	if !ok {
		return zero, ErrNotFound
	}

	return run(s, coll.Name(), func() (T, error) {
		var doc T
		err := coll.FindOne(ctx, query, options.FindOne().
			SetProjection(bson.D{{Key: "_id", Value: 0}})).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return doc, ErrNotFound
		}
		return doc, err
	})
}

func run[T any](s *MongoStore, collection string, fn func() (T, error)) (T, error) {
	start := time.Now()
	var (
		v   T
		err error
	)
	if s.breaker != nil {
		v, err = breaker.Do(s.breaker, fn)
	} else {
		v, err = fn()
	}
	s.recorder.ObserveStoreQuery(collection, time.Since(start))

	if err != nil && !errors.Is(err, ErrNotFound) {
		if mongo.IsTimeout(err) && !errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(err, context.DeadlineExceeded)
		}
		return v, errors.Join(ErrStore, err)
	}
	return v, err
}

// toQuery converts spec to an equality query in key order. Keys outside
// fields are rejected with filter.ErrUnknownField. Int fields are parsed; an
// unparsable value can never match, which is reported as false so the caller
// skips the round trip.
func toQuery(fields filter.Fields, spec filter.Spec) (bson.D, bool, error) {
	if err := fields.Validate(spec); err != nil {
		return nil, false, err
	}
	query := make(bson.D, 0, len(spec))
	for _, key := range spec.Keys() {
		kind, _ := fields.Kind(key)
		value := spec[key]
		if kind == filter.Int {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, false, nil
			}
			query = append(query, bson.E{Key: key, Value: n})
			continue
		}
		query = append(query, bson.E{Key: key, Value: value})
	}
	return query, true, nil
}
