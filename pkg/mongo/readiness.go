package mongo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	ErrFailedToConnectToMongo = errors.New("mongo: failed to connect")
	ErrEmptyDatabaseName      = errors.New("mongo: database name is empty")
	ErrNotReady               = errors.New("mongo: not ready")
	ErrMissingCollection      = errors.New("mongo: collection missing")
)

// Healthcheck returns a readiness check for db. It pings the primary and,
// when collections are given, requires each of them to exist so that an
// unseeded database is reported as not ready.
func Healthcheck(db *mongo.Database, collections ...string) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			return errors.Join(ErrNotReady, err)
		}
		if len(collections) == 0 {
			return nil
		}

		names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: bson.D{{Key: "$in", Value: collections}}}})
		if err != nil {
			return errors.Join(ErrNotReady, err)
		}
		return missingCollections(collections, names)
	}
}

func missingCollections(want, have []string) error {
	var missing []string
	for _, name := range want {
		if !slices.Contains(have, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingCollection, missing)
	}
	return nil
}
