// Package mongo connects to the MongoDB deployment holding the location
// collections.
//
// Configuration comes from MONGODB_* environment variables through Config.
// New retries the connection until the primary answers a ping, and
// NewWithDatabase returns the configured database:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(context.Background())
//
// Healthcheck plugs the database into the readiness endpoint and reports an
// unseeded database as not ready.
//
// Errors wrap the driver error with errors.Join, so both the package
// sentinel and the driver error can be matched with errors.Is.
package mongo
