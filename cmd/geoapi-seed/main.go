// Command geoapi-seed loads countries.json, states.json and cities.json from
// a local directory or an S3 prefix into MongoDB.
//
// Documents are upserted by id, so the command can be re-run against a
// populated database to refresh it.
//
// Flags override the matching environment variables:
//
//	geoapi-seed -dir ./data
//	geoapi-seed -s3-bucket geo-datasets -s3-prefix 2026-10 -batch-size 500
//
// Passing -dir always reads local files, even when DATASET_S3_BUCKET is set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/geoapi/internal/location"
	"github.com/dmitrymomot/geoapi/pkg/config"
	"github.com/dmitrymomot/geoapi/pkg/dataset"
	"github.com/dmitrymomot/geoapi/pkg/environment"
	"github.com/dmitrymomot/geoapi/pkg/logger"
	"github.com/dmitrymomot/geoapi/pkg/mongo"
)

type seedConfig struct {
	Env       string        `env:"APP_ENV" envDefault:"development"`
	Name      string        `env:"APP_NAME" envDefault:"geoapi-seed"`
	BatchSize int           `env:"SEED_BATCH_SIZE" envDefault:"1000"`
	Timeout   time.Duration `env:"SEED_TIMEOUT" envDefault:"30m"`
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("seeding failed", logger.Error(err))
		os.Exit(1)
	}
}

// parseFlags applies command line overrides on top of the loaded config.
func parseFlags(args []string, output io.Writer, seedCfg *seedConfig, datasetCfg *dataset.Config) error {
	fs := flag.NewFlagSet("geoapi-seed", flag.ContinueOnError)
	fs.SetOutput(output)

	dir := fs.String("dir", datasetCfg.Dir, "read dataset files from this local directory")
	fs.StringVar(&datasetCfg.S3Bucket, "s3-bucket", datasetCfg.S3Bucket, "read dataset files from this S3 bucket")
	fs.StringVar(&datasetCfg.S3Prefix, "s3-prefix", datasetCfg.S3Prefix, "key prefix of the dataset files in the bucket")
	fs.IntVar(&seedCfg.BatchSize, "batch-size", seedCfg.BatchSize, "documents per bulk upsert")
	fs.DurationVar(&seedCfg.Timeout, "timeout", seedCfg.Timeout, "abort the import after this long, 0 disables")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if seedCfg.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", seedCfg.BatchSize)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "dir" {
			datasetCfg.Dir = *dir
			datasetCfg.S3Bucket = ""
		}
	})
	return nil
}

// openSource picks the dataset source and describes it for the log.
func openSource(ctx context.Context, cfg dataset.Config, opts ...dataset.S3Option) (dataset.Source, string, error) {
	src, err := dataset.NewSource(ctx, cfg, opts...)
	if err != nil {
		return nil, "", err
	}
	if cfg.S3Bucket != "" {
		return src, "s3://" + cfg.S3Bucket + "/" + cfg.S3Prefix, nil
	}
	return src, cfg.Dir, nil
}

func run(ctx context.Context, args []string) error {
	var (
		seedCfg    seedConfig
		mongoCfg   mongo.Config
		datasetCfg dataset.Config
		logCfg     logger.Config
	)
	if err := errors.Join(
		config.Load(&seedCfg),
		config.Load(&mongoCfg),
		config.Load(&datasetCfg),
		config.Load(&logCfg),
	); err != nil {
		return err
	}
	if err := parseFlags(args, os.Stderr, &seedCfg, &datasetCfg); err != nil {
		return err
	}

	env, err := environment.Parse(seedCfg.Env)
	if err != nil {
		return err
	}
	logOverrides, err := logger.WithConfig(logCfg)
	if err != nil {
		return err
	}
	log := logger.New(logger.WithEnvironment(env, seedCfg.Name), logOverrides)
	logger.SetAsDefault(log)

	if seedCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, seedCfg.Timeout)
		defer cancel()
	}

	src, origin, err := openSource(ctx, datasetCfg)
	if err != nil {
		return err
	}
	log.Info("reading dataset", slog.String("source", origin))

	mongoCfg.Database = env.DatabaseName(mongoCfg.Database)
	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.Error("mongodb disconnect failed", logger.Component("mongodb"), logger.Error(err))
		}
	}()

	importer := location.NewImporter(db,
		location.WithBatchSize(seedCfg.BatchSize),
		location.WithImportLogger(log),
	)
	if err := importer.EnsureIndexes(ctx); err != nil {
		return err
	}

	start := time.Now()
	stats, err := importer.ImportAll(ctx, src)
	if err != nil {
		return err
	}

	log.Info("dataset imported",
		slog.String("database", mongoCfg.Database),
		slog.Int("countries", stats.Countries),
		slog.Int("states", stats.States),
		slog.Int("cities", stats.Cities),
		logger.Duration(time.Since(start)),
	)
	return nil
}
