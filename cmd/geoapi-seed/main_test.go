package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/dataset"
)

func defaults() (seedConfig, dataset.Config) {
	return seedConfig{BatchSize: 1000, Timeout: 30 * time.Minute},
		dataset.Config{Dir: "./data", S3Region: "us-east-1"}
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("no flags keeps environment values", func(t *testing.T) {
		t.Parallel()

		seedCfg, datasetCfg := defaults()
		datasetCfg.S3Bucket = "geo-datasets"

		require.NoError(t, parseFlags(nil, io.Discard, &seedCfg, &datasetCfg))
		assert.Equal(t, 1000, seedCfg.BatchSize)
		assert.Equal(t, 30*time.Minute, seedCfg.Timeout)
		assert.Equal(t, "geo-datasets", datasetCfg.S3Bucket)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		seedCfg, datasetCfg := defaults()
		err := parseFlags([]string{
			"-s3-bucket", "geo-datasets",
			"-s3-prefix", "2026-10",
			"-batch-size", "250",
			"-timeout", "5m",
		}, io.Discard, &seedCfg, &datasetCfg)

		require.NoError(t, err)
		assert.Equal(t, 250, seedCfg.BatchSize)
		assert.Equal(t, 5*time.Minute, seedCfg.Timeout)
		assert.Equal(t, "geo-datasets", datasetCfg.S3Bucket)
		assert.Equal(t, "2026-10", datasetCfg.S3Prefix)
	})

	t.Run("dir wins over configured bucket", func(t *testing.T) {
		t.Parallel()

		seedCfg, datasetCfg := defaults()
		datasetCfg.S3Bucket = "geo-datasets"

		require.NoError(t, parseFlags([]string{"-dir", "/srv/geo"}, io.Discard, &seedCfg, &datasetCfg))
		assert.Equal(t, "/srv/geo", datasetCfg.Dir)
		assert.Empty(t, datasetCfg.S3Bucket)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		t.Parallel()

		for _, args := range [][]string{
			{"-batch-size", "0"},
			{"-batch-size", "many"},
			{"-unknown"},
			{"extra"},
		} {
			seedCfg, datasetCfg := defaults()
			assert.Error(t, parseFlags(args, io.Discard, &seedCfg, &datasetCfg), args)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		seedCfg, datasetCfg := defaults()
		err := parseFlags([]string{"-h"}, io.Discard, &seedCfg, &datasetCfg)
		assert.True(t, errors.Is(err, flag.ErrHelp))
	})
}

type stubS3 struct{}

func (stubS3) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, errors.New("not used")
}

func TestOpenSource(t *testing.T) {
	t.Parallel()

	t.Run("local directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.CountriesFile), []byte(`[]`), 0o600))

		src, origin, err := openSource(context.Background(), dataset.Config{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, origin)
		assert.IsType(t, dataset.DirSource(""), src)

		rc, err := src.Open(context.Background(), dataset.CountriesFile)
		require.NoError(t, err)
		assert.NoError(t, rc.Close())
	})

	t.Run("bucket", func(t *testing.T) {
		t.Parallel()

		src, origin, err := openSource(context.Background(), dataset.Config{
			Dir:      "./data",
			S3Bucket: "geo-datasets",
			S3Prefix: "2026-10",
			S3Region: "eu-central-1",
		}, dataset.WithS3Client(stubS3{}))
		require.NoError(t, err)
		assert.Equal(t, "s3://geo-datasets/2026-10", origin)
		assert.IsType(t, &dataset.S3Source{}, src)
	})

	t.Run("no location", func(t *testing.T) {
		t.Parallel()

		_, _, err := openSource(context.Background(), dataset.Config{})
		assert.ErrorIs(t, err, dataset.ErrInvalidConfig)
	})
}
