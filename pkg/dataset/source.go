package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Dataset file names.
const (
	CountriesFile = "countries.json"
	StatesFile    = "states.json"
	CitiesFile    = "cities.json"
)

// Source opens named dataset files.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewSource returns an S3Source when cfg.S3Bucket is set and a DirSource
// otherwise.
func NewSource(ctx context.Context, cfg Config, opts ...S3Option) (Source, error) {
	if cfg.S3Bucket != "" {
		return NewS3Source(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Prefix:         cfg.S3Prefix,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			AccessKeyID:    cfg.AccessKeyID,
			SecretKey:      cfg.SecretKey,
			ForcePathStyle: cfg.ForcePathStyle,
		}, opts...)
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: dataset directory is required", ErrInvalidConfig)
	}
	return DirSource(cfg.Dir), nil
}

// DirSource reads files from a local directory.
type DirSource string

// Open implements Source.
func (d DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return f, nil
}
