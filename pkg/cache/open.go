package cache

import (
	"context"
	"slices"

	"github.com/matzehuels/ascfix/pkg/errors"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend  string // file, redis, mongo or none; empty means file
	Dir      string // file backend directory; empty means DefaultDir
	RedisURL string
	MongoURI string

	// Prefix namespaces Redis keys. Empty means "ascfix:".
	Prefix string
}

// Open creates the backend described by opts. Errors carry the CACHE_ERROR
// code, or INVALID_CONFIG for an unknown backend or missing address.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeCache, err, "locate cache directory")
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache %s", dir)
		}
		return c, nil

	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
		}
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "ascfix:"
		}
		c, err := NewRedisCache(ctx, opts.RedisURL, prefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return c, nil

	case BackendMongo:
		if opts.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache backend mongo requires mongo_uri")
		}
		c, err := NewMongoCache(ctx, opts.MongoURI, "", "")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open mongo cache")
		}
		return c, nil

	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want one of %v)", opts.Backend, Backends)
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	return name == "" || slices.Contains(Backends, name)
}
