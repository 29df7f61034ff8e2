// Package config loads ascfix settings from .ascfix.toml.
//
// The file is looked up in the working directory and then in each parent
// directory; the first one found wins. Missing files are not an error: the
// defaults from [Default] apply. Command-line flags override loaded values.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ascfix/pkg/cache"
	"github.com/matzehuels/ascfix/pkg/discovery"
	"github.com/matzehuels/ascfix/pkg/errors"
)

// FileName is the configuration file searched for by Find.
const FileName = ".ascfix.toml"

// Config is the full configuration.
type Config struct {
	Formatting Formatting `toml:"formatting"`
	Discovery  Discovery  `toml:"discovery"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Formatting controls diagram repair.
type Formatting struct {
	MaxLineLength    int  `toml:"max_line_length"`
	BoxPadding       int  `toml:"box_padding"`
	PreserveUnicode  bool `toml:"preserve_unicode"`
	ValidateDiagrams bool `toml:"validate_diagrams"`
}

// Discovery controls which files are processed.
type Discovery struct {
	Extensions       []string `toml:"extensions"`
	RespectGitignore bool     `toml:"respect_gitignore"`
	MaxSize          int64    `toml:"max_size"`
}

// Cache selects the result cache backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	MongoURI string   `toml:"mongo_uri"`
	TTL      Duration `toml:"ttl"`
}

// Server configures `ascfix serve`.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string such as "168h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Formatting: Formatting{
			MaxLineLength:   120,
			BoxPadding:      1,
			PreserveUnicode: true,
		},
		Discovery: Discovery{
			Extensions:       slices.Clone(discovery.DefaultExtensions),
			RespectGitignore: true,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     Duration{168 * time.Hour},
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Find returns the path of the nearest .ascfix.toml at or above dir, or ""
// when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		p := filepath.Join(dir, FileName)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load reads configuration. An explicit path must exist; with an empty path
// the nearest file at or above the working directory is used, falling back
// to the defaults. The result is validated.
func Load(path string) (Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeIO, err, "get working directory")
		}
		if path, err = Find(wd); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeIO, err, "search for %s", FileName)
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown
// keys are rejected so typos surface.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}
	if c.Formatting.MaxLineLength <= 0 {
		return invalid("formatting.max_line_length must be positive, got %d", c.Formatting.MaxLineLength)
	}
	if c.Formatting.BoxPadding != 1 {
		return invalid("formatting.box_padding: only 1 is supported, got %d", c.Formatting.BoxPadding)
	}
	for _, ext := range c.Discovery.Extensions {
		if err := errors.ValidateExtension(ext); err != nil {
			return invalid("discovery.extensions: %s", errors.UserMessage(err))
		}
	}
	if c.Discovery.MaxSize < 0 {
		return invalid("discovery.max_size must not be negative")
	}
	if !cache.ValidBackend(c.Cache.Backend) {
		return invalid("cache.backend %q is not one of %v", c.Cache.Backend, cache.Backends)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return invalid("cache.redis_url is required for the redis backend")
	}
	if c.Cache.Backend == cache.BackendMongo && c.Cache.MongoURI == "" {
		return invalid("cache.mongo_uri is required for the mongo backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl must not be negative")
	}
	if c.Server.Addr == "" {
		return invalid("server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return invalid("server.max_body_bytes must be positive")
	}
	return nil
}

// DiscoveryOptions converts the discovery section.
func (c Config) DiscoveryOptions() discovery.Options {
	return discovery.Options{
		Extensions:       c.Discovery.Extensions,
		RespectGitignore: c.Discovery.RespectGitignore,
		MaxSize:          c.Discovery.MaxSize,
	}
}

// CacheOptions converts the cache section.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
		MongoURI: c.Cache.MongoURI,
	}
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Default().Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
