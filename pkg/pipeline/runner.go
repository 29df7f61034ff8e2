package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ascfix/pkg/cache"
	"github.com/matzehuels/ascfix/pkg/errors"
	"github.com/matzehuels/ascfix/pkg/markdown"
	"github.com/matzehuels/ascfix/pkg/observability"
)

// Runner processes documents with caching.
// Both CLI and API use it so caching and instrumentation live in one place.
//
// The Runner holds no per-document state; multiple goroutines can safely
// use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c, "document"),
		Keyer:  keyer,
		Logger: logger,
	}
}

// ProcessDocument runs the pipeline over content, serving repeated inputs
// from the cache. Every call gets a fresh RunID, cached or not.
func (r *Runner) ProcessDocument(ctx context.Context, content string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	start := time.Now()

	key := r.Keyer.DocumentKey(cache.Hash([]byte(content)), opts.KeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.RunID = uuid.NewString()
				cached.CacheHit = true
				opts.Logger.Debug("cache hit", "run_id", cached.RunID, "blocks", len(cached.Blocks))
				hooks.OnDocumentComplete(ctx, string(opts.Mode), cached.Changed, time.Since(start), nil)
				return &cached, nil
			}
		}
	}

	if opts.Mode.RepairsDiagrams() {
		lines, _ := markdown.SplitLines(content)
		hooks.OnScanComplete(ctx, string(opts.Mode), len(markdown.ScanLines(lines)))
	}

	res := Process(content, opts)
	res.RunID = uuid.NewString()
	for _, b := range res.Blocks {
		hooks.OnBlockStart(ctx, b.StartLine)
		hooks.OnBlockComplete(ctx, b.StartLine, string(b.Outcome), b.Duration)
		if b.Outcome.Skipped() {
			opts.Logger.Debug("block skipped", "line", b.StartLine+1, "reason", b.Outcome)
		}
	}

	opts.Logger.Debug("processed document",
		"run_id", res.RunID,
		"mode", opts.Mode,
		"blocks", res.Stats.BlocksScanned,
		"repaired", res.Stats.BlocksRepaired,
		"changed", res.Changed,
		"duration", res.Stats.Duration)

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		}
	} else {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}

	hooks.OnDocumentComplete(ctx, string(opts.Mode), res.Changed, time.Since(start), nil)
	return &res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// InspectDocument returns the inspection of every diagram block in content.
// Inspections are cached under the keyer's inspect key with ttl; zero
// selects DefaultTTL.
func (r *Runner) InspectDocument(ctx context.Context, content string, ttl time.Duration) ([]BlockInspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	key := r.Keyer.InspectKey(cache.Hash([]byte(content)))
	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	} else if hit {
		var cached []BlockInspection
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	blocks := Inspect(content)
	data, err := json.Marshal(blocks)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode inspection")
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	}
	return blocks, nil
}
