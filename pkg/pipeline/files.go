package pipeline

import (
	"context"
	"os"
	"runtime"

	"github.com/google/renameio/v2"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ascfix/pkg/discovery"
	"github.com/matzehuels/ascfix/pkg/errors"
)

// FileStatus is the outcome of processing one file.
type FileStatus string

const (
	StatusModified  FileStatus = "modified"
	StatusUnchanged FileStatus = "unchanged"
	StatusError     FileStatus = "error"
	StatusSkipped   FileStatus = "skipped"
)

// FileResult is the per-file outcome of ProcessFiles.
type FileResult struct {
	Path   string     `json:"file"`
	Status FileStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
	Error  string     `json:"error,omitempty"`

	// Result is nil for skipped and failed files.
	Result *Result `json:"result,omitempty"`

	// Written is set when the file was rewritten in place.
	Written bool `json:"written,omitempty"`

	err error
}

// Err returns the error that failed the file, if any.
func (f FileResult) Err() error { return f.err }

// BatchOptions controls ProcessFiles.
type BatchOptions struct {
	// Jobs bounds the number of files processed at once; zero means
	// runtime.NumCPU().
	Jobs int

	// Write rewrites modified files in place. Check mode never writes.
	Write bool
}

// ProcessFiles processes files in parallel. A failing file does not stop
// the others; its FileResult carries the error. Results are in the order of
// files. The returned error is non-nil only when ctx ends the run early.
func (r *Runner) ProcessFiles(ctx context.Context, files []discovery.File, opts Options, batch BatchOptions) ([]FileResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	jobs := batch.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.processFile(gctx, f, opts, batch.Write && opts.Mode != ModeCheck)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) processFile(ctx context.Context, f discovery.File, opts Options, write bool) FileResult {
	fr := FileResult{Path: f.Path}
	if f.TooLarge {
		fr.Status = StatusSkipped
		fr.Reason = "exceeds max_size"
		opts.Logger.Warn("skipping large file", "path", f.Path, "size", f.Size)
		return fr
	}

	fail := func(err error) FileResult {
		fr.Status = StatusError
		fr.Error = errors.UserMessage(err)
		fr.err = err
		opts.Logger.Error("processing failed", "path", f.Path, "err", err)
		return fr
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return fail(errors.New(errors.ErrCodeFileNotFound, "no such file: %s", f.Path))
		}
		return fail(errors.Wrap(errors.ErrCodeIO, err, "read %s", f.Path))
	}
	if err := errors.ValidateContent(string(data), 0); err != nil {
		return fail(err)
	}

	res, err := r.ProcessDocument(ctx, string(data), opts)
	if err != nil {
		return fail(err)
	}
	fr.Result = res
	fr.Status = StatusUnchanged
	if res.Changed {
		fr.Status = StatusModified
		if write {
			if err := WriteFileAtomic(f.Path, []byte(res.Content)); err != nil {
				return fail(err)
			}
			fr.Written = true
		}
	}
	opts.Logger.Info("processed file",
		"path", f.Path,
		"status", fr.Status,
		"blocks", res.Stats.BlocksScanned,
		"repaired", res.Stats.BlocksRepaired,
		"duration", res.Stats.Duration)
	return fr
}

// WriteFileAtomic replaces path with data via a temporary file in the same
// directory, keeping the original permissions. New files get 0644.
func WriteFileAtomic(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644, renameio.WithExistingPermissions()); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// ProcessingStats aggregates file results.
type ProcessingStats struct {
	Total     int `json:"total"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
	Errors    int `json:"errors"`
	Skipped   int `json:"skipped"`
}

// Summarize counts results by status. Skipped files are not part of Total.
func Summarize(results []FileResult) ProcessingStats {
	var s ProcessingStats
	for _, r := range results {
		switch r.Status {
		case StatusModified:
			s.Total++
			s.Modified++
		case StatusUnchanged:
			s.Total++
			s.Unchanged++
		case StatusError:
			s.Total++
			s.Errors++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}
