package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/ascfix/pkg/errors"
)

// DefaultExtensions are the file extensions processed when none are configured.
var DefaultExtensions = []string{".md", ".mdx"}

// Options controls which files Discover returns.
type Options struct {
	// Extensions filters files found while walking directories. Matching is
	// case-insensitive and a missing leading dot is added. Empty means
	// DefaultExtensions.
	Extensions []string

	// RespectGitignore enables .gitignore handling.
	RespectGitignore bool

	// MaxSize marks files larger than this many bytes as TooLarge.
	// Zero disables the limit.
	MaxSize int64
}

// DefaultOptions returns the options used when no configuration is present.
func DefaultOptions() Options {
	return Options{
		Extensions:       slices.Clone(DefaultExtensions),
		RespectGitignore: true,
	}
}

// File is a discovered file.
type File struct {
	Path     string
	Size     int64
	TooLarge bool
}

// ParseExtensions splits a comma-separated extension list such as
// "md, .MDX" into normalized extensions.
func ParseExtensions(s string) []string {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			exts = append(exts, part)
		}
	}
	return NormalizeExtensions(exts)
}

// NormalizeExtensions lowercases extensions, adds the leading dot and drops
// duplicates, keeping the first occurrence.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

// Discover resolves roots to a sorted, de-duplicated list of files.
//
// A root that does not exist yields a FILE_NOT_FOUND error. Explicit file
// roots are returned regardless of their extension. Symbolic links to
// directories are not followed while walking.
func Discover(ctx context.Context, roots []string, opts Options) ([]File, error) {
	exts := NormalizeExtensions(opts.Extensions)
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	w := &walker{
		opts: opts,
		exts: exts,
		seen: make(map[string]File),
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.root(ctx, root); err != nil {
			return nil, err
		}
	}

	files := make([]File, 0, len(w.seen))
	for _, f := range w.seen {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })
	return files, nil
}

type walker struct {
	opts Options
	exts []string
	seen map[string]File
}

func (w *walker) root(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "no such file or directory: %s", root)
		}
		return errors.Wrap(errors.ErrCodeIO, err, "stat %s", root)
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			w.add(root, info)
		}
		return nil
	}

	var rules *ignoreRules
	if w.opts.RespectGitignore {
		rules, err = w.loadIgnore(root, newIgnoreRules(root))
		if err != nil {
			return err
		}
	}
	return w.walk(ctx, root, rules)
}

func (w *walker) walk(ctx context.Context, dir string, rules *ignoreRules) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read directory %s", dir)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int { return strings.Compare(a.Name(), b.Name()) })

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := filepath.Join(dir, e.Name())

		if e.IsDir() {
			if e.Name() == ".git" || rules.ignored(p, true) {
				continue
			}
			sub := rules
			if w.opts.RespectGitignore {
				if sub, err = w.loadIgnore(p, rules); err != nil {
					return err
				}
			}
			if err := w.walk(ctx, p, sub); err != nil {
				return err
			}
			continue
		}

		if !slices.Contains(w.exts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		if rules.ignored(p, false) {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			// Dangling symlink.
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrap(errors.ErrCodeIO, err, "stat %s", p)
		}
		if info.Mode().IsRegular() {
			w.add(p, info)
		}
	}
	return nil
}

func (w *walker) add(p string, info fs.FileInfo) {
	p = filepath.Clean(p)
	w.seen[p] = File{
		Path:     p,
		Size:     info.Size(),
		TooLarge: w.opts.MaxSize > 0 && info.Size() > w.opts.MaxSize,
	}
}

// loadIgnore returns parent extended with dir's .gitignore, if any.
func (w *walker) loadIgnore(dir string, parent *ignoreRules) (*ignoreRules, error) {
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return parent, nil
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", filepath.Join(dir, ".gitignore"))
	}
	return parent.with(dir, string(data)), nil
}
