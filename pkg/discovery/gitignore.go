package discovery

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignoreRules holds the .gitignore patterns in effect below a walk root.
// Patterns are kept outermost first, so a nested file's patterns override
// its parents' and the last match wins.
type ignoreRules struct {
	root     string
	patterns []gitignore.Pattern
	matcher  gitignore.Matcher
}

func newIgnoreRules(root string) *ignoreRules {
	return &ignoreRules{root: root, matcher: gitignore.NewMatcher(nil)}
}

// with returns r extended by the patterns of a .gitignore in dir. r is not
// modified, so sibling directories never see each other's patterns.
func (r *ignoreRules) with(dir, content string) *ignoreRules {
	domain := r.segments(dir)
	patterns := slices.Clip(r.patterns)
	added := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if !isPattern(line) {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
		added = true
	}
	if !added {
		return r
	}
	return &ignoreRules{root: r.root, patterns: patterns, matcher: gitignore.NewMatcher(patterns)}
}

// isPattern drops blank lines, comments and patterns that name nothing.
// An escaped \# is a literal pattern.
func isPattern(line string) bool {
	if strings.HasPrefix(line, "#") {
		return false
	}
	return strings.Trim(strings.TrimPrefix(line, "!"), "/ \t") != ""
}

// ignored reports whether p, a path below the root, is excluded. A nil r
// ignores nothing.
func (r *ignoreRules) ignored(p string, isDir bool) bool {
	if r == nil || len(r.patterns) == 0 {
		return false
	}
	segs := r.segments(p)
	if len(segs) == 0 {
		return false
	}
	return r.matcher.Match(segs, isDir)
}

// segments splits p relative to the root; paths outside it yield nil.
func (r *ignoreRules) segments(p string) []string {
	rel, err := filepath.Rel(r.root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}
