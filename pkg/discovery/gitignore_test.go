package discovery

import (
	"path/filepath"
	"testing"
)

func rulesFor(patterns string) *ignoreRules {
	root := filepath.FromSlash("/repo")
	return newIgnoreRules(root).with(root, patterns)
}

func TestIgnorePatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"*.log", "a.log", false, true},
		{"*.log", "deep/dir/a.log", false, true},
		{"*.log", "a.md", false, false},
		{"build/", "build", true, true},
		{"build/", "build", false, false},
		{"/top.md", "top.md", false, true},
		{"/top.md", "sub/top.md", false, false},
		{"docs/*.md", "docs/a.md", false, true},
		{"docs/*.md", "x/docs/a.md", false, false},
		{"a/**/z.md", "a/b/c/z.md", false, true},
		{"**/gen", "x/y/gen", true, true},
		{"dra?t.md", "draft.md", false, true},
		{"dra?t.md", "dra/t.md", false, false},
		{`\#literal.md`, "#literal.md", false, true},
		{"trailing.md   ", "trailing.md", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.path, func(t *testing.T) {
			r := rulesFor(tt.pattern)
			p := filepath.Join(r.root, filepath.FromSlash(tt.path))
			if got := r.ignored(p, tt.isDir); got != tt.want {
				t.Errorf("ignored(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsPattern(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"# comment", false},
		{`\#literal`, true},
		{"!keep.md", true},
		{"/", false},
		{"!", false},
		{"*.md", true},
	}
	for _, tt := range tests {
		if got := isPattern(tt.line); got != tt.want {
			t.Errorf("isPattern(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIgnoredLastRuleWins(t *testing.T) {
	outer := rulesFor("*.md\n!README.md\n")
	join := func(p string) string { return filepath.Join(outer.root, filepath.FromSlash(p)) }

	if !outer.ignored(join("a.md"), false) {
		t.Error("ignored(a.md) = false, want true")
	}
	if outer.ignored(join("README.md"), false) {
		t.Error("ignored(README.md) = true, want false")
	}

	inner := outer.with(join("sub"), "README.md\n")
	if !inner.ignored(join("sub/README.md"), false) {
		t.Error("ignored(sub/README.md) = false, want true")
	}
	if inner.ignored(join("README.md"), false) {
		t.Error("inner patterns must not apply outside their directory")
	}
	if outer.ignored(join("sub/README.md"), false) {
		t.Error("with() modified the parent rules")
	}
}

func TestIgnoreRulesEdges(t *testing.T) {
	var disabled *ignoreRules
	if disabled.ignored(filepath.FromSlash("/repo/a.md"), false) {
		t.Error("nil rules ignored a path")
	}
	r := rulesFor("*\n")
	if r.ignored(r.root, true) {
		t.Error("root itself must never be ignored")
	}
	if r.ignored(filepath.FromSlash("/elsewhere/a.md"), false) {
		t.Error("paths outside the root must not match")
	}
	if same := r.with(r.root, "# only a comment\n"); same != r {
		t.Error("with() of a file without patterns should return the receiver")
	}
}
