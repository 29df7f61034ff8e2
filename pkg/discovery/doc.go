// Package discovery finds the Markdown files ascfix should process.
//
// Arguments may name files or directories. Files named explicitly are always
// returned; directories are walked recursively in lexical order, skipping
// .git, files whose extension is not in [Options.Extensions], and paths
// excluded by .gitignore files found along the way.
//
// # Gitignore support
//
// Each directory's .gitignore applies to the paths below it. Rules are
// evaluated from the outermost file to the innermost, in file order, and the
// last matching rule decides. Supported syntax: comments, negation with "!",
// a trailing "/" restricting the rule to directories, a leading or embedded
// "/" anchoring the rule to its directory, and the wildcards "*", "?" and
// "**". An ignored directory is never entered, so negated rules cannot
// re-include files below it, as in git.
package discovery
