// Package pipeline repairs whole Markdown documents.
//
// A document passes through up to four stages:
//
//  1. Fences: unbalanced code fences are repaired (opt-in).
//  2. Tables: wrapped table rows are joined (every mode).
//  3. Lists: nested list items are re-indented (opt-in).
//  4. Diagrams: each diagram block found by the scanner goes through
//     detect, normalize and render (diagram and check modes).
//
// Diagram repair is conservative. A block is only replaced when every
// safety gate passes; otherwise the original lines are kept and the block
// report records why. See [Outcome].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.ProcessDocument(ctx, content, pipeline.Options{Mode: pipeline.ModeDiagram})
//	if err != nil {
//	    return err
//	}
//	if res.Changed {
//	    os.WriteFile(path, []byte(res.Content), 0o644)
//	}
//
// [Process] runs the same stages without caching, logging or hooks.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ascfix/pkg/buildinfo"
	"github.com/matzehuels/ascfix/pkg/cache"
	"github.com/matzehuels/ascfix/pkg/diagram/normalize"
	"github.com/matzehuels/ascfix/pkg/errors"
)

// Mode selects what a run may change.
type Mode string

const (
	// ModeSafe only unwraps tables (and fences when requested).
	ModeSafe Mode = "safe"
	// ModeDiagram also repairs diagrams.
	ModeDiagram Mode = "diagram"
	// ModeCheck computes the diagram-mode result; callers never write it.
	ModeCheck Mode = "check"
)

const (
	// DefaultMaxLineLength matches the formatting.max_line_length default.
	DefaultMaxLineLength = 120

	// DefaultTTL is how long processed documents stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// ParseMode converts a mode name; an empty name selects ModeSafe.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeSafe, nil
	}
	if err := errors.ValidateMode(s); err != nil {
		return "", err
	}
	return Mode(s), nil
}

// RepairsDiagrams reports whether diagrams are processed in m.
func (m Mode) RepairsDiagrams() bool {
	return m == ModeDiagram || m == ModeCheck
}

// Options configures a run.
type Options struct {
	Mode   Mode `json:"mode"`
	Fences bool `json:"fences,omitempty"`
	Lists  bool `json:"lists,omitempty"`

	// Formatting settings; see the [formatting] config section.
	MaxLineLength    int  `json:"max_line_length,omitempty"`
	PreserveUnicode  bool `json:"preserve_unicode,omitempty"`
	ValidateDiagrams bool `json:"validate_diagrams,omitempty"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"-"`

	// TTL for cached results; zero selects DefaultTTL.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// DefaultOptions returns the options matching the default configuration.
func DefaultOptions() Options {
	return Options{
		Mode:            ModeSafe,
		MaxLineLength:   DefaultMaxLineLength,
		PreserveUnicode: true,
	}
}

// ValidateAndSetDefaults checks the mode and fills zero values.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	mode, err := ParseMode(string(o.Mode))
	if err != nil {
		return err
	}
	o.Mode = mode
	if o.MaxLineLength < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max line length must not be negative")
	}
	if o.MaxLineLength == 0 {
		o.MaxLineLength = DefaultMaxLineLength
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// KeyOpts returns the cache key options for o.
func (o *Options) KeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		Mode:             string(o.Mode),
		Fences:           o.Fences,
		Lists:            o.Lists,
		MaxLineLength:    o.MaxLineLength,
		PreserveUnicode:  o.PreserveUnicode,
		ValidateDiagrams: o.ValidateDiagrams,
		Version:          buildinfo.Version,
	}
}

// Outcome is what happened to one diagram block.
type Outcome string

const (
	OutcomeRepaired  Outcome = "repaired"
	OutcomeUnchanged Outcome = "unchanged"

	// Skip reasons. The block is left exactly as it was.
	SkipNoBoxes     Outcome = "no_boxes"
	SkipLineTooLong Outcome = "line_too_long"
	SkipWideRunes   Outcome = "wide_runes"
	SkipOverlap     Outcome = "overlapping_boxes"
	SkipTextChanged Outcome = "text_changed"
	SkipInvalid     Outcome = "invalid_border"
)

// Skipped reports whether o is a skip reason.
func (o Outcome) Skipped() bool {
	return o != OutcomeRepaired && o != OutcomeUnchanged
}

// BlockReport describes one diagram block of a document.
type BlockReport struct {
	StartLine int              `json:"start_line"`
	EndLine   int              `json:"end_line"`
	Outcome   Outcome          `json:"outcome"`
	Changes   normalize.Result `json:"changes"`
	Duration  time.Duration    `json:"duration_ns"`

	// Before and After hold the block's lines; After and Quality are set
	// only for repaired blocks.
	Before  []string       `json:"before"`
	After   []string       `json:"after,omitempty"`
	Quality *QualityReport `json:"quality,omitempty"`
}

// Stats summarizes a document run.
type Stats struct {
	BlocksScanned   int             `json:"blocks_scanned"`
	BlocksRepaired  int             `json:"blocks_repaired"`
	BlocksUnchanged int             `json:"blocks_unchanged"`
	BlocksSkipped   map[Outcome]int `json:"blocks_skipped,omitempty"`
	FencesRepaired  int             `json:"fences_repaired"`
	TablesUnwrapped bool            `json:"tables_unwrapped"`
	ListItemsFixed  int             `json:"list_items_fixed"`
	Duration        time.Duration   `json:"duration_ns"`
}

func (s *Stats) record(o Outcome) {
	s.BlocksScanned++
	switch o {
	case OutcomeRepaired:
		s.BlocksRepaired++
	case OutcomeUnchanged:
		s.BlocksUnchanged++
	default:
		if s.BlocksSkipped == nil {
			s.BlocksSkipped = make(map[Outcome]int)
		}
		s.BlocksSkipped[o]++
	}
}

// Result is the outcome of processing one document.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string `json:"run_id"`

	Content string        `json:"content"`
	Changed bool          `json:"changed"`
	Blocks  []BlockReport `json:"blocks"`
	Stats   Stats         `json:"stats"`

	// CacheHit is set when the result came from the cache.
	CacheHit bool `json:"cache_hit"`
}
