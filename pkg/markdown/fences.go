package markdown

import (
	"slices"
	"strings"
)

// FenceType is the character a fence is made of.
type FenceType int

const (
	Backtick FenceType = iota
	Tilde
)

func (t FenceType) char() string {
	if t == Tilde {
		return "~"
	}
	return "`"
}

func (t FenceType) String() string {
	if t == Tilde {
		return "tilde"
	}
	return "backtick"
}

// FenceMarker is a line opening or closing a fenced code block.
type FenceMarker struct {
	Line   int
	Type   FenceType
	Length int
	Info   string
	Indent string
}

// CodeBlock is a paired fence. Closing is nil when the block runs to the end
// of the document. Stray is the last bare marker of the other fence type
// inside an unclosed block, which is likely a mistyped closing marker.
type CodeBlock struct {
	Opening FenceMarker
	Closing *FenceMarker
	Stray   *FenceMarker
}

// FenceIssueKind classifies a fence problem.
type FenceIssueKind int

const (
	Unclosed FenceIssueKind = iota
	LengthMismatch
	TypeMismatch
)

func (k FenceIssueKind) String() string {
	switch k {
	case LengthMismatch:
		return "length_mismatch"
	case TypeMismatch:
		return "type_mismatch"
	default:
		return "unclosed"
	}
}

// FenceIssue is one problem reported by [ValidateFences]. Closing is the
// marker at fault, or nil for an unclosed block.
type FenceIssue struct {
	Kind    FenceIssueKind
	Opening FenceMarker
	Closing *FenceMarker
}

// DetectFences finds every line whose trimmed text starts with three or
// more backticks or tildes. Text after the run is the info string.
func DetectFences(lines []string) []FenceMarker {
	var markers []FenceMarker
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		var typ FenceType
		switch {
		case strings.HasPrefix(trimmed, "```"):
			typ = Backtick
		case strings.HasPrefix(trimmed, "~~~"):
			typ = Tilde
		default:
			continue
		}
		run := len(trimmed) - len(strings.TrimLeft(trimmed, typ.char()))
		markers = append(markers, FenceMarker{
			Line:   i,
			Type:   typ,
			Length: run,
			Info:   strings.TrimSpace(trimmed[run:]),
			Indent: line[:len(line)-len(trimmed)],
		})
	}
	return markers
}

// PairFences pairs markers in document order. Inside an open block only a
// bare marker of the same type and at least the same length closes it;
// every other marker is content.
func PairFences(markers []FenceMarker) []CodeBlock {
	var blocks []CodeBlock
	var open *CodeBlock
	for _, m := range markers {
		if open == nil {
			open = &CodeBlock{Opening: m}
			continue
		}
		if m.Info == "" && m.Type == open.Opening.Type && m.Length >= open.Opening.Length {
			open.Closing = &m
			blocks = append(blocks, *open)
			open = nil
			continue
		}
		if m.Info == "" && m.Type != open.Opening.Type {
			open.Stray = &m
		}
	}
	if open != nil {
		blocks = append(blocks, *open)
	}
	return blocks
}

// ValidateFences reports unclosed blocks, closing markers longer than their
// opener, and unclosed blocks that contain a bare marker of the wrong type.
func ValidateFences(blocks []CodeBlock) []FenceIssue {
	var issues []FenceIssue
	for _, b := range blocks {
		switch {
		case b.Closing != nil && b.Closing.Length != b.Opening.Length:
			issues = append(issues, FenceIssue{Kind: LengthMismatch, Opening: b.Opening, Closing: b.Closing})
		case b.Closing == nil && b.Stray != nil:
			issues = append(issues, FenceIssue{Kind: TypeMismatch, Opening: b.Opening, Closing: b.Stray})
		case b.Closing == nil:
			issues = append(issues, FenceIssue{Kind: Unclosed, Opening: b.Opening})
		}
	}
	return issues
}

// CheckFences runs detection, pairing and validation over lines.
func CheckFences(lines []string) []FenceIssue {
	return ValidateFences(PairFences(DetectFences(lines)))
}

// RepairFences fixes the issues found in lines and returns new lines:
//
//   - a length mismatch shortens the closing marker to the opener's length;
//   - a type mismatch rewrites the stray marker to match the opener;
//   - an unclosed block gets a matching closing marker at the end.
//
// Repair is repeated until the document validates, so fixing one block
// cannot leave a later one broken.
func RepairFences(lines []string) []string {
	out := slices.Clone(lines)
	for range len(lines) + 1 {
		issues := CheckFences(out)
		if len(issues) == 0 {
			break
		}
		issue := issues[0]
		fence := strings.Repeat(issue.Opening.Type.char(), issue.Opening.Length)
		switch issue.Kind {
		case LengthMismatch, TypeMismatch:
			out[issue.Closing.Line] = issue.Closing.Indent + fence
		case Unclosed:
			out = append(out, issue.Opening.Indent+fence)
		}
	}
	return out
}
