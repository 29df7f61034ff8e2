package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Modes are the processing modes accepted by ValidateMode.
var Modes = []string{"safe", "diagram", "check"}

// InspectFormats are the output formats accepted by ValidateFormat.
var InspectFormats = []string{"text", "json", "dot", "svg", "png"}

// ValidateMode checks a processing mode name.
func ValidateMode(mode string) error {
	if !slices.Contains(Modes, mode) {
		return New(ErrCodeInvalidMode, "unknown mode %q (want one of %s)", mode, strings.Join(Modes, ", "))
	}
	return nil
}

// ValidateFormat checks an inspect output format.
func ValidateFormat(format string) error {
	if !slices.Contains(InspectFormats, format) {
		return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", format, strings.Join(InspectFormats, ", "))
	}
	return nil
}

// ValidateExtension validates a file extension filter such as ".md" or
// "md". It rejects empty values, separators and control characters.
func ValidateExtension(ext string) error {
	name := strings.TrimPrefix(ext, ".")
	if name == "" {
		return New(ErrCodeInvalidInput, "extension cannot be empty")
	}
	if strings.ContainsAny(name, "/\\.*?") {
		return New(ErrCodeInvalidInput, "extension %q contains invalid characters", ext)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "extension %q contains invalid characters", ext)
		}
	}
	return nil
}

// ValidateContent checks a document submitted through the API: it must be
// valid-looking text no larger than maxBytes. A maxBytes of 0 disables the
// size check.
func ValidateContent(content string, maxBytes int64) error {
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return New(ErrCodeFileTooLarge, "content is %d bytes, limit is %d", len(content), maxBytes)
	}
	if strings.ContainsRune(content, '\x00') {
		return New(ErrCodeInvalidInput, "content contains null bytes")
	}
	return nil
}
