package resumepdf

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Converter].
	ErrClosed = errors.New("resumepdf: converter is closed")

	// ErrReleased is returned when reading a [Result] after Release.
	ErrReleased = errors.New("resumepdf: result has been released")

	// ErrUnknownSection is returned for a section identifier the
	// dispatcher does not know.
	ErrUnknownSection = errors.New("resumepdf: unknown section")
)

// ValidationError reports a required field that is missing from the
// content document. It is returned before anything is drawn.
type ValidationError struct {
	Section string // e.g. "personalInfo", "experience"
	Field   string // e.g. "name"
	Index   int    // item index within a list section, or -1
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("resumepdf: invalid content: %s[%d].%s is required", e.Section, e.Index, e.Field)
	}
	return fmt.Sprintf("resumepdf: invalid content: %s.%s is required", e.Section, e.Field)
}

// RenderError wraps a failure while measuring, laying out or serializing
// the document. No partial document accompanies it.
type RenderError struct {
	Section Section // empty for backend failures
	Err     error
}

func (e *RenderError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("resumepdf: rendering failed: %v", e.Err)
	}
	return fmt.Sprintf("resumepdf: rendering section %s: %v", e.Section, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// UnsupportedCharError reports a character the core fonts cannot draw.
type UnsupportedCharError struct {
	Rune rune
	Text string
}

func (e *UnsupportedCharError) Error() string {
	return fmt.Sprintf("character %q (U+%04X) is not supported by the core fonts in %q", e.Rune, e.Rune, e.Text)
}
