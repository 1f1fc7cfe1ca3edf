package diag

import (
	"strlint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement inside a file.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested change; Preferred marks the suggestion that is
// guaranteed to conform when a diagnostic carries several.
type Fix struct {
	Title     string
	Edits     []FixEdit
	Preferred bool
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
