// Package lexer extracts quoted string literals from source text and
// decodes their escape sequences into scalars that remember how the
// author spelled them.
//
// This is deliberately not a parser of any particular language: it
// recognizes double-quoted literals and skips line/block comments and
// char literals so stray quotes inside them are not misread. The
// escape-policy engine consumes the decoded scalars; the rest of the
// file is never interpreted.
package lexer

import (
	"strlint/internal/cluster"
	"strlint/internal/diag"
	"strlint/internal/source"
)

// Literal is one extracted string literal.
type Literal struct {
	// Span covers the literal including both quotes.
	Span source.Span
	// Scalars is the decoded content with authored forms.
	Scalars []cluster.Scalar
	// ScalarSpans aligns 1:1 with Scalars: the source bytes each
	// scalar was decoded from.
	ScalarSpans []source.Span
	// Terminated is false when the closing quote is missing.
	Terminated bool
}

// Options configures a Scanner.
type Options struct {
	Reporter diag.Reporter
}

// Scanner walks file content and yields string literals.
type Scanner struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
}

func New(file *source.File, opts Options) *Scanner {
	r := opts.Reporter
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Scanner{
		file:     file,
		cursor:   NewCursor(file),
		reporter: r,
	}
}

// ScanAll collects every literal in the file.
func ScanAll(file *source.File, opts Options) []Literal {
	s := New(file, opts)
	var out []Literal
	for {
		lit, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, lit)
	}
}

// Next returns the next string literal, skipping comments and char
// literals on the way. ok is false at end of input.
func (s *Scanner) Next() (Literal, bool) {
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		switch b {
		case '/':
			if b0, b1, ok := s.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
				s.skipLineComment()
				continue
			}
			if b0, b1, ok := s.cursor.Peek2(); ok && b0 == '/' && b1 == '*' {
				s.skipBlockComment()
				continue
			}
			s.cursor.Bump()
		case '\'':
			s.skipCharLiteral()
		case '"':
			return s.scanString(), true
		default:
			s.cursor.Bump()
		}
	}
	return Literal{}, false
}

func (s *Scanner) skipLineComment() {
	for !s.cursor.EOF() && s.cursor.Peek() != '\n' {
		s.cursor.Bump()
	}
}

func (s *Scanner) skipBlockComment() {
	s.cursor.Bump() // '/'
	s.cursor.Bump() // '*'
	for !s.cursor.EOF() {
		if b0, b1, ok := s.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			s.cursor.Bump()
			s.cursor.Bump()
			return
		}
		s.cursor.Bump()
	}
}

// skipCharLiteral съедает '...' с учётом escape, чтобы кавычка внутри
// ('"') не выглядела началом строки.
func (s *Scanner) skipCharLiteral() {
	s.cursor.Bump() // opening '\''
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == '\\' {
			s.cursor.Bump()
			if !s.cursor.EOF() {
				s.cursor.Bump()
			}
			continue
		}
		if b == '\'' || b == '\n' {
			s.cursor.Bump()
			return
		}
		s.cursor.Bump()
	}
}

func (s *Scanner) errLex(code diag.Code, sp source.Span, msg string) {
	s.reporter.Report(code, diag.SevError, sp, msg, nil, nil)
}
