package lexer

import (
	"fmt"
	"unicode/utf8"

	"strlint/internal/cluster"
	"strlint/internal/diag"
)

const maxScalar = 0x10FFFF

// scanString decodes one "..."-literal starting at the current cursor
// position. Escape-ошибки уходят в Reporter; декодирование при этом
// продолжается, чтобы не терять остальной литерал.
func (s *Scanner) scanString() Literal {
	start := s.cursor.Mark()
	s.cursor.Bump() // opening '"'

	lit := Literal{}
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == '"' {
			s.cursor.Bump()
			lit.Span = s.cursor.SpanFrom(start)
			lit.Terminated = true
			return lit
		}
		if b == '\n' {
			// перевод строки в строковом литерале — ошибка
			sp := s.cursor.SpanFrom(start)
			s.errLex(diag.LexNewlineInString, sp, "newline in string literal")
			lit.Span = sp
			return lit
		}
		scalarStart := s.cursor.Mark()
		if b == '\\' {
			sc, ok := s.scanEscape()
			if ok {
				lit.Scalars = append(lit.Scalars, sc)
				lit.ScalarSpans = append(lit.ScalarSpans, s.cursor.SpanFrom(scalarStart))
			}
			continue
		}
		r := s.cursor.BumpRune()
		lit.Scalars = append(lit.Scalars, cluster.Scalar{Value: r, Authored: cluster.FormLiteral})
		lit.ScalarSpans = append(lit.ScalarSpans, s.cursor.SpanFrom(scalarStart))
	}

	// EOF без закрывающей кавычки
	sp := s.cursor.SpanFrom(start)
	s.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	lit.Span = sp
	return lit
}

// scanEscape decodes one escape sequence after the cursor's '\'.
// On malformed input it reports and resynchronizes by emitting the
// escaped character literally, so analysis keeps going.
func (s *Scanner) scanEscape() (cluster.Scalar, bool) {
	start := s.cursor.Mark()
	s.cursor.Bump() // '\\'
	if s.cursor.EOF() {
		s.errLex(diag.LexBadEscape, s.cursor.SpanFrom(start), "escape at end of input")
		return cluster.Scalar{}, false
	}

	b := s.cursor.Bump()
	switch b {
	case 'n':
		return cluster.Scalar{Value: '\n', Authored: cluster.FormSpecialEscape}, true
	case 't':
		return cluster.Scalar{Value: '\t', Authored: cluster.FormSpecialEscape}, true
	case 'r':
		return cluster.Scalar{Value: '\r', Authored: cluster.FormSpecialEscape}, true
	case '0':
		return cluster.Scalar{Value: 0, Authored: cluster.FormSpecialEscape}, true
	case '"':
		return cluster.Scalar{Value: '"', Authored: cluster.FormSpecialEscape}, true
	case '\'':
		return cluster.Scalar{Value: '\'', Authored: cluster.FormSpecialEscape}, true
	case '\\':
		return cluster.Scalar{Value: '\\', Authored: cluster.FormSpecialEscape}, true
	case 'x':
		return s.scanHexEscape(start)
	case 'u':
		return s.scanUnicodeEscape(start)
	default:
		s.errLex(diag.LexBadEscape, s.cursor.SpanFrom(start), fmt.Sprintf("unknown escape \\%c", b))
		// восстанавливаемся: символ после '\' считаем литеральным
		return cluster.Scalar{Value: rune(b), Authored: cluster.FormLiteral}, true
	}
}

// \xNN — ровно две шестнадцатеричные цифры.
func (s *Scanner) scanHexEscape(start Mark) (cluster.Scalar, bool) {
	var v rune
	for i := 0; i < 2; i++ {
		d, ok := hexDigit(s.cursor.Peek())
		if !ok {
			s.errLex(diag.LexBadUnicodeEscape, s.cursor.SpanFrom(start), "\\x needs two hex digits")
			return cluster.Scalar{}, false
		}
		s.cursor.Bump()
		v = v<<4 | d
	}
	return cluster.Scalar{Value: v, Authored: cluster.FormUnicodeEscape}, true
}

// \u{...} — от одной до шести шестнадцатеричных цифр.
func (s *Scanner) scanUnicodeEscape(start Mark) (cluster.Scalar, bool) {
	if !s.cursor.Eat('{') {
		s.errLex(diag.LexBadUnicodeEscape, s.cursor.SpanFrom(start), "\\u needs {...}")
		return cluster.Scalar{}, false
	}
	var v rune
	digits := 0
	for {
		d, ok := hexDigit(s.cursor.Peek())
		if !ok {
			break
		}
		s.cursor.Bump()
		digits++
		if digits > 6 {
			s.errLex(diag.LexBadUnicodeEscape, s.cursor.SpanFrom(start), "\\u{...} has at most six hex digits")
			s.skipToBrace()
			return cluster.Scalar{}, false
		}
		v = v<<4 | d
	}
	if !s.cursor.Eat('}') || digits == 0 {
		s.errLex(diag.LexBadUnicodeEscape, s.cursor.SpanFrom(start), "malformed \\u{...} escape")
		return cluster.Scalar{}, false
	}
	if v > maxScalar || (v >= 0xD800 && v <= 0xDFFF) {
		s.errLex(diag.LexEscapeOutOfRange, s.cursor.SpanFrom(start),
			fmt.Sprintf("\\u{%X} is not a Unicode scalar value", v))
		return cluster.Scalar{Value: utf8.RuneError, Authored: cluster.FormUnicodeEscape}, true
	}
	return cluster.Scalar{Value: v, Authored: cluster.FormUnicodeEscape}, true
}

func (s *Scanner) skipToBrace() {
	for !s.cursor.EOF() && s.cursor.Peek() != '}' && s.cursor.Peek() != '"' && s.cursor.Peek() != '\n' {
		s.cursor.Bump()
	}
	s.cursor.Eat('}')
}

func hexDigit(b byte) (rune, bool) {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0'), true
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return rune(b-'A') + 10, true
	}
	return 0, false
}
