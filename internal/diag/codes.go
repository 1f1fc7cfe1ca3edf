package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические: извлечение и декодирование литералов
	LexInfo               Code = 1000
	LexUnterminatedString Code = 1001
	LexBadEscape          Code = 1002
	LexBadUnicodeEscape   Code = 1003
	LexEscapeOutOfRange   Code = 1004
	LexNewlineInString    Code = 1005

	// Стилевые: нарушения escape-политики
	StyleInfo                       Code = 2000
	StyleMixedRepresentation        Code = 2001
	StyleIsolatedModifierNotEscaped Code = 2002
	StyleAttachedModifierEscaped    Code = 2003
	StyleInvisibleNotEscaped        Code = 2004
	StyleMissingSpecialEscape       Code = 2005
	// Неразрешимый случай: литеральный не-ASCII текст плюс обязательный
	// unicode-escape в одном литерале. Репортим оба варианта рендера.
	StyleAmbiguousRepresentation Code = 2006

	// Сегментация (коллаборатор вернул некорректные границы)
	SegBadBoundaries Code = 3001

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:               "lexical info",
	LexUnterminatedString: "unterminated string literal",
	LexBadEscape:          "invalid escape sequence",
	LexBadUnicodeEscape:   "invalid unicode escape",
	LexEscapeOutOfRange:   "escape denotes an invalid scalar value",
	LexNewlineInString:    "newline in string literal",

	StyleInfo:                       "style info",
	StyleMixedRepresentation:        "literal non-ASCII text mixed with unicode escapes",
	StyleIsolatedModifierNotEscaped: "isolated modifier must be escaped",
	StyleAttachedModifierEscaped:    "attached modifier must stay literal",
	StyleInvisibleNotEscaped:        "invisible or control scalar must be escaped",
	StyleMissingSpecialEscape:       "character requires its short escape form",
	StyleAmbiguousRepresentation:    "no rendering satisfies every escape rule",

	SegBadBoundaries: "grapheme segmenter returned inconsistent boundaries",

	IOLoadFileError: "failed to load file",

	ObsInfo:    "observability info",
	ObsTimings: "phase timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
