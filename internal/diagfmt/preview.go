package diagfmt

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Preview готовит однострочный предпросмотр текста замены: невидимые
// символы показываются кодами, текст приводится к NFC и обрезается
// до maxWidth display-колонок.
func Preview(s string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 80
	}

	var b strings.Builder
	for _, r := range norm.NFC.String(s) {
		switch {
		case r == '\n':
			b.WriteString("\\n")
		case r == '\t':
			b.WriteString("\\t")
		case unicode.IsControl(r):
			fmt.Fprintf(&b, "<U+%04X>", r)
		default:
			b.WriteRune(r)
		}
	}

	return runewidth.Truncate(b.String(), maxWidth, "…")
}
