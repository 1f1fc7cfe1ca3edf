package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strlint/internal/diag"
	"strlint/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	pathColor = color.New(color.Bold)
	noteColor = color.New(color.FgHiBlack)
	fixColor  = color.New(color.FgGreen)
)

func severityPainter(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

// Pretty форматирует диагностики в человекочитаемый вид с контекстной
// строкой и подчёркиванием. Ширина подчёркивания считается по display
// width, а не по байтам, иначе CJK и эмодзи сбивают каретку.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	prevNoColor := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = prevNoColor }()

	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	f := fs.Get(d.Primary.File)
	if f == nil {
		return fmt.Errorf("pretty: unknown file id %d", d.Primary.File)
	}

	mode := "auto"
	switch opts.PathMode {
	case PathModeAbsolute:
		mode = "absolute"
	case PathModeRelative:
		mode = "relative"
	case PathModeBasename:
		mode = "basename"
	}
	path := f.FormatPath(mode, fs.BaseDir())

	start, end := fs.Resolve(d.Primary)
	sev := severityPainter(d.Severity)

	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n",
		pathColor.Sprint(path), start.Line, start.Col,
		sev.Sprint(d.Severity.String()),
		d.Code.ID(), d.Message); err != nil {
		return err
	}

	if err := writeContext(w, f, start, end, sev); err != nil {
		return err
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %s\n", noteColor.Sprint("note:"), n.Msg); err != nil {
				return err
			}
		}
	}

	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			marker := "fix:"
			if fx.Preferred {
				marker = "fix (preferred):"
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", fixColor.Sprint(marker), fx.Title); err != nil {
				return err
			}
			if opts.ShowPreview {
				for _, e := range fx.Edits {
					if _, err := fmt.Fprintf(w, "    %s\n", Preview(e.NewText, opts.Width)); err != nil {
						return err
					}
				}
			}
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

// writeContext печатает исходную строку и подчёркивание под спаном.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, sev *color.Color) error {
	line := f.GetLine(start.Line)
	if line == "" {
		return nil
	}

	gutter := fmt.Sprintf("%5d | ", start.Line)
	if _, err := fmt.Fprintf(w, "%s%s\n", noteColor.Sprint(gutter), line); err != nil {
		return err
	}

	// колонки 1-based и считаются в байтах; переводим в display width
	startByte := int(start.Col) - 1
	endByte := int(end.Col) - 1
	if end.Line != start.Line {
		endByte = len(line) // многострочный спан подчёркиваем до конца строки
	}
	if startByte > len(line) {
		startByte = len(line)
	}
	if endByte > len(line) {
		endByte = len(line)
	}
	if endByte <= startByte {
		endByte = startByte + 1
	}

	pad := runewidth.StringWidth(line[:startByte])
	width := runewidth.StringWidth(expandSlice(line, startByte, endByte))
	if width < 1 {
		width = 1
	}

	underline := strings.Repeat(" ", len(gutter)+pad) + sev.Sprint("^"+strings.Repeat("~", width-1))
	_, err := fmt.Fprintln(w, underline)
	return err
}

// expandSlice вырезает [start:end), не выходя за границы строки.
func expandSlice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}
