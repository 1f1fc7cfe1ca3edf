package policy

import (
	"strlint/internal/diag"
	"strlint/internal/escape"
	"strlint/internal/source"
)

// ReportOpts configures the bridge from verdicts to diagnostics.
type ReportOpts struct {
	// LiteralSpan covers the whole literal including quotes; fixes
	// rewrite this span.
	LiteralSpan source.Span
	// SpanOf resolves a flattened scalar index to its source span.
	// Optional; when nil every diagnostic points at LiteralSpan.
	SpanOf func(scalarIdx int) source.Span
	// Quote is the delimiter used when rebuilding the literal text.
	Quote byte
	// PreferEscapes: также советовать escape-форму для литерального
	// не-ASCII текста (info), даже если литерал конформен.
	PreferEscapes bool
}

func (o ReportOpts) quote() string {
	if o.Quote == 0 {
		return `"`
	}
	return string(o.Quote)
}

func (o ReportOpts) spanOf(idx int) source.Span {
	if o.SpanOf != nil {
		return o.SpanOf(idx)
	}
	return o.LiteralSpan
}

var violationCodes = map[ViolationKind]diag.Code{
	MixedRepresentation:        diag.StyleMixedRepresentation,
	IsolatedModifierNotEscaped: diag.StyleIsolatedModifierNotEscaped,
	AttachedModifierEscaped:    diag.StyleAttachedModifierEscaped,
	InvisibleNotEscaped:        diag.StyleInvisibleNotEscaped,
	MissingSpecialEscape:       diag.StyleMissingSpecialEscape,
}

// Report renders a verdict as diagnostics with suggested fixes. The
// always-conforming escaped rendering is attached as the preferred
// fix; the literal-maximizing rendering is attached as well when it
// would itself conform. The unresolved conflict case always carries
// both candidates: there the literal-maximizing rendering keeps its
// mandatory escapes and is offered even though it re-triggers the
// conflict.
func Report(verdict Verdict, decisions []escape.Decision, opts ReportOpts) []diag.Diagnostic {
	var out []diag.Diagnostic

	if verdict.Conforms() {
		if opts.PreferEscapes {
			if d, ok := adviseEscapes(decisions, opts); ok {
				out = append(out, d)
			}
		}
		return out
	}

	escapedBody := opts.quote() + escape.Render(SuggestEscaped(decisions)) + opts.quote()
	literalDecisions, literalOK := SuggestLiteral(decisions)
	if !literalOK {
		literalDecisions = maximizeLiterals(decisions)
	}
	literalBody := opts.quote() + escape.Render(literalDecisions) + opts.quote()

	for _, v := range verdict.Violations {
		code := violationCodes[v.Kind]
		if v.Ambiguous {
			code = diag.StyleAmbiguousRepresentation
		}
		d := diag.NewWarning(code, opts.spanOf(v.Scalar), v.Explanation)
		d = d.WithPreferredFix(
			"escape all non-ASCII text",
			diag.FixEdit{Span: opts.LiteralSpan, NewText: escapedBody},
		)
		switch {
		case v.Ambiguous:
			d = d.WithFix(
				"write printable text literally, keep required escapes",
				diag.FixEdit{Span: opts.LiteralSpan, NewText: literalBody},
			)
			d = d.WithNote(opts.LiteralSpan, "the escape-style rules conflict for this literal; both renderings are shown")
		case literalOK:
			d = d.WithFix(
				"write all printable text literally",
				diag.FixEdit{Span: opts.LiteralSpan, NewText: literalBody},
			)
		}
		out = append(out, d)
	}
	return out
}

// adviseEscapes emits the "allowed but not preferred here" info when
// the configuration asks for escaped non-ASCII text.
func adviseEscapes(decisions []escape.Decision, opts ReportOpts) (diag.Diagnostic, bool) {
	hasStylisticLiteral := false
	for _, d := range decisions {
		if d.Kind == escape.AsLiteral && d.Reason == escape.ReasonStylistic && d.Value >= 0x80 {
			hasStylisticLiteral = true
			break
		}
	}
	if !hasStylisticLiteral {
		return diag.Diagnostic{}, false
	}
	escapedBody := opts.quote() + escape.Render(SuggestEscaped(decisions)) + opts.quote()
	d := diag.New(diag.SevInfo, diag.StyleInfo, opts.LiteralSpan,
		"non-ASCII text is written literally; this configuration prefers escapes")
	d = d.WithPreferredFix(
		"escape all non-ASCII text",
		diag.FixEdit{Span: opts.LiteralSpan, NewText: escapedBody},
	)
	return d, true
}
