// Package analyze runs the escape-policy pipeline over one literal:
// classify, cluster, decide, check, suggest.
//
// Analysis is pure and synchronous; each literal is independent, so
// callers fan analyses out across goroutines freely as long as the
// shared Segmenter is safe for concurrent read-only use.
package analyze

import (
	"strlint/internal/cluster"
	"strlint/internal/diag"
	"strlint/internal/escape"
	"strlint/internal/grapheme"
	"strlint/internal/lexer"
	"strlint/internal/policy"
	"strlint/internal/source"
)

// Result is the outcome for one literal. Rendered always holds a
// usable body text: the original decisions when the literal conforms,
// the suggested conforming rendering otherwise.
type Result struct {
	Clusters  []cluster.Cluster
	Decisions []escape.Decision
	Verdict   policy.Verdict
	Suggested []escape.Decision // nil when conforming
	Rendered  string
}

// Scalars analyses a decoded scalar sequence.
func Scalars(scalars []cluster.Scalar, seg grapheme.Segmenter) (*Result, error) {
	clusters, err := cluster.Build(scalars, seg)
	if err != nil {
		return nil, err
	}
	decisions := escape.Decide(clusters)
	verdict := policy.Check(clusters, decisions)

	res := &Result{
		Clusters:  clusters,
		Decisions: decisions,
		Verdict:   verdict,
	}
	if verdict.Conforms() {
		res.Rendered = escape.Render(decisions)
	} else {
		res.Suggested = policy.SuggestEscaped(decisions)
		res.Rendered = escape.Render(res.Suggested)
	}
	return res, nil
}

// Literal analyses an extracted literal and reports style diagnostics
// through the bridge in policy.
func Literal(lit lexer.Literal, seg grapheme.Segmenter, opts policy.ReportOpts) (*Result, []diag.Diagnostic, error) {
	res, err := Scalars(lit.Scalars, seg)
	if err != nil {
		return nil, nil, err
	}
	opts.LiteralSpan = lit.Span
	if opts.SpanOf == nil && len(lit.ScalarSpans) == len(lit.Scalars) {
		spans := lit.ScalarSpans
		opts.SpanOf = func(idx int) source.Span {
			if idx >= 0 && idx < len(spans) {
				return spans[idx]
			}
			return lit.Span
		}
	}
	diags := policy.Report(res.Verdict, res.Decisions, opts)
	return res, diags, nil
}
