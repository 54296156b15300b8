// Package report defines the Reporter boundary spec.md §9 separates
// from classification: classification mutates state only, and a
// reporter renders it at well-defined points (first critical, a
// printable row, end-of-run summary). Text is the shipped monochrome
// implementation; a test harness may substitute another Reporter to
// capture emission without rendering.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonlighthall/tldiff/domain/accumulation"
	"github.com/jonlighthall/tldiff/internal/compare"
)

// Reporter consumes comparison events at the points spec.md §9
// defines: a printable row, the first critical difference, and the
// final summary once the run completes.
type Reporter interface {
	Row(row compare.Row)
	Critical(row compare.Row)
	Summary(result *compare.Result)
}

// Text is a plain-text Reporter, deliberately free of ANSI color
// escapes: terminal color formatting is an out-of-scope collaborator
// concern (spec.md §1).
type Text struct {
	w io.Writer

	headerWritten bool
}

// NewText returns a Text reporter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Row renders one difference-table row, writing the table header
// first if this is the first row of the run.
func (t *Text) Row(row compare.Row) {
	t.writeHeaderOnce()
	fmt.Fprintf(t.w, "%6d %4d %18.8g %18.8g %14.8g\n", row.Line, row.Column, row.Value1, row.Value2, row.RoundedDiff)
}

// Critical renders the single annotated diagnostic row spec.md §4.4
// calls for on the first critical difference.
func (t *Text) Critical(row compare.Row) {
	t.writeHeaderOnce()
	fmt.Fprintf(t.w, "%6d %4d %18.8g %18.8g %14.8g  *** CRITICAL ***\n", row.Line, row.Column, row.Value1, row.Value2, row.RoundedDiff)
}

func (t *Text) writeHeaderOnce() {
	if t.headerWritten {
		return
	}
	t.headerWritten = true
	fmt.Fprintf(t.w, "%6s %4s %18s %18s %14s\n", "line", "col", "value1", "value2", "diff")
}

// Summary renders the end-of-run summary: run ID and fingerprint, the
// CountStats counters, the unit-mismatch flag, the TL-curve scores, the
// error pattern and the verdict. DiffStats maxima and RMSE values are
// not rendered.
func (t *Text) Summary(result *compare.Result) {
	var b strings.Builder

	fmt.Fprintf(&b, "\n--- summary ---\n")
	fmt.Fprintf(&b, "run:                %s (%s)\n", result.RunID, result.Fingerprint)
	fmt.Fprintf(&b, "elements compared:  %d\n", result.Counts.ElemNumber)
	fmt.Fprintf(&b, "non-zero diffs:     %d\n", result.Counts.DiffNonZero)
	fmt.Fprintf(&b, "trivial diffs:      %d\n", result.Counts.DiffTrivial)
	fmt.Fprintf(&b, "non-trivial diffs:  %d\n", result.Counts.DiffNonTrivial)
	fmt.Fprintf(&b, "significant diffs:  %d\n", result.Counts.DiffSignificant)
	fmt.Fprintf(&b, "marginal diffs:     %d\n", result.Counts.DiffMarginal)
	fmt.Fprintf(&b, "critical diffs:     %d\n", result.Counts.DiffCritical)
	fmt.Fprintf(&b, "printed rows:       %d\n", result.Counts.DiffPrint)
	if result.SuppressedRows > 0 {
		fmt.Fprintf(&b, "suppressed rows:    %d\n", result.SuppressedRows)
	}

	if result.Flags.UnitMismatch {
		fmt.Fprintf(&b, "unit mismatch detected at line %d (ratio %.4g)\n", result.Flags.UnitMismatchLine, result.Flags.UnitMismatchRatio)
	}

	fmt.Fprintf(&b, "\nM1 (weighted RMSE):   %.4g  score %.1f\n", result.TLScore.M1, result.TLScore.M1Score)
	fmt.Fprintf(&b, "M2 (tail mean diff):  %.4g  score %.1f\n", result.TLScore.M2, result.TLScore.M2Score)
	fmt.Fprintf(&b, "M3 (correlation):     %.4g  score %.1f\n", result.TLScore.M3, result.TLScore.M3Score)
	fmt.Fprintf(&b, "M-curve:              %.1f\n", result.TLScore.MCurve)

	if result.HasAccumulation {
		a := result.Accumulation
		fmt.Fprintf(&b, "\nerror pattern: %s\n", PatternLabel(a.Pattern))
		fmt.Fprintf(&b, "  %s\n", a.Interpretation)
		fmt.Fprintf(&b, "  recommendation: %s\n", a.Recommendation)
	}

	fmt.Fprintf(&b, "\nverdict: %s (%s)\n", strings.ToUpper(string(result.Verdict.Status)), result.Verdict.Reason)
	if result.Verdict.Detail != "" {
		fmt.Fprintf(&b, "  %s\n", result.Verdict.Detail)
	}

	fmt.Fprint(t.w, b.String())
}

// PatternLabel maps an accumulation.Pattern to the human-facing label
// used in CLI output, kept separate from the Pattern string constants
// so report formatting can change without touching domain logic.
func PatternLabel(p accumulation.Pattern) string {
	return strings.ReplaceAll(string(p), "_", " ")
}
