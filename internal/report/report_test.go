package report

import (
	"strings"
	"testing"

	"github.com/jonlighthall/tldiff/domain/classify"
	"github.com/jonlighthall/tldiff/domain/verdict"
	"github.com/jonlighthall/tldiff/internal/compare"
)

func TestTextRowWritesHeaderOnce(t *testing.T) {
	var sb strings.Builder
	r := NewText(&sb)
	r.Row(compare.Row{Line: 1, Column: 0, Value1: 1.0, Value2: 1.1, RoundedDiff: 0.1})
	r.Row(compare.Row{Line: 2, Column: 0, Value1: 2.0, Value2: 2.1, RoundedDiff: 0.1})

	out := sb.String()
	if strings.Count(out, "line") != 1 {
		t.Errorf("expected exactly one header line, got output:\n%s", out)
	}
}

func TestTextSummaryContainsVerdict(t *testing.T) {
	var sb strings.Builder
	r := NewText(&sb)
	result := &compare.Result{
		Counts:  classify.CountStats{ElemNumber: 4},
		Flags:   classify.NewFlags(),
		Verdict: verdict.New(false, false, false, false, false, true, ""),
	}
	r.Summary(result)

	out := sb.String()
	if !strings.Contains(out, "PASS") {
		t.Errorf("expected PASS in summary, got:\n%s", out)
	}
}

func TestPatternLabelReplacesUnderscores(t *testing.T) {
	if got := PatternLabel("SYSTEMATIC_GROWTH"); got != "SYSTEMATIC GROWTH" {
		t.Errorf("PatternLabel = %q, want %q", got, "SYSTEMATIC GROWTH")
	}
}
