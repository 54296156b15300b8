package compare

import (
	"context"
	"iter"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/jonlighthall/tldiff/domain/accumulation"
	"github.com/jonlighthall/tldiff/domain/classify"
	"github.com/stretchr/testify/require"
)

func linesOf(text string) iter.Seq[string] {
	all := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if text == "" {
		all = nil
	}
	return slices.Values(all)
}

func defaultThresholds() classify.Thresholds {
	return classify.Thresholds{Significant: 0.05, Critical: 10.0, Print: 1.0}
}

// Scenario 1: identical files.
func TestCompareIdenticalFiles(t *testing.T) {
	text := "1.0 2.0\n3.0 4.0\n"
	d := NewDriver(defaultThresholds(), 0)
	res, err := d.Compare(context.Background(), linesOf(text), linesOf(text))
	require.NoError(t, err)

	require.True(t, res.Flags.FilesAreSame)
	require.Equal(t, 4, res.Counts.ElemNumber)
	require.Zero(t, res.Counts.DiffNonZero)
	require.True(t, res.Verdict.Passed())
}

// Scenario 2: sub-LSB boundary at zero threshold.
func TestCompareSubLSBBoundary(t *testing.T) {
	th := classify.Thresholds{Significant: 0, Critical: 10.0, Print: 1.0}
	d := NewDriver(th, 0)
	res, err := d.Compare(context.Background(), linesOf("30.8\n"), linesOf("30.85\n"))
	require.NoError(t, err)

	require.Equal(t, 1, res.Counts.DiffNonZero)
	require.Equal(t, 1, res.Counts.DiffTrivial)
	require.Zero(t, res.Counts.DiffNonTrivial)
	require.True(t, res.Flags.FilesAreCloseEnough)
	require.True(t, res.Verdict.Passed())
}

// Scenario 4: unit mismatch.
func TestCompareUnitMismatch(t *testing.T) {
	d := NewDriver(defaultThresholds(), 0)
	file1 := "1852.0 10.0\n3704.0 10.0\n5556.0 10.0\n"
	file2 := "1.0 10.0\n2.0 10.0\n3.0 10.0\n"
	res, err := d.Compare(context.Background(), linesOf(file1), linesOf(file2))
	require.NoError(t, err)

	require.True(t, res.Flags.UnitMismatch)
	require.Equal(t, 1, res.Flags.UnitMismatchLine)
	require.InDelta(t, 1852.0, res.Flags.UnitMismatchRatio, 18.52)
}

// Scenario 5: critical encountered mid-stream. The first row's difference
// is under the print threshold; the critical second row is the only
// printed row.
func TestCompareCriticalMidStream(t *testing.T) {
	th := classify.Thresholds{Significant: 0.1, Critical: 1.0, Print: 1.0}
	d := NewDriver(th, 0)
	res, err := d.Compare(context.Background(), linesOf("0.0\n0.0\n"), linesOf("0.5\n2.0\n"))
	require.NoError(t, err)

	require.Equal(t, 2, res.Counts.DiffSignificant)
	require.True(t, res.Flags.HasCriticalDiff)
	require.Equal(t, 1, res.Counts.DiffPrint)
	require.False(t, res.Verdict.Passed())
}

// Scenario 6: percent-mode significance.
func TestComparePercentMode(t *testing.T) {
	th := classify.Thresholds{Significant: 0.05, Critical: 10.0, Print: 1.0, SignificantIsPct: true, SignificantPercent: 0.01}
	d := NewDriver(th, 0)
	res, err := d.Compare(context.Background(), linesOf("101.5\n"), linesOf("100.0\n"))
	require.NoError(t, err)

	require.True(t, res.Flags.HasSignificantDiff)
}

// Scenario 7: systematic growth error pattern.
func TestCompareSystematicGrowthPattern(t *testing.T) {
	var f1, f2 strings.Builder
	for i := 1; i <= 50; i++ {
		r := float64(i)
		tl1 := 60.0 + 0.01*r
		tl2 := 60.0
		f1.WriteString(formatRow(r, tl1))
		f2.WriteString(formatRow(r, tl2))
	}

	th := classify.Thresholds{Significant: 0, Critical: 1000, Print: 0}
	d := NewDriver(th, 0)
	res, err := d.Compare(context.Background(), linesOf(f1.String()), linesOf(f2.String()))
	require.NoError(t, err)
	require.True(t, res.HasAccumulation)
	require.InDelta(t, 0.01, res.Accumulation.Slope, 0.005)
	require.Equal(t, accumulation.PatternSystematicGrowth, res.Accumulation.Pattern)
}

func formatRow(r, tl float64) string {
	return strconv.FormatFloat(r, 'f', 2, 64) + " " + strconv.FormatFloat(tl, 'f', 4, 64) + "\n"
}
