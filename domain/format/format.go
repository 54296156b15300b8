// Package format tracks the per-column minimum decimal-place state of
// a comparison as it advances line by line, detecting column-count or
// precision changes that start a new "format era" (spec.md §4.3).
package format

import "github.com/jonlighthall/tldiff/internal/errors"

// Tracker holds the format-evolution state for one comparison run. Its
// zero value is ready to use.
type Tracker struct {
	perColDP     []int
	prevNCol     int
	haveFirstRow bool

	thisFmtLine   int
	thisFmtColumn int
	lastFmtLine   int

	newFmt bool
}

// NewFmt reports whether the most recent call to ValidateAndTrackColumnFormat
// or InitializeOrUpdateDecimalPlaceFormat changed the format era. It is reset at the start of
// every ValidateAndTrackColumnFormat call, mirroring the "reset per line"
// state in spec.md §4.3.
func (t *Tracker) NewFmt() bool { return t.newFmt }

// ThisFmtLine is the line number at which the current format era began.
func (t *Tracker) ThisFmtLine() int { return t.thisFmtLine }

// ThisFmtColumn is the column index at which the current format era's
// triggering change was observed.
func (t *Tracker) ThisFmtColumn() int { return t.thisFmtColumn }

// LastFmtLine is the line number of the most recent format change.
func (t *Tracker) LastFmtLine() int { return t.lastFmtLine }

// ValidateAndTrackColumnFormat is the per-line entry point of spec.md
// §4.3. It validates that both files report the same column count and
// tracks whether the column count changed from the previous line,
// starting a new format era if so.
func (t *Tracker) ValidateAndTrackColumnFormat(nCol1, nCol2, lineNumber int) error {
	t.newFmt = false

	if nCol1 != nCol2 {
		return errors.StructureMismatch(lineNumber, nCol1, nCol2)
	}

	if !t.haveFirstRow {
		t.prevNCol = nCol1
		t.haveFirstRow = true
		t.newFmt = false
		return nil
	}

	if nCol1 != t.prevNCol {
		t.perColDP = nil
		t.newFmt = true
		t.thisFmtLine = lineNumber
		t.lastFmtLine = lineNumber
	}
	t.prevNCol = nCol1
	return nil
}

// InitializeOrUpdateDecimalPlaceFormat is the per-column entry point of
// spec.md §4.3. It records or updates the minimum printed decimal
// places observed for columnIndex within the current format era.
func (t *Tracker) InitializeOrUpdateDecimalPlaceFormat(minDP, columnIndex, lineNumber int) {
	if columnIndex == len(t.perColDP) {
		t.perColDP = append(t.perColDP, minDP)
		t.newFmt = true
		t.thisFmtLine = lineNumber
		t.thisFmtColumn = columnIndex
		t.lastFmtLine = lineNumber
		return
	}
	if t.perColDP[columnIndex] != minDP {
		t.perColDP[columnIndex] = minDP
		t.newFmt = true
		t.thisFmtLine = lineNumber
		t.lastFmtLine = lineNumber
	}
}

// ColumnDP returns the current minimum decimal places tracked for
// columnIndex, and whether that column has been observed yet.
func (t *Tracker) ColumnDP(columnIndex int) (int, bool) {
	if columnIndex < 0 || columnIndex >= len(t.perColDP) {
		return 0, false
	}
	return t.perColDP[columnIndex], true
}

// Threshold returns the format-derived significance cutoff for a
// column of minimum decimal places d: max(10^-d, significant), unless
// significant is zero or percent-mode is active, in which case the
// format-derived component is not applied (spec.md §4.3, §4.4).
func Threshold(minDP int, significant float64, zeroThresholdMode, percentMode bool) float64 {
	if zeroThresholdMode || percentMode {
		return significant
	}
	formatDerived := pow10Neg(minDP)
	if formatDerived > significant {
		return formatDerived
	}
	return significant
}

func pow10Neg(d int) float64 {
	result := 1.0
	for i := 0; i < d; i++ {
		result /= 10
	}
	return result
}
