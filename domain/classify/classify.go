// Package classify implements the six-level difference classification
// cascade that is the intellectual center of the comparison: for every
// paired (value1, value2) column entry it decides whether the
// difference is zero, trivial, insignificant, marginal, critical, or
// merely an "error" above the user's threshold, while maintaining the
// monotonic counters, latching flags, and running maxima spec.md §3
// and §4.4 define.
package classify

import "math"

// Domain constants fixed by spec.md §3.
const (
	// Zero is the single-precision epsilon (2^-23), used as "effectively
	// zero" for the raw-difference test.
	Zero = 1.0 / (1 << 23)
	// Marginal is the upper TL band, in dB.
	Marginal = 110.0
	// NdpSinglePrecision is the significant-figure ceiling beyond which a
	// token triggers a PrecisionOverflow advisory.
	NdpSinglePrecision = 7
)

// Ignore is the TL value above which data is numerically meaningless:
// -20*log10(Zero) ≈ 138.47 dB.
var Ignore = -20 * math.Log10(Zero)

// Thresholds holds the user-supplied comparison configuration. It is
// immutable after construction except Significant, which invalidates
// its own cached log value; use SetSignificant to change it safely.
type Thresholds struct {
	Significant        float64
	Critical           float64
	Print              float64
	SignificantIsPct   bool
	SignificantPercent float64

	logSignificant    float64
	logSignificantSet bool
}

// SetSignificant updates the significant threshold and invalidates the
// lazily-computed cache of its log10, per spec.md §9's "mutable caches"
// note.
func (t *Thresholds) SetSignificant(v float64) {
	t.Significant = v
	t.logSignificantSet = false
}

// LogSignificant returns log10(Significant), computed once and cached
// until SetSignificant invalidates it. Callers that only need the
// significant threshold itself should read the field directly.
func (t *Thresholds) LogSignificant() float64 {
	if !t.logSignificantSet {
		t.logSignificant = math.Log10(t.Significant)
		t.logSignificantSet = true
	}
	return t.logSignificant
}

// ZeroThresholdMode reports whether maximum-sensitivity mode is active:
// an absolute (non-percent) significant threshold of exactly zero.
func (t *Thresholds) ZeroThresholdMode() bool {
	return t.Significant == 0 && !t.SignificantIsPct
}

// CountStats holds the monotonically non-decreasing counters of
// spec.md §3.
type CountStats struct {
	LineNumber        int
	ElemNumber        int
	DiffNonZero       int
	DiffTrivial       int
	DiffNonTrivial    int
	DiffSignificant   int
	DiffInsignificant int
	DiffMarginal      int
	DiffCritical      int
	DiffError         int
	DiffNonError      int
	DiffPrint         int
	DiffHighIgnore    int
}

// Flags holds the latching booleans of spec.md §3. NewFlags
// initializes the three "files_are_..." flags true, since they latch
// true→false as counter-evidence accumulates; everything else starts
// false and latches false→true.
type Flags struct {
	NewFmt               bool
	FileEndReached       bool
	ErrorFound           bool
	FileAccessError      bool
	StructuresCompatible bool
	HasNonZeroDiff       bool
	HasNonTrivialDiff    bool
	HasSignificantDiff   bool
	HasMarginalDiff      bool
	HasCriticalDiff      bool
	HasErrorDiff         bool
	HasNonErrorDiff      bool
	HasPrintedDiff       bool
	UnitMismatch         bool
	UnitMismatchLine     int
	UnitMismatchRatio    float64
	Column1IsRangeData   bool
	FilesAreSame         bool
	FilesHaveSameValues  bool
	FilesAreCloseEnough  bool
}

// NewFlags returns a Flags value in its correct initial state.
func NewFlags() Flags {
	return Flags{
		StructuresCompatible: true,
		FilesAreSame:         true,
		FilesHaveSameValues:  true,
		FilesAreCloseEnough:  true,
	}
}

// DiffStats holds the monotonically non-decreasing maxima of spec.md
// §3, each with the decimal-place precision attached at the line that
// produced it.
type DiffStats struct {
	MaxNonZero      float64
	MaxNonTrivial   float64
	MaxSignificant  float64
	MaxPercentError float64

	NdpNonZero    int
	NdpNonTrivial int
	NdpSignificant int
	NdpMax        int
}

// Outcome summarizes where one column comparison landed in the
// cascade, for the driver's RMSE/accumulation accumulation and the
// reporter's row-emission decision.
type Outcome struct {
	IsNonZero     bool
	IsTrivial     bool
	IsNonTrivial  bool
	IsSignificant bool
	IsMarginal    bool
	IsCritical    bool
	IsError       bool

	RawDiff      float64
	RoundedDiff  float64
	PercentError float64 // +Inf sentinel if value2 is effectively zero
	ExceedsPrint bool
}

// Classify runs one column pair through the six-level cascade,
// mutating counts, flags, and diffs in place, and returns a summary of
// the outcome. formatThreshold is the format-derived cutoff from
// domain/format (already folded against the user's significant
// threshold by the caller via format.Threshold).
func Classify(value1, value2 float64, dp1, dp2 int, formatThreshold float64, th *Thresholds, counts *CountStats, flags *Flags, diffs *DiffStats) Outcome {
	minDP := dp1
	if dp2 < minDP {
		minDP = dp2
	}

	rawDiff := math.Abs(value1 - value2)

	var out Outcome
	out.RawDiff = rawDiff

	// Level 1: zero vs non-zero.
	if rawDiff <= Zero {
		return out
	}
	out.IsNonZero = true
	counts.DiffNonZero++
	flags.HasNonZeroDiff = true
	flags.FilesAreSame = false
	updateMax(&diffs.MaxNonZero, &diffs.NdpNonZero, rawDiff, minDP)

	lsb := pow10Neg(minDP)
	halfLSB := lsb / 2
	rounded1 := roundHalfAwayFromZero(value1, minDP)
	rounded2 := roundHalfAwayFromZero(value2, minDP)
	roundedDiff := math.Abs(rounded1 - rounded2)
	out.RoundedDiff = roundedDiff

	// Level 2: trivial vs non-trivial.
	trivial := rounded1 == rounded2 || rawDiff <= halfLSB*(1+1e-12)
	if trivial {
		out.IsTrivial = true
		counts.DiffTrivial++
		return out
	}
	out.IsNonTrivial = true
	counts.DiffNonTrivial++
	flags.HasNonTrivialDiff = true
	updateMax(&diffs.MaxNonTrivial, &diffs.NdpNonTrivial, rawDiff, minDP)

	out.PercentError = math.Inf(1)
	if math.Abs(value2) > Zero {
		out.PercentError = 100 * rawDiff / math.Abs(value2)
		if out.PercentError > diffs.MaxPercentError {
			diffs.MaxPercentError = out.PercentError
		}
	}

	// The print-threshold test applies to every non-trivial diff
	// regardless of where else it lands in the cascade; suppression
	// after the first critical is the driver's concern, not the
	// classifier's.
	if roundedDiff > th.Print {
		out.ExceedsPrint = true
	}

	// Level 3: insignificant vs significant.
	bothAboveIgnore := value1 > Ignore && value2 > Ignore
	exceedsSignificant := exceedsThreshold(rawDiff, roundedDiff, value2, minDP, th.Significant, formatThreshold, th)

	if bothAboveIgnore || !exceedsSignificant {
		counts.DiffInsignificant++
		if bothAboveIgnore {
			counts.DiffHighIgnore++
		}
		return out
	}

	out.IsSignificant = true
	counts.DiffSignificant++
	flags.HasSignificantDiff = true
	flags.FilesAreCloseEnough = false
	updateMax(&diffs.MaxSignificant, &diffs.NdpSignificant, rawDiff, minDP)

	// Level 4: marginal vs non-marginal.
	if value1 > Marginal && value1 < Ignore && value2 > Marginal && value2 < Ignore {
		out.IsMarginal = true
		counts.DiffMarginal++
		flags.HasMarginalDiff = true
		return out
	}

	// Level 5: critical vs non-critical.
	if roundedDiff > th.Critical && value1 <= Ignore && value2 <= Ignore {
		out.IsCritical = true
		counts.DiffCritical++
		flags.HasCriticalDiff = true
		flags.ErrorFound = true
		return out
	}

	// Level 6: error vs non-error, re-running Level 3's exceeds test
	// against the significant threshold for the significant,
	// non-marginal, non-critical remainder.
	if exceedsThreshold(rawDiff, roundedDiff, value2, minDP, th.Significant, formatThreshold, th) {
		out.IsError = true
		counts.DiffError++
		flags.HasErrorDiff = true
	} else {
		counts.DiffNonError++
		flags.HasNonErrorDiff = true
	}

	return out
}

// exceedsThreshold implements the percent-mode-aware "exceeds" test
// shared by Level 3 and Level 6 (spec.md §4.4), parameterized by
// whichever threshold the caller supplies (both call sites currently
// pass the significant threshold).
func exceedsThreshold(rawDiff, roundedDiff, value2 float64, minDP int, threshold, formatThreshold float64, th *Thresholds) bool {
	switch {
	case th.SignificantIsPct:
		if math.Abs(value2) <= Zero {
			return true
		}
		return rawDiff/math.Abs(value2) > th.SignificantPercent
	case th.ZeroThresholdMode():
		return true
	default:
		cutoff := formatThreshold
		if threshold > cutoff {
			cutoff = threshold
		}
		return roundedDiff > cutoff
	}
}

func updateMax(max *float64, ndp *int, candidate float64, dp int) {
	if candidate > *max {
		*max = candidate
		*ndp = dp
	}
}

func roundHalfAwayFromZero(v float64, dp int) float64 {
	mult := math.Pow(10, float64(dp))
	return math.Copysign(math.Floor(math.Abs(v)*mult+0.5)/mult, signOrPositive(v))
}

func signOrPositive(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func pow10Neg(d int) float64 {
	result := 1.0
	for i := 0; i < d; i++ {
		result /= 10
	}
	return result
}
