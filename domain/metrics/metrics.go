// Package metrics accumulates RMSE and TL-curve scoring data across a
// comparison run and produces the M1/M2/M3/M-curve scores defined by
// spec.md §4.5, after Goodman et al.
package metrics

import (
	"math"

	"github.com/montanaflynn/stats"
)

// RMSEStats accumulates the running sums needed to produce unweighted
// and TL-weighted RMSE, globally, over "data" columns (column index >
// 0), and per column.
type RMSEStats struct {
	GlobalSumSq   float64
	GlobalCount   int
	DataSumSq     float64
	DataCount     int
	PerColumnSumSq map[int]float64
	PerColumnCount map[int]int

	WeightedNumerator  float64
	WeightedSum        float64
	PerColumnWeightedNumerator map[int]float64
	PerColumnWeightedSum       map[int]float64
}

// NewRMSEStats returns a ready-to-use RMSEStats accumulator.
func NewRMSEStats() *RMSEStats {
	return &RMSEStats{
		PerColumnSumSq:             make(map[int]float64),
		PerColumnCount:             make(map[int]int),
		PerColumnWeightedNumerator: make(map[int]float64),
		PerColumnWeightedSum:       make(map[int]float64),
	}
}

// AddSample folds one non-trivial pair's raw difference into the
// accumulators. column is the zero-based column index; value1/value2
// are the paired values (used for the TL-proximity weight).
func (r *RMSEStats) AddSample(column int, rawDiff, value1, value2 float64) {
	sq := rawDiff * rawDiff
	r.GlobalSumSq += sq
	r.GlobalCount++
	r.PerColumnSumSq[column] += sq
	r.PerColumnCount[column]++

	if column == 0 {
		return
	}
	r.DataSumSq += sq
	r.DataCount++

	weight := clamp((Marginal-( value1+value2)/2)/50, 0, 1)
	weightedSq := weight * sq
	r.WeightedNumerator += weightedSq
	r.WeightedSum += weight
	r.PerColumnWeightedNumerator[column] += weightedSq
	r.PerColumnWeightedSum[column] += weight
}

// Marginal mirrors classify.Marginal (110 dB); duplicated as a plain
// constant here so that domain/metrics does not depend on
// domain/classify; both are leaves consumed by the driver.
const Marginal = 110.0

// Unweighted returns the unweighted RMSE over all accumulated samples.
func (r *RMSEStats) Unweighted() float64 {
	return rmse(r.GlobalSumSq, r.GlobalCount)
}

// UnweightedData returns the unweighted RMSE restricted to columns > 0.
func (r *RMSEStats) UnweightedData() float64 {
	return rmse(r.DataSumSq, r.DataCount)
}

// UnweightedColumn returns the unweighted RMSE for one column.
func (r *RMSEStats) UnweightedColumn(column int) float64 {
	return rmse(r.PerColumnSumSq[column], r.PerColumnCount[column])
}

// Weighted returns the TL-proximity-weighted RMSE over data columns.
func (r *RMSEStats) Weighted() float64 {
	if r.WeightedSum == 0 {
		return 0
	}
	return math.Sqrt(r.WeightedNumerator / r.WeightedSum)
}

// WeightedColumn returns the TL-proximity-weighted RMSE for one column.
func (r *RMSEStats) WeightedColumn(column int) float64 {
	sum := r.PerColumnWeightedSum[column]
	if sum == 0 {
		return 0
	}
	return math.Sqrt(r.PerColumnWeightedNumerator[column] / sum)
}

func rmse(sumSq float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Sqrt(sumSq / float64(n))
}

// TLSample is one (range, tl1, tl2, raw_diff) observation for the
// designated TL column, used for M1/M2/M3.
type TLSample struct {
	Range   float64
	TL1     float64
	TL2     float64
	RawDiff float64
}

// TLMetrics accumulates TL-curve samples and produces the final
// M1/M2/M3/M-curve scores after EOF.
type TLMetrics struct {
	Samples []TLSample
}

// AddSample records one TL-column observation.
func (m *TLMetrics) AddSample(s TLSample) {
	m.Samples = append(m.Samples, s)
}

// Scores holds the finalized M1/M2/M3 values and their 0-100 mappings,
// plus the overall M-curve average.
type Scores struct {
	M1          float64
	M2          float64
	M3          float64 // Pearson correlation, [-1, 1]
	M1Score     float64
	M2Score     float64
	M3Score     float64
	MCurve      float64
}

// Finalize computes M1 (weighted RMSE), M2 (mean diff over the last 4%
// of the range), and M3 (Pearson correlation of tl1/tl2), maps each to
// a 0-100 score, and averages them into M_curve (spec.md §4.5).
func (m *TLMetrics) Finalize(weightedRMSE float64) Scores {
	if len(m.Samples) == 0 {
		return Scores{}
	}

	maxRange := m.Samples[0].Range
	for _, s := range m.Samples {
		if s.Range > maxRange {
			maxRange = s.Range
		}
	}

	var tailDiffs []float64
	tl1 := make([]float64, 0, len(m.Samples))
	tl2 := make([]float64, 0, len(m.Samples))
	for _, s := range m.Samples {
		tl1 = append(tl1, s.TL1)
		tl2 = append(tl2, s.TL2)
		if s.Range >= 0.96*maxRange {
			tailDiffs = append(tailDiffs, s.RawDiff)
		}
	}

	m1 := weightedRMSE
	m2, _ := stats.Mean(tailDiffs)
	m3, _ := stats.Correlation(tl1, tl2)

	return Scores{
		M1:      m1,
		M2:      m2,
		M3:      m3,
		M1Score: scoreFromDiff(m1),
		M2Score: scoreFromDiff(m2),
		M3Score: scoreFromCorrelation(m3),
		MCurve:  (scoreFromDiff(m1) + scoreFromDiff(m2) + scoreFromCorrelation(m3)) / 3,
	}
}

// scoreFromDiff maps a difference metric to a 0-100 score per spec.md
// §4.5: d ≤ 3 → linear from 100 down to 90; 3 < d < 20 → linear from 90
// to 0; d ≥ 20 → 0.
func scoreFromDiff(d float64) float64 {
	d = math.Abs(d)
	switch {
	case d <= 3:
		return 100 - (d/3)*10
	case d < 20:
		return math.Max(0, 90-((d-3)/17)*90)
	default:
		return 0
	}
}

// scoreFromCorrelation maps a Pearson correlation to a 0-100 score.
func scoreFromCorrelation(corr float64) float64 {
	return math.Max(0, corr*100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
