package metrics

import "testing"

func TestRMSEStatsAddSample(t *testing.T) {
	r := NewRMSEStats()
	r.AddSample(0, 1.0, 10, 11) // column 0 excluded from "data"
	r.AddSample(1, 2.0, 50, 52)
	r.AddSample(1, 4.0, 60, 64)

	if r.GlobalCount != 3 {
		t.Errorf("GlobalCount = %d, want 3", r.GlobalCount)
	}
	if r.DataCount != 2 {
		t.Errorf("DataCount = %d, want 2 (column 0 excluded)", r.DataCount)
	}
	if got := r.Unweighted(); got <= 0 {
		t.Errorf("Unweighted RMSE = %v, want > 0", got)
	}
	if got := r.UnweightedColumn(1); got <= 0 {
		t.Errorf("UnweightedColumn(1) = %v, want > 0", got)
	}
}

func TestTLMetricsFinalizeIdenticalCurves(t *testing.T) {
	var m TLMetrics
	for i := 1; i <= 10; i++ {
		r := float64(i) * 10
		m.AddSample(TLSample{Range: r, TL1: 60 + float64(i), TL2: 60 + float64(i), RawDiff: 0})
	}
	scores := m.Finalize(0)
	if scores.M1Score != 100 {
		t.Errorf("M1Score = %v, want 100 for zero weighted RMSE", scores.M1Score)
	}
	if scores.M3Score != 100 {
		t.Errorf("M3Score = %v, want 100 for perfectly correlated identical curves", scores.M3Score)
	}
	if scores.MCurve <= 90 {
		t.Errorf("MCurve = %v, want > 90 for near-identical curves", scores.MCurve)
	}
}

func TestScoreFromDiffBounds(t *testing.T) {
	if s := scoreFromDiff(0); s != 100 {
		t.Errorf("scoreFromDiff(0) = %v, want 100", s)
	}
	if s := scoreFromDiff(25); s != 0 {
		t.Errorf("scoreFromDiff(25) = %v, want 0", s)
	}
}
