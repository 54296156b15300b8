package classify

import "testing"

func newSession() (*Thresholds, *CountStats, *Flags, *DiffStats) {
	th := &Thresholds{Significant: 0.05, Critical: 10.0, Print: 1.0}
	counts := &CountStats{}
	flags := new(Flags)
	*flags = NewFlags()
	diffs := &DiffStats{}
	return th, counts, flags, diffs
}

func TestClassifyZeroDifference(t *testing.T) {
	th, counts, flags, diffs := newSession()
	out := Classify(1.0, 1.0, 2, 2, 0.05, th, counts, flags, diffs)
	if out.IsNonZero {
		t.Error("expected zero classification")
	}
	if counts.DiffNonZero != 0 {
		t.Errorf("DiffNonZero = %d, want 0", counts.DiffNonZero)
	}
}

func TestClassifySubLSBIsTrivial(t *testing.T) {
	th, counts, flags, diffs := newSession()
	th.SetSignificant(0)
	// file1 "30.8" (1 dp), file2 "30.85" (2 dp): min_dp = 1, half_lsb = 0.05.
	out := Classify(30.8, 30.85, 1, 2, 0, th, counts, flags, diffs)
	if !out.IsNonZero {
		t.Fatal("expected non-zero")
	}
	if !out.IsTrivial {
		t.Error("expected trivial classification at sub-LSB boundary")
	}
	if counts.DiffTrivial != 1 || counts.DiffNonTrivial != 0 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestClassifySignificantDifference(t *testing.T) {
	th, counts, flags, diffs := newSession()
	out := Classify(50.0, 52.0, 1, 1, 0.05, th, counts, flags, diffs)
	if !out.IsSignificant {
		t.Error("expected significant classification")
	}
	if !flags.HasSignificantDiff {
		t.Error("expected HasSignificantDiff flag set")
	}
}

func TestClassifyHighIgnoreIsInsignificant(t *testing.T) {
	th, counts, flags, diffs := newSession()
	out := Classify(150.0, 160.0, 1, 1, 0.05, th, counts, flags, diffs)
	if out.IsSignificant {
		t.Error("both above ignore should be insignificant regardless of magnitude")
	}
	if counts.DiffHighIgnore != 1 {
		t.Errorf("DiffHighIgnore = %d, want 1", counts.DiffHighIgnore)
	}
}

func TestClassifyMarginal(t *testing.T) {
	th, counts, flags, diffs := newSession()
	out := Classify(115.0, 117.0, 1, 1, 0.05, th, counts, flags, diffs)
	if !out.IsSignificant || !out.IsMarginal {
		t.Errorf("expected significant+marginal, got %+v", out)
	}
	if counts.DiffMarginal != 1 {
		t.Errorf("DiffMarginal = %d, want 1", counts.DiffMarginal)
	}
}

func TestClassifyCritical(t *testing.T) {
	th, counts, flags, diffs := newSession()
	th.Significant = 0.1
	th.Critical = 1.0
	out := Classify(0.0, 2.0, 1, 1, 0.1, th, counts, flags, diffs)
	if !out.IsCritical {
		t.Errorf("expected critical classification, got %+v", out)
	}
	if !flags.HasCriticalDiff || !flags.ErrorFound {
		t.Error("expected HasCriticalDiff and ErrorFound flags set")
	}
}

func TestClassifyPercentMode(t *testing.T) {
	th, counts, flags, diffs := newSession()
	th.SignificantIsPct = true
	th.SignificantPercent = 0.01
	out := Classify(101.5, 100.0, 1, 1, 0, th, counts, flags, diffs)
	if !out.IsSignificant {
		t.Error("expected significant under percent mode (1.5% > 1%)")
	}
	if !flags.HasSignificantDiff {
		t.Error("expected HasSignificantDiff set")
	}
}

func TestInvariantsHoldAcrossMixedInputs(t *testing.T) {
	th, counts, flags, diffs := newSession()
	th.SetSignificant(0)
	th.Critical = 1000

	pairs := [][2]float64{
		{50, 52},    // operational, significant, non-marginal, non-critical
		{115, 117},  // marginal
		{150, 160},  // above ignore, insignificant
		{0, 0.5},    // near-zero ref, significant (percent n/a, zero-mode)
		{200, 250},  // above ignore, insignificant
	}
	for _, p := range pairs {
		Classify(p[0], p[1], 1, 1, 0, th, counts, flags, diffs)
	}

	if counts.DiffNonZero != counts.DiffTrivial+counts.DiffNonTrivial {
		t.Errorf("I1 violated: %+v", counts)
	}
	if counts.DiffNonTrivial != counts.DiffInsignificant+counts.DiffSignificant {
		t.Errorf("I2 violated: %+v", counts)
	}
	if counts.ElemNumber < counts.DiffNonZero || counts.DiffNonZero < counts.DiffNonTrivial || counts.DiffNonTrivial < counts.DiffSignificant {
		// ElemNumber isn't maintained by Classify itself (driver's job);
		// only check the chain below it here.
		if counts.DiffNonZero < counts.DiffNonTrivial || counts.DiffNonTrivial < counts.DiffSignificant {
			t.Errorf("I5 chain violated: %+v", counts)
		}
	}
}
