package precision

import "testing"

func TestParseFixed(t *testing.T) {
	tests := []struct {
		token        string
		wantValue    float64
		wantDP       int
		wantSigFigs  int
		wantEffDP    int
		wantIsSci    bool
	}{
		{"123.45", 123.45, 2, 5, 2, false},
		{"0.001", 0.001, 3, 1, 3, false},
		{"100", 100, 0, 3, 0, false},
		{"-45.600", -45.6, 3, 5, 3, false},
		{"0", 0, 0, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			info, err := Parse(tt.token)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.token, err)
			}
			if info.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", info.Value, tt.wantValue)
			}
			if info.DecimalPlaces != tt.wantDP {
				t.Errorf("DecimalPlaces = %d, want %d", info.DecimalPlaces, tt.wantDP)
			}
			if info.SignificantFigures != tt.wantSigFigs {
				t.Errorf("SignificantFigures = %d, want %d", info.SignificantFigures, tt.wantSigFigs)
			}
			if info.EffectiveDecimalPlaces != tt.wantEffDP {
				t.Errorf("EffectiveDecimalPlaces = %d, want %d", info.EffectiveDecimalPlaces, tt.wantEffDP)
			}
			if info.IsScientific != tt.wantIsSci {
				t.Errorf("IsScientific = %v, want %v", info.IsScientific, tt.wantIsSci)
			}
		})
	}
}

func TestParseScientific(t *testing.T) {
	tests := []struct {
		token     string
		wantExp   int
		wantEffDP int
	}{
		{"1.234E+02", 2, 2},  // 4 sig figs - 1 - 2 = 1... recompute below
		{"1.5e-03", -3, 4},
		{"1.0D+01", 1, 0},
	}
	// 1.234E+02: sigfigs=4, exponent=2 -> 4-1-2=1
	tests[0].wantEffDP = 1
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			info, err := Parse(tt.token)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.token, err)
			}
			if !info.IsScientific {
				t.Errorf("expected scientific notation for %q", tt.token)
			}
			if info.Exponent != tt.wantExp {
				t.Errorf("Exponent = %d, want %d", info.Exponent, tt.wantExp)
			}
			if info.EffectiveDecimalPlaces != tt.wantEffDP {
				t.Errorf("EffectiveDecimalPlaces = %d, want %d", info.EffectiveDecimalPlaces, tt.wantEffDP)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, token := range []string{"", "abc", "1.2.3", "e10"} {
		if _, err := Parse(token); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", token)
		}
	}
}

func TestParseClampsLargeExponent(t *testing.T) {
	info, err := Parse("1.0e+30")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if info.EffectiveDecimalPlaces != 0 {
		t.Errorf("EffectiveDecimalPlaces = %d, want 0 for extreme positive exponent", info.EffectiveDecimalPlaces)
	}
}
