package core

import "testing"

func TestIsParseError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"parse token", ErrParseToken, true},
		{"unclosed complex", ErrUnclosedComplex, true},
		{"negative decimal places", ErrNegativeDecimalPlaces, true},
		{"structure mismatch", ErrStructureMismatch, false},
		{"file length mismatch", ErrFileLengthMismatch, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsParseError(c.err); got != c.want {
				t.Errorf("IsParseError(%v) = %v, want %v", c.err, got, c.want)
			}
		})
	}
}
