package verdict

import "testing"

func TestNewPrecedence(t *testing.T) {
	tests := []struct {
		name                                                                        string
		fileAccess, structure, fileLength, critical, significant, same bool
		wantStatus                                                                 Status
		wantReason                                                                 Reason
	}{
		{"file access dominates everything", true, true, true, true, true, true, StatusFail, ReasonFileAccessError},
		{"structure beats critical", false, true, false, true, true, true, StatusFail, ReasonStructureMismatch},
		{"critical beats significant", false, false, false, true, true, true, StatusFail, ReasonCriticalDiff},
		{"significant without critical warns", false, false, false, false, true, false, StatusWarn, ReasonSignificantDiffs},
		{"identical files pass", false, false, false, false, false, true, StatusPass, ReasonFilesIdentical},
		{"within tolerance passes", false, false, false, false, false, false, StatusPass, ReasonWithinTolerance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.fileAccess, tt.structure, tt.fileLength, tt.critical, tt.significant, tt.same, "")
			if v.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", v.Status, tt.wantStatus)
			}
			if v.Reason != tt.wantReason {
				t.Errorf("reason = %s, want %s", v.Reason, tt.wantReason)
			}
		})
	}
}

func TestVerdictPassed(t *testing.T) {
	if !New(false, false, false, false, false, true, "").Passed() {
		t.Error("expected pass")
	}
	if New(false, false, false, true, false, false, "").Passed() {
		t.Error("expected non-pass for critical difference")
	}
}
