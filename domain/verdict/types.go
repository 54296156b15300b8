// Package verdict holds the pass/warn/fail judgment rendered at the
// end of a comparison (spec.md §4.7 step 5).
package verdict

// Status represents the outcome of comparing two TL tables.
type Status string

const (
	// StatusPass means no critical difference, no significant difference,
	// and no file-structure issue was observed.
	StatusPass Status = "pass"
	// StatusWarn means the comparison completed with significant
	// differences present, without tripping a fatal condition.
	// Non-trivial but insignificant differences alone still pass.
	StatusWarn Status = "warn"
	// StatusFail means a fatal condition was observed: a critical
	// difference, a structure mismatch, a file-length mismatch, or a
	// file access failure.
	StatusFail Status = "fail"
)

// Reason names why a run received the status it did.
type Reason string

const (
	ReasonFilesIdentical     Reason = "files_identical"
	ReasonWithinTolerance    Reason = "within_tolerance"
	ReasonSignificantDiffs   Reason = "significant_differences"
	ReasonCriticalDiff       Reason = "critical_difference"
	ReasonStructureMismatch  Reason = "structure_mismatch"
	ReasonFileLengthMismatch Reason = "file_length_mismatch"
	ReasonFileAccessError    Reason = "file_access_error"
)

// Verdict is the final judgment the reporter renders (spec.md §6 "Reporter
// output contract").
type Verdict struct {
	Status Status
	Reason Reason
	// Detail is a short human-readable elaboration, e.g. naming the line
	// at which a fatal condition first appeared.
	Detail string
}

// New builds a Verdict, choosing the most severe applicable reason.
// Precedence (highest first): file access error, structure mismatch,
// file length mismatch, critical difference, significant difference,
// files identical, within tolerance.
func New(fileAccessError, structureMismatch, fileLengthMismatch, hasCritical, hasSignificant, filesAreSame bool, detail string) Verdict {
	switch {
	case fileAccessError:
		return Verdict{Status: StatusFail, Reason: ReasonFileAccessError, Detail: detail}
	case structureMismatch:
		return Verdict{Status: StatusFail, Reason: ReasonStructureMismatch, Detail: detail}
	case fileLengthMismatch:
		return Verdict{Status: StatusFail, Reason: ReasonFileLengthMismatch, Detail: detail}
	case hasCritical:
		return Verdict{Status: StatusFail, Reason: ReasonCriticalDiff, Detail: detail}
	case hasSignificant:
		return Verdict{Status: StatusWarn, Reason: ReasonSignificantDiffs, Detail: detail}
	case filesAreSame:
		return Verdict{Status: StatusPass, Reason: ReasonFilesIdentical, Detail: detail}
	default:
		return Verdict{Status: StatusPass, Reason: ReasonWithinTolerance, Detail: detail}
	}
}

// Passed reports whether the verdict represents overall success
// (spec.md §4.7 step 5: no critical, no significant, no structure issue).
func (v Verdict) Passed() bool {
	return v.Status == StatusPass
}
