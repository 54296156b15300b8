package core

import (
	"errors"
)

// Domain errors - centralized sentinel definitions shared by the precision,
// line-parsing, and format-tracking packages. Collaborators wrap these with
// an AppError (internal/errors) to attach a stable code and context.
var (
	// ErrParseToken means a token had no parseable numeric prefix.
	ErrParseToken = errors.New("token has no parseable numeric prefix")
	// ErrUnclosedComplex means a "(real, imag)" token was missing its
	// closing paren or comma.
	ErrUnclosedComplex = errors.New("unclosed or malformed complex token")
	// ErrNegativeDecimalPlaces is a defensive check: the clamp in
	// effective-decimal-places computation should make this unreachable.
	ErrNegativeDecimalPlaces = errors.New("computed negative decimal places")
	// ErrStructureMismatch means two lines reported a different column count.
	ErrStructureMismatch = errors.New("column count mismatch between files")
	// ErrFileLengthMismatch means one file ended before the other.
	ErrFileLengthMismatch = errors.New("files have different line counts")
)

// IsParseError reports whether err originates from token or line parsing.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParseToken) || errors.Is(err, ErrUnclosedComplex) || errors.Is(err, ErrNegativeDecimalPlaces)
}
