// Package lineparse tokenizes one line of a TL data file into an
// ordered sequence of (value, decimal_places) pairs, expanding
// (real, imag) complex tokens into two consecutive entries (spec.md
// §4.2).
package lineparse

import (
	"strings"

	"github.com/jonlighthall/tldiff/domain/core"
	"github.com/jonlighthall/tldiff/domain/precision"
)

// Entry is one parsed value with the decimal precision it was printed in.
type Entry struct {
	Value              float64
	DecimalPlaces      int
	SignificantFigures int
}

// Line is the ordered result of parsing one line: a LineData record
// per spec.md §3. Each Entry carries both its value and its decimal
// places, so the two always have the same count.
type Line struct {
	Entries []Entry
	// ErrorFound reports whether a parse error was hit; whatever was
	// successfully parsed before the error is still returned.
	ErrorFound bool
	// Err names the underlying cause once ErrorFound is set, for callers
	// that want to wrap it into a reportable AppError.
	Err error
}

// NColumns reports the number of entries produced, used by the format
// tracker to detect column-count changes between lines.
func (l Line) NColumns() int {
	return len(l.Entries)
}

// Parse scans text left to right, extracting real tokens and
// `(real, imag)` complex tokens, per spec.md §4.2. An unclosed complex
// token or a missing comma is a parse error: whatever was parsed so far
// is returned with ErrorFound set. A trailing unparseable token aborts
// the line the same way.
func Parse(text string) Line {
	var line Line
	fields := splitFields(text)

	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		if strings.HasPrefix(tok, "(") {
			consumed, entries, err := parseComplex(fields, i)
			if err != nil {
				line.ErrorFound = true
				line.Err = err
				return line
			}
			line.Entries = append(line.Entries, entries...)
			i += consumed - 1
			continue
		}

		info, err := precision.Parse(tok)
		if err != nil {
			line.ErrorFound = true
			line.Err = err
			return line
		}
		line.Entries = append(line.Entries, Entry{Value: info.Value, DecimalPlaces: info.EffectiveDecimalPlaces, SignificantFigures: info.SignificantFigures})
	}

	return line
}

// splitFields splits on runs of space/tab, the whitespace delimiter
// spec.md §4.2/§6 specifies. A complex token with internal whitespace
// comes out split across several fields; splitFields does not rejoin
// them, parseComplex re-assembles the complex token's constituent fields.
func splitFields(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}

// parseComplex consumes one or more whitespace-delimited fields
// starting at fields[i] == "(..." until it finds the closing ")",
// splits on the comma, and parses the two numeric halves. It returns
// the number of fields consumed and the two entries (real, imag), or a
// non-nil error (core.ErrUnclosedComplex for a missing ")" or comma,
// core.ErrParseToken for an unparseable half) on failure.
func parseComplex(fields []string, i int) (consumed int, entries []Entry, err error) {
	var sb strings.Builder
	j := i
	for j < len(fields) {
		if j > i {
			sb.WriteByte(' ')
		}
		sb.WriteString(fields[j])
		if strings.Contains(fields[j], ")") {
			j++
			break
		}
		j++
	}
	if j == len(fields) && !strings.Contains(fields[j-1], ")") {
		return 0, nil, core.ErrUnclosedComplex
	}

	body := sb.String()
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return 0, nil, core.ErrUnclosedComplex
	}
	body = strings.TrimSuffix(strings.TrimPrefix(body, "("), ")")

	parts := strings.SplitN(body, ",", 2)
	if len(parts) != 2 {
		return 0, nil, core.ErrUnclosedComplex
	}

	realInfo, err := precision.Parse(parts[0])
	if err != nil {
		return 0, nil, err
	}
	imagInfo, err := precision.Parse(parts[1])
	if err != nil {
		return 0, nil, err
	}

	return j - i, []Entry{
		{Value: realInfo.Value, DecimalPlaces: realInfo.EffectiveDecimalPlaces, SignificantFigures: realInfo.SignificantFigures},
		{Value: imagInfo.Value, DecimalPlaces: imagInfo.EffectiveDecimalPlaces, SignificantFigures: imagInfo.SignificantFigures},
	}, nil
}

