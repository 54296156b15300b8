package lineparse

import (
	"errors"
	"testing"

	"github.com/jonlighthall/tldiff/domain/core"
)

func TestParseSimpleLine(t *testing.T) {
	line := Parse("1.0 2.0")
	if line.ErrorFound {
		t.Fatalf("unexpected error")
	}
	if line.NColumns() != 2 {
		t.Fatalf("NColumns = %d, want 2", line.NColumns())
	}
	if line.Entries[0].Value != 1.0 || line.Entries[1].Value != 2.0 {
		t.Errorf("values = %v", line.Entries)
	}
}

func TestParseEmptyLine(t *testing.T) {
	line := Parse("")
	if line.ErrorFound {
		t.Fatalf("unexpected error on empty line")
	}
	if line.NColumns() != 0 {
		t.Errorf("NColumns = %d, want 0", line.NColumns())
	}
}

func TestParseComplexToken(t *testing.T) {
	line := Parse("10.5 (1.0,2.0) 20.0")
	if line.ErrorFound {
		t.Fatalf("unexpected error")
	}
	if line.NColumns() != 4 {
		t.Fatalf("NColumns = %d, want 4", line.NColumns())
	}
	if line.Entries[1].Value != 1.0 || line.Entries[2].Value != 2.0 {
		t.Errorf("complex entries = %v", line.Entries[1:3])
	}
}

func TestParseComplexWithInternalWhitespace(t *testing.T) {
	line := Parse("( 1.0 , 2.0 )")
	if line.ErrorFound {
		t.Fatalf("unexpected error")
	}
	if line.NColumns() != 2 {
		t.Fatalf("NColumns = %d, want 2", line.NColumns())
	}
	if line.Entries[0].Value != 1.0 || line.Entries[1].Value != 2.0 {
		t.Errorf("entries = %v", line.Entries)
	}
}

func TestParseUnclosedComplexIsError(t *testing.T) {
	line := Parse("(1.0,2.0")
	if !line.ErrorFound {
		t.Fatalf("expected error for unclosed complex token")
	}
	if !errors.Is(line.Err, core.ErrUnclosedComplex) {
		t.Errorf("Err = %v, want core.ErrUnclosedComplex", line.Err)
	}
}

func TestParseTrailingUnparseableTokenAborts(t *testing.T) {
	line := Parse("1.0 2.0 garbage")
	if !line.ErrorFound {
		t.Fatalf("expected error for trailing unparseable token")
	}
	if line.NColumns() != 2 {
		t.Errorf("expected the first two valid entries to survive, got %d", line.NColumns())
	}
}
