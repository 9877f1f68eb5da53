package parser

import (
	"errors"
	"testing"

	"github.com/zabdulla/walton-production/internal/model"
)

func TestParseSourceFile_FullName(t *testing.T) {
	t.Parallel()

	src, err := ParseSourceFile("processing weights 1st shift 03-04-24 to 03-10-24.xlsx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.Shift != model.ShiftFirst {
		t.Fatalf("shift = %q, want 1st", src.Shift)
	}
	if src.PeriodStart != "2024-03-04" || src.PeriodEnd != "2024-03-10" {
		t.Fatalf("period = %s..%s", src.PeriodStart, src.PeriodEnd)
	}
}

func TestParseSourceFile_FourDigitYear(t *testing.T) {
	t.Parallel()

	src, err := ParseSourceFile("processing weights 12-30-2024 to 1-5-2025.xlsx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.PeriodStart != "2024-12-30" || src.PeriodEnd != "2025-01-05" {
		t.Fatalf("period = %s..%s", src.PeriodStart, src.PeriodEnd)
	}
	if src.Shift != model.ShiftUnspecified {
		t.Fatalf("shift = %q, want unspecified", src.Shift)
	}
}

func TestParseSourceFile_ShiftCaseInsensitive(t *testing.T) {
	t.Parallel()

	src, err := ParseSourceFile("Processing Weights 2ND SHIFT 6-3-24 to 6-9-24.xlsx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.Shift != model.ShiftSecond {
		t.Fatalf("shift = %q, want 2nd", src.Shift)
	}
}

func TestParseSourceFile_NoDateRange(t *testing.T) {
	t.Parallel()

	_, err := ParseSourceFile("report.xlsx")
	if !errors.Is(err, ErrMalformedFilename) {
		t.Fatalf("err = %v, want ErrMalformedFilename", err)
	}
}

func TestParseSourceFile_BadDate(t *testing.T) {
	t.Parallel()

	_, err := ParseSourceFile("processing weights 13-45-24 to 13-46-24.xlsx")
	if !errors.Is(err, ErrUnparseableDate) {
		t.Fatalf("err = %v, want ErrUnparseableDate", err)
	}
}

func TestExtractWeekDate(t *testing.T) {
	t.Parallel()

	if got := ExtractWeekDate("processing weights 3-4-24 to 3-10-24.xlsx"); got != "2024-03-04" {
		t.Fatalf("week date = %q", got)
	}
	if got := ExtractWeekDate("report.xlsx"); got != "" {
		t.Fatalf("week date for no-date name = %q, want empty", got)
	}
}
