package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zabdulla/walton-production/internal/model"
)

var (
	dateRangeRe = regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{2,4}) to (\d{1,2}-\d{1,2}-\d{2,4})`)
	weekDateRe  = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{2}`)
)

// reportDateFormats are the accepted forms for dates embedded in file names,
// two-digit year first.
var reportDateFormats = []string{"1-2-06", "1-2-2006"}

// ParseSourceFile extracts the shift label and reporting period from a
// report file name. A missing date range is fatal for the file; a missing
// shift label is not and yields "unspecified".
func ParseSourceFile(fileName string) (model.SourceFile, error) {
	m := dateRangeRe.FindStringSubmatch(fileName)
	if m == nil {
		return model.SourceFile{}, fmt.Errorf("%q: %w", fileName, ErrMalformedFilename)
	}

	start, err := parseReportDate(m[1])
	if err != nil {
		return model.SourceFile{}, fmt.Errorf("%q: %w", fileName, err)
	}
	end, err := parseReportDate(m[2])
	if err != nil {
		return model.SourceFile{}, fmt.Errorf("%q: %w", fileName, err)
	}

	return model.SourceFile{
		FileName:    fileName,
		Shift:       parseShift(fileName),
		PeriodStart: start,
		PeriodEnd:   end,
	}, nil
}

// ExtractWeekDate pulls the single week anchor date out of a weekly totals
// report name. Returns "" when no date is present; callers treat that as a
// per-file skip.
func ExtractWeekDate(fileName string) string {
	m := weekDateRe.FindString(fileName)
	if m == "" {
		return ""
	}
	date, err := parseReportDate(m)
	if err != nil {
		return ""
	}
	return date
}

// parseReportDate normalizes an M-D-YY or M-D-YYYY date to YYYY-MM-DD.
func parseReportDate(s string) (string, error) {
	for _, layout := range reportDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnparseableDate)
}

// parseShift finds the shift label by case-insensitive substring search.
func parseShift(fileName string) model.Shift {
	lowered := strings.ToLower(fileName)
	switch {
	case strings.Contains(lowered, "1st shift"):
		return model.ShiftFirst
	case strings.Contains(lowered, "2nd shift"):
		return model.ShiftSecond
	case strings.Contains(lowered, "3rd shift"):
		return model.ShiftThird
	}
	return model.ShiftUnspecified
}
