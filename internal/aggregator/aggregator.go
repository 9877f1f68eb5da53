package aggregator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/zabdulla/walton-production/internal/model"
	"github.com/zabdulla/walton-production/internal/parser"
)

// Mode selects which extraction pipeline a batch run executes.
type Mode string

const (
	ModeDaily  Mode = "daily"  // Mon..Sat sheets -> DailyRecord + NoteRecord
	ModeWeekly Mode = "weekly" // Weekly Report rows -> WeekRowRecord (strict layout)
	ModeTotals Mode = "totals" // "<MACHINE> - TOTALS" rows -> WeeklyRecord
)

// FileStatus is the per-file outcome of a batch run.
type FileStatus string

const (
	StatusImported FileStatus = "imported"
	StatusSkipped  FileStatus = "skipped"
	StatusError    FileStatus = "error"
)

// FileResult makes the continue-on-error policy an explicit data structure:
// one entry per candidate file, success or not.
type FileResult struct {
	FileName string     `json:"fileName"`
	Status   FileStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	Records  int        `json:"records"`
	Notes    int        `json:"notes,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
}

// BatchReport summarizes one folder run.
type BatchReport struct {
	Folder        string        `json:"folder"`
	Mode          Mode          `json:"mode"`
	TotalFiles    int           `json:"totalFiles"`
	ImportedFiles int           `json:"importedFiles"`
	SkippedFiles  int           `json:"skippedFiles"`
	ErroredFiles  int           `json:"erroredFiles"`
	TotalRecords  int           `json:"totalRecords"`
	Duration      time.Duration `json:"duration"`
	Files         []FileResult  `json:"files"`
}

// Dataset is the concatenated, deterministically sorted output of a run.
// Only the slices matching the run mode are populated.
type Dataset struct {
	Daily        []*model.DailyRecord   `json:"daily,omitempty"`
	Notes        []*model.NoteRecord    `json:"notes,omitempty"`
	WeekRows     []*model.WeekRowRecord `json:"weekRows,omitempty"`
	WeeklyTotals []*model.WeeklyRecord  `json:"weeklyTotals,omitempty"`
}

// Empty reports whether the run produced no records at all.
func (d *Dataset) Empty() bool {
	return len(d.Daily) == 0 && len(d.Notes) == 0 && len(d.WeekRows) == 0 && len(d.WeeklyTotals) == 0
}

// Options configure a batch run. Marker is the phrase a candidate file name
// must contain.
type Options struct {
	Marker       string
	StrictLayout bool // force the strict policy onto the daily pipeline too
	Rates        parser.Rates
	Layout       parser.Layout
	Categories   []parser.NoteCategory
}

// DefaultOptions match the facility's report naming convention.
func DefaultOptions() Options {
	return Options{
		Marker: "processing weights",
		Rates:  parser.DefaultRates(),
		Layout: parser.DefaultLayout(),
	}
}

// Aggregator discovers report files in a folder and runs the per-file
// pipeline over each, isolating failures so one bad file never aborts the
// batch.
type Aggregator struct {
	opts        Options
	categorizer *parser.NoteCategorizer
	log         *zap.Logger
}

// New creates an aggregator. A nil logger is replaced with a no-op one.
func New(opts Options, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Marker == "" {
		opts.Marker = "processing weights"
	}
	return &Aggregator{
		opts:        opts,
		categorizer: parser.NewNoteCategorizer(opts.Categories),
		log:         log,
	}
}

// Run processes every candidate file in folder through the pipeline for
// mode and returns the sorted dataset plus the per-file report. An error is
// returned only for folder-level failures; per-file failures land in the
// report.
func (a *Aggregator) Run(folder string, mode Mode) (*Dataset, *BatchReport, error) {
	start := time.Now()

	files, err := a.discover(folder)
	if err != nil {
		return nil, nil, err
	}

	report := &BatchReport{
		Folder:     folder,
		Mode:       mode,
		TotalFiles: len(files),
	}
	dataset := &Dataset{}

	if len(files) == 0 {
		a.log.Info("no processing report files found", zap.String("folder", folder))
		report.Duration = time.Since(start)
		return dataset, report, nil
	}

	for _, name := range files {
		result := a.processFile(filepath.Join(folder, name), name, mode, dataset)
		report.Files = append(report.Files, result)

		switch result.Status {
		case StatusImported:
			report.ImportedFiles++
			report.TotalRecords += result.Records
		case StatusSkipped:
			report.SkippedFiles++
		case StatusError:
			report.ErroredFiles++
		}
	}

	sortDataset(dataset)

	report.Duration = time.Since(start)

	if report.ImportedFiles == 0 {
		a.log.Warn("no data aggregated; check the input files",
			zap.String("folder", folder), zap.String("mode", string(mode)))
	}

	return dataset, report, nil
}

// discover lists candidate report files: marker phrase in the name, .xlsx
// extension, and not an editor lock file. os.ReadDir returns names sorted.
func (a *Aggregator) discover(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	marker := strings.ToLower(a.opts.Marker)
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lowered := strings.ToLower(name)
		if !strings.Contains(lowered, marker) || !strings.HasSuffix(lowered, ".xlsx") {
			continue
		}
		if strings.HasPrefix(name, "~") {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

// processFile runs one file through the selected pipeline. All failures are
// converted into a FileResult; nothing propagates.
func (a *Aggregator) processFile(path, name string, mode Mode, dataset *Dataset) FileResult {
	a.log.Info("processing", zap.String("file", name), zap.String("mode", string(mode)))

	file, err := excelize.OpenFile(path)
	if err != nil {
		a.log.Warn("empty or corrupt file", zap.String("file", name), zap.Error(err))
		return FileResult{FileName: name, Status: StatusSkipped, Reason: fmt.Sprintf("corrupt or unreadable workbook: %v", err)}
	}
	defer file.Close()

	result, err := a.extract(file, name, mode, dataset)
	if err != nil {
		if isExpectedFailure(err) {
			a.log.Warn("skipping file", zap.String("file", name), zap.Error(err))
			return FileResult{FileName: name, Status: StatusSkipped, Reason: err.Error()}
		}
		a.log.Error("unexpected error processing file", zap.String("file", name), zap.Error(err))
		return FileResult{FileName: name, Status: StatusError, Reason: err.Error()}
	}
	return result
}

// extract dispatches to the mode's parser and appends its records to the
// shared dataset.
func (a *Aggregator) extract(file *excelize.File, name string, mode Mode, dataset *Dataset) (FileResult, error) {
	switch mode {
	case ModeDaily:
		src, err := parser.ParseSourceFile(name)
		if err != nil {
			return FileResult{}, err
		}
		p := parser.NewDailyParser(file, a.opts.Layout, a.opts.Rates, a.categorizer)
		if a.opts.StrictLayout {
			p.SetPolicy(parser.PolicyStrict)
		}
		parsed, err := p.ParseWorkbook(src)
		if err != nil {
			return FileResult{}, err
		}
		for _, w := range parsed.Warnings {
			a.log.Warn(w)
		}
		dataset.Daily = append(dataset.Daily, parsed.Records...)
		dataset.Notes = append(dataset.Notes, parsed.Notes...)
		return FileResult{
			FileName: name,
			Status:   StatusImported,
			Records:  len(parsed.Records),
			Notes:    len(parsed.Notes),
			Warnings: parsed.Warnings,
		}, nil

	case ModeWeekly:
		src, err := parser.ParseSourceFile(name)
		if err != nil {
			return FileResult{}, err
		}
		p := parser.NewWeeklyParser(file, a.opts.Layout, a.opts.Rates)
		records, err := p.ParseRows(src)
		if err != nil {
			return FileResult{}, err
		}
		dataset.WeekRows = append(dataset.WeekRows, records...)
		return FileResult{FileName: name, Status: StatusImported, Records: len(records)}, nil

	case ModeTotals:
		weekDate := parser.ExtractWeekDate(name)
		if weekDate == "" {
			return FileResult{}, fmt.Errorf("%q: %w", name, parser.ErrMalformedFilename)
		}
		p := parser.NewWeeklyParser(file, a.opts.Layout, a.opts.Rates)
		records, err := p.ParseTotals(name, weekDate)
		if err != nil {
			return FileResult{}, err
		}
		dataset.WeeklyTotals = append(dataset.WeeklyTotals, records...)
		return FileResult{FileName: name, Status: StatusImported, Records: len(records)}, nil
	}

	return FileResult{}, fmt.Errorf("unknown mode %q", mode)
}

// isExpectedFailure separates the known bad-input taxonomy from genuine
// internal errors.
func isExpectedFailure(err error) bool {
	return errors.Is(err, parser.ErrMalformedFilename) ||
		errors.Is(err, parser.ErrUnparseableDate) ||
		errors.Is(err, parser.ErrMissingSheet) ||
		errors.Is(err, parser.ErrLayoutMismatch)
}

// sortDataset applies the deterministic final ordering: (date, shift,
// machine) for dated records, (period/week, machine) otherwise.
func sortDataset(d *Dataset) {
	sort.SliceStable(d.Daily, func(i, j int) bool {
		a, b := d.Daily[i], d.Daily[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.MachineName < b.MachineName
	})
	sort.SliceStable(d.Notes, func(i, j int) bool {
		a, b := d.Notes[i], d.Notes[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.MachineName < b.MachineName
	})
	sort.SliceStable(d.WeekRows, func(i, j int) bool {
		a, b := d.WeekRows[i], d.WeekRows[j]
		if a.PeriodStart != b.PeriodStart {
			return a.PeriodStart < b.PeriodStart
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.MachineName < b.MachineName
	})
	sort.SliceStable(d.WeeklyTotals, func(i, j int) bool {
		a, b := d.WeeklyTotals[i], d.WeeklyTotals[j]
		if a.WeekDate != b.WeekDate {
			return a.WeekDate < b.WeekDate
		}
		return a.MachineName < b.MachineName
	})
}
