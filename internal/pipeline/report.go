package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Outcome is the terminal state of one processed file.
type Outcome struct {
	Path       string
	OutputPath string
	ExtBefore  string
	ExtAfter   string
	Bytes      int64
	Err        error
}

// ExtPair keys the per-extension tally; After equals Before when no
// conversion changed the suffix.
type ExtPair struct {
	Before string
	After  string
}

// Report is the fold of every outcome from a run.
type Report struct {
	InputDir   string
	OutputDir  string
	Total      int
	Succeeded  int
	Bytes      int64
	ExtCounts  map[ExtPair]int
	Failures   []Outcome
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewReport creates an empty report for the given directories.
func NewReport(inputDir, outputDir string) *Report {
	return &Report{
		InputDir:  inputDir,
		OutputDir: outputDir,
		ExtCounts: make(map[ExtPair]int),
	}
}

// Add folds one outcome into the report. Failed outcomes are collected;
// successful ones feed the totals and the extension tally.
func (r *Report) Add(o Outcome) {
	r.Total++
	if o.Err != nil {
		r.Failures = append(r.Failures, o)
		return
	}
	r.Succeeded++
	r.Bytes += o.Bytes
	r.ExtCounts[ExtPair{Before: o.ExtBefore, After: o.ExtAfter}]++
}

// FailedCount is the number of files that did not reach success.
func (r *Report) FailedCount() int {
	return len(r.Failures)
}

// Summary renders the report in the format persisted to report.txt.
func (r *Report) Summary() string {
	var b strings.Builder

	b.WriteString("=== FINAL REPORT ===\n")
	fmt.Fprintf(&b, "Input Directory : %s\n", r.InputDir)
	fmt.Fprintf(&b, "Output Directory: %s\n", r.OutputDir)
	fmt.Fprintf(&b, "Total media files found : %d\n", r.Total)
	fmt.Fprintf(&b, "Successfully processed  : %d\n", r.Succeeded)
	fmt.Fprintf(&b, "Failed                  : %d\n", r.FailedCount())
	fmt.Fprintf(&b, "Total size processed    : %s\n", humanize.Bytes(uint64(r.Bytes)))
	b.WriteString("\nFile types processed:\n")

	pairs := make([]ExtPair, 0, len(r.ExtCounts))
	for p := range r.ExtCounts {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Before != pairs[j].Before {
			return pairs[i].Before < pairs[j].Before
		}
		return pairs[i].After < pairs[j].After
	})
	for _, p := range pairs {
		if p.Before == p.After {
			fmt.Fprintf(&b, "  %s : %d\n", p.Before, r.ExtCounts[p])
		} else {
			fmt.Fprintf(&b, "  %s -> %s : %d\n", p.Before, p.After, r.ExtCounts[p])
		}
	}

	if len(r.Failures) > 0 {
		b.WriteString("\nFiles that failed to process:\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  %s\n", f.Path)
		}
	} else {
		b.WriteString("\nNo files failed.\n")
	}

	return b.String()
}

// Write persists the summary as report.txt in the output directory and
// returns the written path.
func (r *Report) Write() (string, error) {
	path := filepath.Join(r.OutputDir, "report.txt")
	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.Summary()), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
