// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"sunlight/senate-csv/internal/cleaner"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/pagesource"
	"sunlight/senate-csv/internal/report"
	"sunlight/senate-csv/internal/senateparser"
	"sunlight/senate-csv/internal/validation"
)

// Default output file names.
const (
	RecordsFile   = "senate_data.csv"
	CleanedFile   = "senate_data_cleaned.csv"
	MissingFile   = "missing_data.json"
	RecoveredFile = "senate_data_recovered.csv"
)

// SelectPages returns the pages to parse. With both bounds set the range
// is used as given; otherwise the page files present are discovered and
// filtered by whichever bound is set.
func SelectPages(source *pagesource.DirSource, start, end int) ([]int, error) {
	if start > 0 && end > 0 {
		if end < start {
			return nil, fmt.Errorf("invalid page range %d-%d", start, end)
		}
		pages := make([]int, 0, end-start+1)
		for n := start; n <= end; n++ {
			pages = append(pages, n)
		}
		return pages, nil
	}

	found, err := source.Discover()
	if err != nil {
		return nil, err
	}
	var pages []int
	for _, n := range found {
		if n < start || (end > 0 && n > end) {
			continue
		}
		pages = append(pages, n)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page files found in %s", source.Dir())
	}
	return pages, nil
}

// ParseOptions controls a parse run.
type ParseOptions struct {
	PagesDir    string
	Start       int
	End         int
	Output      string
	MissingFile string
}

// Parse runs the engine over the selected pages and writes the record CSV
// and missing data file. The summary receives the run statistics.
func Parse(ctx context.Context, c *container.Container, opts ParseOptions, summary *report.RunSummary) (*senateparser.RunStats, error) {
	source := c.PageSource(opts.PagesDir)
	pages, err := SelectPages(source, opts.Start, opts.End)
	if err != nil {
		return nil, err
	}

	p, err := c.Parser(source)
	if err != nil {
		return nil, err
	}
	stats, err := p.ConvertToCSV(ctx, pages, opts.Output, opts.MissingFile)
	if stats != nil && summary != nil {
		summary.Pages = stats.Pages
		summary.SkippedPages = stats.SkippedPages
		summary.MissingPages = stats.MissingPages
		summary.Lines = stats.Lines
		summary.SetHistogram(stats.HeaderHistogram)
	}
	if err != nil {
		return stats, err
	}
	if summary != nil {
		summary.Outputs = append(summary.Outputs, opts.Output)
		if opts.MissingFile != "" {
			summary.Outputs = append(summary.Outputs, opts.MissingFile)
		}
	}
	return stats, nil
}

// CleanOptions controls a clean run.
type CleanOptions struct {
	Input     string
	Output    string
	SourceDoc string
	XLSX      string
	NoBanner  bool
}

// Clean converts a raw record CSV into the cleaned CSV.
func Clean(ctx context.Context, c *container.Container, opts CleanOptions, summary *report.RunSummary) (cleaner.Stats, error) {
	cfg := c.GetConfig()
	banner := cfg.CSV.Citation
	if opts.NoBanner {
		banner = ""
	}
	xlsx := opts.XLSX
	if xlsx == "" && cfg.CSV.WriteXLSX {
		xlsx = ReplaceExt(opts.Output, ".xlsx")
	}

	stats, err := c.Cleaner(ctx).CleanFile(opts.Input, opts.Output, cleaner.FileOptions{
		SourceDoc: opts.SourceDoc,
		Delimiter: c.Delimiter(),
		Banner:    banner,
		XLSXPath:  xlsx,
	})
	if err != nil {
		return stats, err
	}
	if summary != nil {
		summary.Outputs = append(summary.Outputs, opts.Output)
		if xlsx != "" {
			summary.Outputs = append(summary.Outputs, xlsx)
		}
	}
	return stats, nil
}

// ReplaceExt swaps the extension of path.
func ReplaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

// OutputPath joins name onto dir, creating dir when needed.
func OutputPath(dir, name string) (string, error) {
	if dir == "" {
		return name, nil
	}
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// FinishSummary stamps, logs and optionally writes the summary in the
// format given by the file extension (.json or .xml).
func FinishSummary(c *container.Container, summary *report.RunSummary, path string) error {
	summary.Finish()
	gen := c.ReportGenerator()
	gen.LogSummary(summary)
	if path == "" {
		return nil
	}

	format, err := validation.SummaryFormat(path)
	if err != nil {
		return err
	}
	data, err := gen.GenerateReport(summary, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	c.GetLogger().Info("Wrote run summary", logging.F(logging.FieldFile, path))
	return nil
}

// ExpandPaths resolves glob patterns into a sorted, deduplicated file list.
// Arguments without glob metacharacters are kept as given.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			matches = []string{arg}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
