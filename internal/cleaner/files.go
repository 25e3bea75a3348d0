package cleaner

import (
	"fmt"

	"sunlight/senate-csv/internal/common"
	"sunlight/senate-csv/internal/logging"
)

// FileOptions controls CleanFile output.
type FileOptions struct {
	SourceDoc string
	Delimiter rune
	Banner    string
	// XLSXPath, when set, receives a spreadsheet copy.
	XLSXPath string
}

// CleanFile reads a raw record CSV and writes the cleaned CSV.
func (c *Cleaner) CleanFile(rawPath, cleanPath string, opts FileOptions) (Stats, error) {
	raw, err := common.ReadRawRows(rawPath, opts.Delimiter, c.logger)
	if err != nil {
		return Stats{}, err
	}

	rows, stats := c.Clean(opts.SourceDoc, raw)
	csvOpts := common.CSVOptions{Delimiter: opts.Delimiter, Banner: opts.Banner}
	if err := common.WriteCleanRows(rows, cleanPath, csvOpts, c.logger); err != nil {
		return stats, fmt.Errorf("error writing cleaned CSV: %w", err)
	}
	if opts.XLSXPath != "" {
		if err := common.WriteCleanRowsToXLSX(rows, opts.XLSXPath, opts.Banner, c.logger); err != nil {
			return stats, err
		}
	}
	if stats.InvalidDates > 0 {
		c.logger.Warn("Rows carry invalid dates",
			logging.F(logging.FieldFile, rawPath),
			logging.F(logging.FieldCount, stats.InvalidDates))
	}
	LogStats(c.logger, "Cleaned records", stats)
	return stats, nil
}

// AnnotateFile adds bioguide ids to a cleaned CSV, keeping its banner. An
// empty outPath rewrites inPath.
func (c *Cleaner) AnnotateFile(inPath, outPath string, delimiter rune, overwrite bool) (Stats, error) {
	if outPath == "" {
		outPath = inPath
	}
	banner, err := common.ReadBanner(inPath, delimiter)
	if err != nil {
		return Stats{}, err
	}
	rows, err := common.ReadCleanRows(inPath, delimiter, c.logger)
	if err != nil {
		return Stats{}, err
	}

	stats := c.Annotate(rows, overwrite)
	csvOpts := common.CSVOptions{Delimiter: delimiter, Banner: banner}
	if err := common.WriteCleanRows(rows, outPath, csvOpts, c.logger); err != nil {
		return stats, fmt.Errorf("error writing annotated CSV: %w", err)
	}
	LogStats(c.logger.WithField(logging.FieldFile, inPath), "Annotated bioguide ids", stats)
	return stats, nil
}
