package senateparser

import (
	"context"
	"fmt"

	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
	"sunlight/senate-csv/internal/parser"
	"sunlight/senate-csv/internal/report"
)

// Adapter exposes the engine through the parser interfaces.
type Adapter struct {
	parser.BaseParser
	aggregator *Aggregator
	source     PageSource
	missing    report.MissingData
	stats      *RunStats
}

// NewAdapter creates an Adapter reading pages from source.
func NewAdapter(opts Options, source PageSource, delimiter rune, logger logging.Logger) (*Adapter, error) {
	base := parser.NewBaseParser(logger, delimiter)
	aggregator, err := NewAggregator(opts, base.GetLogger())
	if err != nil {
		return nil, err
	}
	return &Adapter{BaseParser: base, aggregator: aggregator, source: source}, nil
}

// SetLogger replaces the logger of the adapter and its engine.
func (a *Adapter) SetLogger(logger logging.Logger) {
	a.BaseParser.SetLogger(logger)
	a.aggregator.logger = a.GetLogger()
}

// Parse runs the engine over pages and returns the records in page order.
// The unclassified lines and statistics of the run are kept for Missing
// and Stats.
func (a *Adapter) Parse(ctx context.Context, pages []int) ([]models.Record, error) {
	a.missing = report.MissingData{}
	records := []models.Record{}

	stats, err := a.aggregator.Run(ctx, a.source, pages, func(result *PageResult) error {
		records = append(records, result.Records...)
		a.missing.Add(result.Missing)
		return nil
	})
	a.stats = stats
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Missing returns the unclassified lines of the last Parse, grouped by page.
func (a *Adapter) Missing() report.MissingData {
	return a.missing
}

// Stats returns the statistics of the last Parse.
func (a *Adapter) Stats() *RunStats {
	return a.stats
}

// ConvertToCSV parses pages and writes the record CSV and the missing data
// file.
func (a *Adapter) ConvertToCSV(ctx context.Context, pages []int, csvFile, missingFile string) (*RunStats, error) {
	logger := a.GetLogger()
	logger.Info("Parsing pages",
		logging.F(logging.FieldCount, len(pages)),
		logging.F(logging.FieldOutputFile, csvFile))

	records, err := a.Parse(ctx, pages)
	if err != nil {
		return a.stats, err
	}
	if err := a.WriteToCSV(records, csvFile); err != nil {
		return a.stats, fmt.Errorf("error writing records to CSV: %w", err)
	}
	if missingFile != "" {
		if err := report.WriteMissingData(missingFile, a.missing); err != nil {
			return a.stats, fmt.Errorf("error writing missing data: %w", err)
		}
		logger.Info("Wrote unclassified lines",
			logging.F(logging.FieldFile, missingFile),
			logging.F(logging.FieldCount, a.missing.Count()))
	}
	return a.stats, nil
}
