// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"sunlight/senate-csv/internal/common"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
)

// BaseParser provides the logger and CSV output shared by parser
// implementations. Parsers embed it:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger    logging.Logger
	delimiter rune
}

// NewBaseParser creates a BaseParser. A nil logger falls back to an info
// level text logger and a zero delimiter to a comma.
func NewBaseParser(logger logging.Logger, delimiter rune) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return BaseParser{logger: logger, delimiter: delimiter}
}

// SetLogger replaces the logger; nil is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// Delimiter returns the CSV delimiter.
func (b *BaseParser) Delimiter() rune {
	return b.delimiter
}

// WriteToCSV writes records in the raw CSV layout.
func (b *BaseParser) WriteToCSV(records []models.Record, csvFile string) error {
	b.logger.Info("Writing records to CSV using common writer",
		logging.F(logging.FieldFile, csvFile),
		logging.F(logging.FieldCount, len(records)))

	return common.WriteRecordsToCSV(records, csvFile, b.delimiter, b.logger)
}
