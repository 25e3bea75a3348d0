package parser

import (
	"context"

	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
)

// Parser turns extracted pages into records.
type Parser interface {
	// Parse reads the given page numbers and returns their records in page
	// order. Implementations return typed errors from parsererror for
	// structural faults.
	Parse(ctx context.Context, pages []int) ([]models.Record, error)
}

// CSVWriter writes records to the raw CSV layout.
type CSVWriter interface {
	WriteToCSV(records []models.Record, csvFile string) error
}

// LoggerConfigurable lets callers swap the logger after construction.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
	GetLogger() logging.Logger
}

// FullParser combines every parser capability.
type FullParser interface {
	Parser
	CSVWriter
	LoggerConfigurable
}
