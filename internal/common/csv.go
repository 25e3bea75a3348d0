// Package common provides the CSV and spreadsheet sinks shared by the
// parsing, cleaning and recovery stages.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// CSVOptions controls how a CSV file is written.
type CSVOptions struct {
	Delimiter rune
	// Banner, when set, is written as a single-cell first line before the
	// header row.
	Banner string
}

func (o CSVOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// Lines before the row starting with headerColumn are ignored, which
// drops a citation banner when present. An empty headerColumn reads the
// file as is.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, headerColumn string, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger.Info("Reading CSV file", logging.F(logging.FieldFile, filePath))

	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	if headerColumn != "" {
		data = skipToHeader(data, headerColumn)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.LazyQuotes = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// skipToHeader drops every line before the first one that begins with
// column. Data without such a line is returned unchanged.
func skipToHeader(data []byte, column string) []byte {
	rest := data
	offset := 0
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i+1]
		}
		if strings.HasPrefix(strings.TrimLeft(string(line), "\ufeff\""), column) {
			return data[offset:]
		}
		offset += len(line)
		rest = rest[len(line):]
	}
	return data
}

// WriteCSVFile marshals rows to filePath with gocsv.
func WriteCSVFile[TCSVRow any](rows []TCSVRow, filePath string, opts CSVOptions, logger logging.Logger) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	logger.Info("Writing CSV file",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rows)),
		logging.F(logging.FieldDelimiter, string(opts.delimiter())))

	file, err := fileutils.CreateFile(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = opts.delimiter()

	if opts.Banner != "" {
		if err := csvWriter.Write([]string{opts.Banner}); err != nil {
			return fmt.Errorf("error writing banner: %w", err)
		}
	}

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}

	logger.Info("Successfully wrote CSV file",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}

// WriteRecordsToCSV flattens records into raw rows and writes them.
func WriteRecordsToCSV(records []models.Record, filePath string, delimiter rune, logger logging.Logger) error {
	rows := make([]models.RawRow, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].ToRawRow())
	}
	return WriteCSVFile(rows, filePath, CSVOptions{Delimiter: delimiter}, logger)
}

// ReadRawRows reads a raw record CSV.
func ReadRawRows(filePath string, delimiter rune, logger logging.Logger) ([]models.RawRow, error) {
	return ReadCSVFile[models.RawRow](filePath, delimiter, "office", logger)
}

// WriteCleanRows writes cleaned rows, preceded by the banner when set.
func WriteCleanRows(rows []models.CleanRow, filePath string, opts CSVOptions, logger logging.Logger) error {
	return WriteCSVFile(rows, filePath, opts, logger)
}

// ReadCleanRows reads a cleaned CSV, ignoring a leading banner line.
func ReadCleanRows(filePath string, delimiter rune, logger logging.Logger) ([]models.CleanRow, error) {
	return ReadCSVFile[models.CleanRow](filePath, delimiter, models.CleanColumns[0], logger)
}

// ReadBanner returns the banner line of a cleaned CSV, or "" when the file
// starts with its header.
func ReadBanner(filePath string, delimiter rune) (string, error) {
	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	reader := csv.NewReader(bytes.NewReader(data))
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	first, err := reader.Read()
	if err != nil {
		return "", fmt.Errorf("error reading first line: %w", err)
	}
	if len(first) > 0 && strings.TrimPrefix(first[0], "\ufeff") == models.CleanColumns[0] {
		return "", nil
	}
	return strings.Join(first, string(delimiter)), nil
}
