package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/models"
	"sunlight/senate-csv/internal/parsererror"
)

// MissingData groups unclassified lines by page, one group per page that
// had any.
type MissingData [][]models.UnclassifiedLine

// Add appends a page's lines as a new group. Empty input is ignored.
func (m *MissingData) Add(lines []models.UnclassifiedLine) {
	if len(lines) == 0 {
		return
	}
	*m = append(*m, append([]models.UnclassifiedLine(nil), lines...))
}

// Count returns the total number of lines across groups.
func (m MissingData) Count() int {
	n := 0
	for _, g := range m {
		n += len(g)
	}
	return n
}

// WriteMissingData writes the groups as an indented JSON array.
func WriteMissingData(path string, data MissingData) error {
	if data == nil {
		data = MissingData{}
	}
	out, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal missing data: %w", err)
	}
	return fileutils.WriteFile(path, append(out, '\n'))
}

// trailingCommaRe matches a comma left before the document's closing
// bracket, as found in hand-assembled dumps. Brackets inside string values
// are never at the end of the document.
var trailingCommaRe = regexp.MustCompile(`,\s*\]$`)

// ReadMissingData loads a missing data file.
func ReadMissingData(path string) (MissingData, error) {
	raw, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw = trailingCommaRe.ReplaceAll(bytes.TrimSpace(raw), []byte("]"))

	var data MissingData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &parsererror.InvalidFormatError{FilePath: path, Expected: "missing data file", Err: err}
	}
	return data, nil
}
