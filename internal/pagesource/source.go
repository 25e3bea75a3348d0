// Package pagesource loads extracted page text from a directory of
// per-page layout files.
package pagesource

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
	"sunlight/senate-csv/internal/parsererror"
)

// DirSource reads pages named by a %d template inside a directory.
type DirSource struct {
	dir     string
	pattern string
	logger  logging.Logger
}

// NewDirSource creates a DirSource. pattern must hold a single %d verb.
func NewDirSource(dir, pattern string, logger logging.Logger) *DirSource {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &DirSource{dir: dir, pattern: pattern, logger: logger}
}

// Dir returns the page directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Path returns the file path of page n.
func (s *DirSource) Path(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf(s.pattern, n))
}

// Page loads and decodes page n. A missing file yields an error wrapping
// fs.ErrNotExist.
func (s *DirSource) Page(ctx context.Context, n int) (models.Page, error) {
	if err := ctx.Err(); err != nil {
		return models.Page{}, err
	}

	path := s.Path(n)
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return models.Page{}, err
	}

	text, err := Decode(path, data)
	if err != nil {
		return models.Page{}, err
	}
	if !utf8.Valid(data) {
		s.logger.Debug("Decoded page with ISO-8859-1 fallback",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldPage, n))
	}

	return models.Page{Number: n, Lines: SplitLines(text)}, nil
}

// Discover lists the page numbers present in the directory in ascending
// numeric order.
func (s *DirSource) Discover() ([]int, error) {
	numbers, err := fileutils.ListNumbered(s.dir, s.pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to discover pages in %s: %w", s.dir, err)
	}
	s.logger.Debug("Discovered page files",
		logging.F(logging.FieldFile, s.dir),
		logging.F(logging.FieldCount, len(numbers)))
	return numbers, nil
}

// Decode converts page bytes to text: UTF-8 when valid, ISO-8859-1
// otherwise. Non-breaking spaces become plain spaces.
func Decode(path string, data []byte) (string, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", &parsererror.DecodeError{FilePath: path, Err: err}
		}
		text = string(decoded)
	}
	return strings.ReplaceAll(text, "\u00a0", " "), nil
}

// SplitLines splits text into lines without terminators. A trailing
// newline does not produce an empty final line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
