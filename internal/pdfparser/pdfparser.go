// Package pdfparser extracts per-page layout text from report PDFs.
package pdfparser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/logging"
)

// PageCount returns the number of pages in a PDF.
func PageCount(pdfPath string) (int, error) {
	f, err := os.Open(pdfPath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return 0, fmt.Errorf("error opening PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("error reading page count of %s: %w", pdfPath, err)
	}
	return n, nil
}

// Options controls which pages are extracted and where they go.
type Options struct {
	PagesDir    string
	FilePattern string
	Start       int
	// End of 0 means the last page of the PDF.
	End   int
	Force bool
}

// Result summarizes an extraction.
type Result struct {
	Start     int
	End       int
	Extracted int
	Existing  int
}

// Extractor writes page text files for a PDF.
type Extractor struct {
	pdf       PDFExtractor
	pageCount func(string) (int, error)
	logger    logging.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(pdf PDFExtractor, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Extractor{pdf: pdf, pageCount: PageCount, logger: logger}
}

// NewExtractorWithCounter creates an Extractor that sizes PDFs with count
// instead of reading them.
func NewExtractorWithCounter(pdf PDFExtractor, count func(string) (int, error), logger logging.Logger) *Extractor {
	e := NewExtractor(pdf, logger)
	if count != nil {
		e.pageCount = count
	}
	return e
}

// PagePath returns the text file path of page n.
func PagePath(opts Options, n int) string {
	return filepath.Join(opts.PagesDir, fmt.Sprintf(opts.FilePattern, n))
}

// ExtractPages writes one text file per page in [Start, End]. When every
// page file already exists and Force is unset, nothing is run.
func (e *Extractor) ExtractPages(ctx context.Context, pdfPath string, opts Options) (*Result, error) {
	start, end := opts.Start, opts.End
	if start <= 0 {
		start = 1
	}
	if end <= 0 {
		n, err := e.pageCount(pdfPath)
		if err != nil {
			return nil, err
		}
		end = n
	}
	if end < start {
		return nil, fmt.Errorf("invalid page range %d-%d", start, end)
	}
	if err := fileutils.EnsureDirectoryExists(opts.PagesDir); err != nil {
		return nil, err
	}

	result := &Result{Start: start, End: end}
	if !opts.Force && e.allExist(opts, start, end) {
		result.Existing = end - start + 1
		e.logger.Info("Pages already extracted, skipping",
			logging.F(logging.FieldFile, opts.PagesDir),
			logging.F(logging.FieldCount, result.Existing))
		return result, nil
	}

	e.logger.Info("Extracting pages",
		logging.F(logging.FieldFile, pdfPath),
		logging.F("start", start),
		logging.F("end", end))
	for n := start; n <= end; n++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		out := PagePath(opts, n)
		if !opts.Force && fileutils.FileExists(out) {
			result.Existing++
			continue
		}
		if err := e.pdf.ExtractPage(ctx, pdfPath, n, out); err != nil {
			return result, err
		}
		result.Extracted++
		if result.Extracted%100 == 0 {
			e.logger.Debug("Extraction progress", logging.F(logging.FieldPage, n))
		}
	}

	e.logger.Info("Extracted pages",
		logging.F("extracted", result.Extracted),
		logging.F("existing", result.Existing))
	return result, nil
}

func (e *Extractor) allExist(opts Options, start, end int) bool {
	for n := start; n <= end; n++ {
		if !fileutils.FileExists(PagePath(opts, n)) {
			return false
		}
	}
	return true
}
