package pdfparser

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"sync"

	"sunlight/senate-csv/internal/fileutils"
)

// PDFExtractor renders one PDF page to a layout-preserving text file.
// Implementations are swapped for tests.
type PDFExtractor interface {
	ExtractPage(ctx context.Context, pdfPath string, page int, outPath string) error
}

// RealPDFExtractor runs the pdftotext command.
type RealPDFExtractor struct {
	binary string
}

// NewRealPDFExtractor creates an extractor calling binary, "pdftotext"
// when empty.
func NewRealPDFExtractor(binary string) *RealPDFExtractor {
	if binary == "" {
		binary = "pdftotext"
	}
	return &RealPDFExtractor{binary: binary}
}

// ExtractPage runs pdftotext -f n -l n -layout on a single page.
func (e *RealPDFExtractor) ExtractPage(ctx context.Context, pdfPath string, page int, outPath string) error {
	n := strconv.Itoa(page)
	cmd := exec.CommandContext(ctx, e.binary, "-f", n, "-l", n, "-layout", pdfPath, outPath) // #nosec G204 -- binary comes from configuration
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed on page %d: %w (output: %s)", e.binary, page, err, string(output))
	}
	return nil
}

// MockPDFExtractor writes canned page text and records the pages asked for.
type MockPDFExtractor struct {
	Pages   map[int]string
	MockErr error

	mu        sync.Mutex
	Extracted []int
}

// NewMockPDFExtractor creates a MockPDFExtractor.
func NewMockPDFExtractor(pages map[int]string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{Pages: pages, MockErr: mockErr}
}

// PageCount returns the highest canned page number.
func (e *MockPDFExtractor) PageCount(string) (int, error) {
	if e.MockErr != nil {
		return 0, e.MockErr
	}
	n := 0
	for page := range e.Pages {
		if page > n {
			n = page
		}
	}
	return n, nil
}

// ExtractPage writes the canned text for page to outPath.
func (e *MockPDFExtractor) ExtractPage(ctx context.Context, _ string, page int, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.MockErr != nil {
		return e.MockErr
	}
	e.mu.Lock()
	e.Extracted = append(e.Extracted, page)
	e.mu.Unlock()
	return fileutils.WriteFile(outPath, []byte(e.Pages[page]))
}
