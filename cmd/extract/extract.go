// Package extract handles page text extraction from report PDFs
package extract

import (
	"context"
	"fmt"

	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/pdfparser"
	"sunlight/senate-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Options holds the extract command flags.
type Options struct {
	PagesDir string
	Start    int
	End      int
	Force    bool
}

var flags Options

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <report.pdf>",
	Short: "Extract layout text of each PDF page",
	Long: `Extract layout text of each page of a report PDF with pdftotext.

One file per page is written to the pages directory using the configured
file pattern. Extraction is skipped when every page file already exists,
unless --force is given.`,
	Args: cobra.ExactArgs(1),
	Run:  extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.PagesDir, "pages-dir", "p", "", "Directory for page text files (default from config)")
	Cmd.Flags().IntVar(&flags.Start, "start", 1, "First page to extract")
	Cmd.Flags().IntVar(&flags.End, "end", 0, "Last page to extract (default: last page of the PDF)")
	Cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "Re-extract pages that already exist")
}

func extractFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	if err := validation.InputFile(args[0]); err != nil {
		logger.Fatalf("Invalid input: %v", err)
	}
	if _, err := Run(cmd.Context(), appContainer, args[0], flags); err != nil {
		logger.Fatalf("Error extracting pages: %v", err)
	}
}

// Run extracts the pages of pdfPath.
func Run(ctx context.Context, c *container.Container, pdfPath string, opts Options) (*pdfparser.Result, error) {
	extractOpts := c.ExtractOptions(opts.PagesDir, opts.Start, opts.End, opts.Force)
	res, err := c.Extractor().ExtractPages(ctx, pdfPath, extractOpts)
	if err != nil {
		return res, fmt.Errorf("%s: %w", pdfPath, err)
	}
	c.GetLogger().Info("Extraction completed",
		logging.F(logging.FieldInputFile, pdfPath),
		logging.F("start", res.Start),
		logging.F("end", res.End))
	return res, nil
}
