// Package batch handles processing of every report PDF in a directory
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"sunlight/senate-csv/cmd/process"
	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/batch"
	"sunlight/senate-csv/internal/common"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
	"sunlight/senate-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Options holds the batch command flags.
type Options struct {
	OutputDir string
	Force     bool
	NoBanner  bool
}

var flags Options

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch <input-dir>",
	Short: "Process every report PDF in a directory",
	Long: `Process every report PDF found under a directory.

Split reports (GPO-CDOC-<id>-1.pdf, -2, ...) are grouped by document. Each
part is extracted, parsed and cleaned in its own directory, then the
cleaned rows of all parts are merged into <id>_cleaned.csv.

Example:
  senate-csv download --file reports.txt -o pdfs
  senate-csv batch pdfs -o output`,
	Args: cobra.ExactArgs(1),
	Run:  batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "output", "Directory for per-document outputs")
	Cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "Re-extract pages that already exist")
	Cmd.Flags().BoolVar(&flags.NoBanner, "no-banner", false, "Omit the citation banner")
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	count, err := Run(cmd.Context(), appContainer, args[0], flags)
	if err != nil {
		logger.Fatalf("Error during batch processing: %v", err)
	}
	logger.Info(fmt.Sprintf("Batch processing completed. %d merged files created.", count))
}

// FindPDFs lists the PDF files under dir.
func FindPDFs(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	return files, nil
}

// Run processes every document under inputDir and returns the number of
// merged files written. A failing document is logged and skipped.
func Run(ctx context.Context, c *container.Container, inputDir string, opts Options) (int, error) {
	logger := c.GetLogger()
	if err := validation.InputDir(inputDir); err != nil {
		return 0, err
	}
	files, err := FindPDFs(inputDir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		logger.Warn("No PDF files found in input directory", logging.F(logging.FieldFile, inputDir))
		return 0, nil
	}

	aggregator := batch.NewAggregator(logger)
	merged := 0
	for _, group := range aggregator.GroupFilesByDocument(files) {
		if err := ctx.Err(); err != nil {
			return merged, err
		}
		if err := processGroup(ctx, c, aggregator, group, opts); err != nil {
			logger.WithError(err).Error("Failed to process document",
				logging.F(logging.FieldDocument, group.DocID))
			continue
		}
		merged++
	}
	return merged, nil
}

func processGroup(ctx context.Context, c *container.Container, aggregator *batch.Aggregator, group batch.DocumentGroup, opts Options) error {
	docDir := filepath.Join(opts.OutputDir, group.DocID)

	parts := make([][]models.CleanRow, 0, len(group.Parts))
	for _, part := range group.Parts {
		partDir := docDir
		if len(group.Parts) > 1 || part.Number > 0 {
			partDir = filepath.Join(docDir, "part-"+strconv.Itoa(part.Number))
		}
		res, err := process.Run(ctx, c, part.File, process.Options{
			OutputDir: partDir,
			PagesDir:  filepath.Join(partDir, "pages"),
			Force:     opts.Force,
			SourceDoc: group.DocID,
			NoBanner:  true,
		}, "")
		if err != nil {
			return fmt.Errorf("%s: %w", part.File, err)
		}
		rows, err := common.ReadCleanRows(res.Cleaned, c.Delimiter(), c.GetLogger())
		if err != nil {
			return err
		}
		parts = append(parts, rows)
	}

	rows := aggregator.MergeRows(group.DocID, parts)
	banner := c.GetConfig().CSV.Citation
	if opts.NoBanner {
		banner = ""
	}
	out := filepath.Join(opts.OutputDir, batch.OutputFilename(group.DocID))
	csvOpts := common.CSVOptions{Delimiter: c.Delimiter(), Banner: banner}
	if err := common.WriteCleanRows(rows, out, csvOpts, c.GetLogger()); err != nil {
		return err
	}

	c.GetLogger().Info("Created merged file",
		logging.F(logging.FieldDocument, group.DocID),
		logging.F(logging.FieldCount, len(rows)),
		logging.F("posting_range", batch.PostingRange(rows).String()),
		logging.F(logging.FieldOutputFile, out))
	return nil
}
