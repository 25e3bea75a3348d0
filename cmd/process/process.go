// Package process runs the full PDF to cleaned CSV pipeline
package process

import (
	"context"

	"sunlight/senate-csv/cmd/common"
	"sunlight/senate-csv/cmd/extract"
	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/cleaner"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/report"
	"sunlight/senate-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Options holds the process command flags.
type Options struct {
	OutputDir string
	PagesDir  string
	Start     int
	End       int
	Force     bool
	SourceDoc string
	NoBanner  bool
}

// Result lists the files a pipeline run wrote.
type Result struct {
	Records string
	Missing string
	Cleaned string
}

var flags Options

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process <report.pdf>",
	Short: "Extract, parse and clean a report PDF",
	Long: `Extract, parse and clean a report PDF in one run.

Writes senate_data.csv, missing_data.json and senate_data_cleaned.csv to the
output directory. The source document name defaults to the PDF file name
without its GPO-CDOC- prefix.`,
	Args: cobra.ExactArgs(1),
	Run:  processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "", "Directory for the CSV and JSON outputs")
	Cmd.Flags().StringVarP(&flags.PagesDir, "pages-dir", "p", "", "Directory for page text files (default from config)")
	Cmd.Flags().IntVar(&flags.Start, "start", 0, "First page")
	Cmd.Flags().IntVar(&flags.End, "end", 0, "Last page")
	Cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "Re-extract pages that already exist")
	Cmd.Flags().StringVar(&flags.SourceDoc, "source-doc", "", "Source document name written to every row")
	Cmd.Flags().BoolVar(&flags.NoBanner, "no-banner", false, "Omit the citation banner")
}

func processFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	if err := validation.InputFile(args[0]); err != nil {
		logger.Fatalf("Invalid input: %v", err)
	}
	if _, err := Run(cmd.Context(), appContainer, args[0], flags, root.SharedFlags.Summary); err != nil {
		logger.Fatalf("Error processing report: %v", err)
	}
}

// Run executes the pipeline for pdfPath.
func Run(ctx context.Context, c *container.Container, pdfPath string, opts Options, summaryPath string) (*Result, error) {
	summary := report.NewRunSummary("process")

	res, err := extract.Run(ctx, c, pdfPath, extract.Options{
		PagesDir: opts.PagesDir,
		Start:    opts.Start,
		End:      opts.End,
		Force:    opts.Force,
	})
	if err != nil {
		return nil, err
	}

	var out Result
	if out.Records, err = common.OutputPath(opts.OutputDir, common.RecordsFile); err != nil {
		return nil, err
	}
	if out.Missing, err = common.OutputPath(opts.OutputDir, common.MissingFile); err != nil {
		return nil, err
	}
	if out.Cleaned, err = common.OutputPath(opts.OutputDir, common.CleanedFile); err != nil {
		return nil, err
	}

	_, err = common.Parse(ctx, c, common.ParseOptions{
		PagesDir:    opts.PagesDir,
		Start:       res.Start,
		End:         res.End,
		Output:      out.Records,
		MissingFile: out.Missing,
	}, summary)
	if err != nil {
		return nil, err
	}

	sourceDoc := opts.SourceDoc
	if sourceDoc == "" {
		sourceDoc = cleaner.SourceDoc(pdfPath)
	}
	_, err = common.Clean(ctx, c, common.CleanOptions{
		Input:     out.Records,
		Output:    out.Cleaned,
		SourceDoc: sourceDoc,
		NoBanner:  opts.NoBanner,
	}, summary)
	if err != nil {
		return nil, err
	}

	return &out, common.FinishSummary(c, summary, summaryPath)
}
