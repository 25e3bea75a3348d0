// Package parse handles conversion of extracted page text to the record CSV
package parse

import (
	"context"

	"sunlight/senate-csv/cmd/common"
	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/report"
	"sunlight/senate-csv/internal/senateparser"

	"github.com/spf13/cobra"
)

var flags common.ParseOptions

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse page text files into the record CSV",
	Long: `Parse extracted page text files into the record CSV.

Every data line is either folded into a record, emitted as a record, skipped
as a subtotal, or written to the missing data file for recovery. Without
--start and --end the pages present in the pages directory are parsed.`,
	Args: cobra.NoArgs,
	Run:  parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.PagesDir, "pages-dir", "p", "", "Directory of page text files (default from config)")
	Cmd.Flags().IntVar(&flags.Start, "start", 0, "First page to parse")
	Cmd.Flags().IntVar(&flags.End, "end", 0, "Last page to parse")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", common.RecordsFile, "Record CSV file")
	Cmd.Flags().StringVarP(&flags.MissingFile, "missing", "m", common.MissingFile, "Unclassified lines file (empty to disable)")
}

func parseFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	if _, err := Run(cmd.Context(), appContainer, flags, root.SharedFlags.Summary); err != nil {
		logger.Fatalf("Error parsing pages: %v", err)
	}
}

// Run parses pages and writes the summary when summaryPath is set.
func Run(ctx context.Context, c *container.Container, opts common.ParseOptions, summaryPath string) (*senateparser.RunStats, error) {
	summary := report.NewRunSummary("parse")
	stats, err := common.Parse(ctx, c, opts, summary)
	if err != nil {
		return stats, err
	}
	return stats, common.FinishSummary(c, summary, summaryPath)
}
