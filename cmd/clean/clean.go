// Package clean handles conversion of the record CSV to the published CSV
package clean

import (
	"context"

	"sunlight/senate-csv/cmd/common"
	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/cleaner"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/report"

	"github.com/spf13/cobra"
)

var flags common.CleanOptions

// Cmd represents the clean command
var Cmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the record CSV for publication",
	Long: `Clean the record CSV for publication.

Derives the senator name, funding and fiscal years and congress number from
the office, normalises amounts, flags salary rows and looks up bioguide ids
for senator offices. The citation banner from the config is written as the
first line unless --no-banner is given.`,
	Args: cobra.NoArgs,
	Run:  cleanFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Input, "input", "i", common.RecordsFile, "Record CSV file")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", common.CleanedFile, "Cleaned CSV file")
	Cmd.Flags().StringVar(&flags.SourceDoc, "source-doc", "", "Source document name written to every row")
	Cmd.Flags().StringVar(&flags.XLSX, "xlsx", "", "Also write a spreadsheet copy to this file")
	Cmd.Flags().BoolVar(&flags.NoBanner, "no-banner", false, "Omit the citation banner")
}

func cleanFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	if _, err := Run(cmd.Context(), appContainer, flags, root.SharedFlags.Summary); err != nil {
		logger.Fatalf("Error cleaning records: %v", err)
	}
}

// Run cleans the record CSV.
func Run(ctx context.Context, c *container.Container, opts common.CleanOptions, summaryPath string) (cleaner.Stats, error) {
	summary := report.NewRunSummary("clean")
	stats, err := common.Clean(ctx, c, opts, summary)
	if err != nil {
		return stats, err
	}
	return stats, common.FinishSummary(c, summary, summaryPath)
}
