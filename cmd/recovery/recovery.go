// Package recovery handles re-parsing of unclassified lines
package recovery

import (
	"context"

	"sunlight/senate-csv/cmd/common"
	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/container"
	internalrecovery "sunlight/senate-csv/internal/recovery"

	"github.com/spf13/cobra"
)

// Options holds the recover command flags.
type Options struct {
	Input    string
	Output   string
	PagesDir string
}

var flags Options

// Cmd represents the recover command
var Cmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover records from the missing data file",
	Long: `Recover records from the missing data file written by parse.

Unclassified lines are re-parsed with looser expense and salary shapes.
Offices are resolved from the page text files, carrying the last office
forward when a page has none. The output uses the record CSV layout so it
can be cleaned like senate_data.csv.`,
	Args: cobra.NoArgs,
	Run:  recoverFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Input, "input", "i", common.MissingFile, "Missing data file")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", common.RecoveredFile, "Recovered record CSV file")
	Cmd.Flags().StringVarP(&flags.PagesDir, "pages-dir", "p", "", "Directory of page text files (default from config)")
}

func recoverFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	if _, err := Run(cmd.Context(), appContainer, flags); err != nil {
		logger.Fatalf("Error recovering records: %v", err)
	}
}

// Run recovers records from the missing data file.
func Run(ctx context.Context, c *container.Container, opts Options) (internalrecovery.Stats, error) {
	return c.Recoverer(opts.PagesDir).RecoverFile(ctx, opts.Input, opts.Output, c.Delimiter())
}
