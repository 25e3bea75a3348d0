// Package bioguide handles bioguide id annotation of cleaned CSV files
package bioguide

import (
	"context"
	"fmt"

	"sunlight/senate-csv/cmd/common"
	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/cleaner"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Options holds the bioguide command flags.
type Options struct {
	Output    string
	Overwrite bool
}

var flags Options

// Cmd represents the bioguide command
var Cmd = &cobra.Command{
	Use:   "bioguide <cleaned.csv|pattern>...",
	Short: "Add bioguide ids to cleaned CSV files",
	Long: `Add bioguide ids to senator rows of cleaned CSV files.

Arguments may be file names or glob patterns. Files are rewritten in place
unless --output is given, which requires a single input. Rows that already
carry an id are left alone unless --overwrite is given.

Example:
  senate-csv bioguide "output/*_cleaned.csv"`,
	Args: cobra.MinimumNArgs(1),
	Run:  bioguideFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (single input only)")
	Cmd.Flags().BoolVar(&flags.Overwrite, "overwrite", false, "Replace existing bioguide ids")
}

func bioguideFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	if _, err := Run(cmd.Context(), appContainer, args, flags); err != nil {
		logger.Fatalf("Error adding bioguide ids: %v", err)
	}
}

// Run annotates every file matched by args and returns the summed counts.
func Run(ctx context.Context, c *container.Container, args []string, opts Options) (cleaner.Stats, error) {
	var total cleaner.Stats

	files, err := common.ExpandPaths(args)
	if err != nil {
		return total, err
	}
	if opts.Output != "" && len(files) != 1 {
		return total, fmt.Errorf("--output needs exactly one input file, got %d", len(files))
	}

	matcher, err := c.Matcher(ctx)
	if err != nil {
		return total, fmt.Errorf("failed to load bioguide data: %w", err)
	}
	cl := cleaner.New(matcher, c.GetLogger())

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		stats, err := cl.AnnotateFile(file, opts.Output, c.Delimiter(), opts.Overwrite)
		if err != nil {
			return total, fmt.Errorf("%s: %w", file, err)
		}
		total.Rows += stats.Rows
		total.SenatorRows += stats.SenatorRows
		total.Matched += stats.Matched
		total.Unmatched += stats.Unmatched
		total.Ambiguous += stats.Ambiguous
		total.AlreadyHadID += stats.AlreadyHadID
	}

	if len(files) > 1 {
		cleaner.LogStats(c.GetLogger().WithField(logging.FieldCount, len(files)), "Annotated all files", total)
	}
	return total, nil
}
