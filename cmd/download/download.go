// Package download handles fetching report PDFs from govinfo
package download

import (
	"context"
	"fmt"
	"io"

	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/govinfo"
	"sunlight/senate-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Options holds the download command flags.
type Options struct {
	File             string
	OutputDir        string
	DryRun           bool
	GenerateCommands bool
}

var flags Options

// Cmd represents the download command
var Cmd = &cobra.Command{
	Use:   "download [doc-id...]",
	Short: "Download report PDFs from govinfo",
	Long: `Download Senate disbursement report PDFs from govinfo.

Document ids such as 118sdoc13 come from the arguments and from --file, one
per line with # comments. Each report is saved in a directory named after
its id; split reports are fetched part by part.

Example:
  senate-csv download 118sdoc13 118sdoc7
  senate-csv download --file reports.txt --dry-run`,
	Run: downloadFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.File, "file", "f", "", "File listing document ids")
	Cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "", "Directory for downloaded reports (default from config)")
	Cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "List what would be downloaded")
	Cmd.Flags().BoolVar(&flags.GenerateCommands, "generate-commands", false, "Print wget commands instead of downloading")
}

func downloadFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	if _, err := Run(cmd.Context(), appContainer, args, flags, cmd.OutOrStdout()); err != nil {
		logger.Fatalf("Error downloading reports: %v", err)
	}
}

// DocIDs merges ids from args and the list file.
func DocIDs(args []string, file string) ([]string, error) {
	ids := append([]string(nil), args...)
	if file != "" {
		listed, err := govinfo.ReadDocIDs(file)
		if err != nil {
			return nil, err
		}
		ids = append(ids, listed...)
	}
	ids = govinfo.Dedup(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no document ids given")
	}
	return ids, nil
}

// Run downloads the reports, or prints wget commands to out when asked.
func Run(ctx context.Context, c *container.Container, args []string, opts Options, out io.Writer) ([]govinfo.Report, error) {
	ids, err := DocIDs(args, opts.File)
	if err != nil {
		return nil, err
	}

	if opts.GenerateCommands {
		outputDir := opts.OutputDir
		if outputDir == "" {
			outputDir = c.GetConfig().Download.OutputDir
		}
		for _, line := range govinfo.Commands(c.GetConfig().Download.BaseURL, outputDir, ids) {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	reports, err := c.Downloader(opts.OutputDir, opts.DryRun).DownloadAll(ctx, ids)
	if err != nil {
		return reports, err
	}

	var found, downloaded int
	for _, r := range reports {
		if r.Found() {
			found++
		}
		downloaded += len(r.Downloaded)
	}
	c.GetLogger().Info("Download complete",
		logging.F(logging.FieldCount, len(reports)),
		logging.F("found", found),
		logging.F("downloaded_files", downloaded),
		logging.F("dry_run", opts.DryRun))
	return reports, nil
}
