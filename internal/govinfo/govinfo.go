// Package govinfo downloads Senate disbursement report PDFs from
// govinfo.gov.
package govinfo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/httpclient"
	"sunlight/senate-csv/internal/logging"
)

// partSuffixes are the file name suffixes of single-file and split reports.
var partSuffixes = []string{"", "-1", "-2", "-3"}

// Headers are sent with every download; govinfo rejects bare clients.
var Headers = map[string]string{
	"Accept":          "application/pdf,application/octet-stream,*/*",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://www.govinfo.gov/",
}

// FileName returns the PDF name of a report part.
func FileName(docID, suffix string) string {
	return fmt.Sprintf("GPO-CDOC-%s%s.pdf", strings.ToLower(docID), suffix)
}

// URLs returns the candidate PDF URLs of a report: the single file and
// up to three parts.
func URLs(baseURL, docID string) []string {
	id := strings.ToLower(strings.TrimSpace(docID))
	base := fmt.Sprintf("%s/GPO-CDOC-%s/pdf", strings.TrimRight(baseURL, "/"), id)
	urls := make([]string, 0, len(partSuffixes))
	for _, s := range partSuffixes {
		urls = append(urls, base+"/"+FileName(id, s))
	}
	return urls
}

// ParseDocIDs reads one id per line, skipping blank lines and lines
// starting with '#'.
func ParseDocIDs(data []byte) []string {
	var ids []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ReadDocIDs reads ids from a list file.
func ReadDocIDs(path string) ([]string, error) {
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocIDs(data), nil
}

// Dedup lower-cases ids and drops repeats, keeping first occurrences.
func Dedup(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Commands returns wget command lines for downloading ids by hand.
func Commands(baseURL, outputDir string, ids []string) []string {
	var cmds []string
	for _, id := range Dedup(ids) {
		for _, url := range URLs(baseURL, id) {
			dest := filepath.Join(outputDir, id, filepath.Base(url))
			cmds = append(cmds, fmt.Sprintf("wget -O %s %s", dest, url))
		}
	}
	return cmds
}

// Fetcher downloads a URL to a local file.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) (int64, error)
}

// Options configures a Downloader.
type Options struct {
	BaseURL   string
	OutputDir string
	Delay     time.Duration
	DryRun    bool
}

// Report is the outcome for one document id.
type Report struct {
	DocID      string
	Directory  string
	Downloaded []string
	Existing   []string
	Absent     []string
	Planned    []string
}

// Found reports whether any part of the document is available locally.
func (r Report) Found() bool {
	return len(r.Downloaded)+len(r.Existing) > 0
}

// Downloader fetches report PDFs into one directory per document.
type Downloader struct {
	fetcher Fetcher
	opts    Options
	logger  logging.Logger
}

// NewDownloader creates a Downloader.
func NewDownloader(fetcher Fetcher, opts Options, logger logging.Logger) *Downloader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Downloader{fetcher: fetcher, opts: opts, logger: logger}
}

// DownloadReport fetches every available part of docID. Parts already on
// disk are kept; a 404 marks a part absent.
func (d *Downloader) DownloadReport(ctx context.Context, docID string) (Report, error) {
	id := strings.ToLower(strings.TrimSpace(docID))
	report := Report{DocID: id, Directory: filepath.Join(d.opts.OutputDir, id)}
	logger := d.logger.WithField(logging.FieldDocument, id)

	if !d.opts.DryRun {
		if err := fileutils.EnsureDirectoryExists(report.Directory); err != nil {
			return report, err
		}
	}

	for i, url := range URLs(d.opts.BaseURL, id) {
		dest := filepath.Join(report.Directory, filepath.Base(url))
		if fileutils.FileExists(dest) {
			report.Existing = append(report.Existing, dest)
			logger.Debug("Already downloaded", logging.F(logging.FieldFile, dest))
			continue
		}
		if d.opts.DryRun {
			report.Planned = append(report.Planned, url)
			logger.Info("Would download", logging.F(logging.FieldURL, url))
			continue
		}

		if i > 0 {
			if err := sleep(ctx, d.opts.Delay); err != nil {
				return report, err
			}
		}
		n, err := d.fetcher.Download(ctx, url, dest)
		switch {
		case errors.Is(err, httpclient.ErrNotFound):
			report.Absent = append(report.Absent, url)
			logger.Debug("Part not published", logging.F(logging.FieldURL, url))
		case err != nil:
			return report, fmt.Errorf("failed to download %s: %w", url, err)
		default:
			report.Downloaded = append(report.Downloaded, dest)
			logger.Info("Downloaded report part",
				logging.F(logging.FieldFile, dest),
				logging.F("bytes", n))
		}
	}

	if !d.opts.DryRun && !report.Found() {
		logger.Warn("No PDF found for document")
	}
	return report, nil
}

// DownloadAll downloads each id in turn, deduplicated.
func (d *Downloader) DownloadAll(ctx context.Context, ids []string) ([]Report, error) {
	var reports []Report
	for i, id := range Dedup(ids) {
		if i > 0 && !d.opts.DryRun {
			if err := sleep(ctx, d.opts.Delay); err != nil {
				return reports, err
			}
		}
		r, err := d.DownloadReport(ctx, id)
		reports = append(reports, r)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
