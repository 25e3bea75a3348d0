// Package container provides dependency injection for the senate-csv
// application. It builds every component from one configuration so
// commands never construct their own dependencies.
package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sunlight/senate-csv/internal/bioguide"
	"sunlight/senate-csv/internal/cleaner"
	"sunlight/senate-csv/internal/config"
	"sunlight/senate-csv/internal/govinfo"
	"sunlight/senate-csv/internal/httpclient"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/pagesource"
	"sunlight/senate-csv/internal/pdfparser"
	"sunlight/senate-csv/internal/recovery"
	"sunlight/senate-csv/internal/report"
	"sunlight/senate-csv/internal/senateparser"
)

// Container holds the application dependencies.
//
// The legislator matcher is loaded on first use and kept for the life of
// the container.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	delimiter rune

	downloads   *httpclient.Client
	legislators *httpclient.Client
	pdf         pdfparser.PDFExtractor
	pageCount   func(string) (int, error)

	mu      sync.Mutex
	matcher *bioguide.Matcher
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger behaves like NewContainer with an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	delim := []rune(cfg.CSV.Delimiter)
	if len(delim) != 1 {
		return nil, fmt.Errorf("CSV delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}

	attempts := uint(1)
	if cfg.Download.Attempts > 0 {
		attempts = uint(cfg.Download.Attempts)
	}
	delay := time.Duration(cfg.Download.DelayMillis) * time.Millisecond

	downloads := httpclient.New(httpclient.Options{
		UserAgent: cfg.Download.UserAgent,
		Headers:   govinfo.Headers,
		Attempts:  attempts,
		Delay:     delay,
		Timeout:   time.Duration(cfg.Download.TimeoutSeconds) * time.Second,
	}, logger)
	legislators := httpclient.New(httpclient.Options{
		UserAgent: cfg.Download.UserAgent,
		Attempts:  attempts,
		Delay:     delay,
		Timeout:   time.Duration(cfg.Bioguide.TimeoutSeconds) * time.Second,
	}, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldDelimiter, string(delim[0])),
		logging.F("bioguide_enabled", cfg.Bioguide.Enabled))

	return &Container{
		logger:      logger,
		config:      cfg,
		delimiter:   delim[0],
		downloads:   downloads,
		legislators: legislators,
		pdf:         pdfparser.NewRealPDFExtractor(cfg.Extract.Binary),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Delimiter returns the CSV field delimiter.
func (c *Container) Delimiter() rune {
	return c.delimiter
}

// ParserOptions returns the engine settings from the parser section.
func (c *Container) ParserOptions() senateparser.Options {
	p := c.config.Parser
	return senateparser.Options{
		TopMatterColumn:       p.TopMatterColumn,
		MinTopMatterLines:     p.MinTopMatterLines,
		OfficeLookback:        p.OfficeLookback,
		ContinuationSeparator: p.ContinuationSeparator,
		ExtraSubtotals:        p.ExtraSubtotals,
	}
}

// PageSource returns a page reader for dir, or for the configured pages
// directory when dir is empty.
func (c *Container) PageSource(dir string) *pagesource.DirSource {
	if dir == "" {
		dir = c.config.Pages.Directory
	}
	return pagesource.NewDirSource(dir, c.config.Pages.FilePattern, c.logger)
}

// Parser returns a parser reading pages from source.
func (c *Container) Parser(source senateparser.PageSource) (*senateparser.Adapter, error) {
	return senateparser.NewAdapter(c.ParserOptions(), source, c.delimiter, c.logger)
}

// SetPDFExtractor replaces the page extractor, mainly for tests.
func (c *Container) SetPDFExtractor(pdf pdfparser.PDFExtractor) {
	c.pdf = pdf
}

// SetPageCounter replaces the PDF page counter, mainly for tests.
func (c *Container) SetPageCounter(count func(string) (int, error)) {
	c.pageCount = count
}

// Extractor returns the PDF page extractor.
func (c *Container) Extractor() *pdfparser.Extractor {
	return pdfparser.NewExtractorWithCounter(c.pdf, c.pageCount, c.logger)
}

// ExtractOptions returns extraction settings for pages in [start, end].
func (c *Container) ExtractOptions(pagesDir string, start, end int, force bool) pdfparser.Options {
	if pagesDir == "" {
		pagesDir = c.config.Pages.Directory
	}
	return pdfparser.Options{
		PagesDir:    pagesDir,
		FilePattern: c.config.Pages.FilePattern,
		Start:       start,
		End:         end,
		Force:       force || c.config.Extract.Force,
	}
}

// Downloader returns the govinfo report downloader.
func (c *Container) Downloader(outputDir string, dryRun bool) *govinfo.Downloader {
	if outputDir == "" {
		outputDir = c.config.Download.OutputDir
	}
	return govinfo.NewDownloader(c.downloads, govinfo.Options{
		BaseURL:   c.config.Download.BaseURL,
		OutputDir: outputDir,
		Delay:     time.Duration(c.config.Download.DelayMillis) * time.Millisecond,
		DryRun:    dryRun,
	}, c.logger)
}

// Matcher loads the legislator matcher once.
func (c *Container) Matcher(ctx context.Context) (*bioguide.Matcher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matcher != nil {
		return c.matcher, nil
	}

	b := c.config.Bioguide
	loader := bioguide.NewLoader(bioguide.LoaderOptions{
		CurrentURL:    b.CurrentURL,
		HistoricalURL: b.HistoricalURL,
		CacheDir:      b.CacheDir,
		MaxAge:        time.Duration(b.MaxAgeDays) * 24 * time.Hour,
	}, c.legislators, c.logger)

	m, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.matcher = m
	return m, nil
}

// Cleaner returns a cleaner. When bioguide lookups are enabled but the
// legislator data cannot be loaded, ids are left empty.
func (c *Container) Cleaner(ctx context.Context) *cleaner.Cleaner {
	if !c.config.Bioguide.Enabled {
		return cleaner.New(nil, c.logger)
	}
	m, err := c.Matcher(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Bioguide data unavailable, leaving ids empty")
		return cleaner.New(nil, c.logger)
	}
	return cleaner.New(m, c.logger)
}

// Recoverer returns a recoverer resolving offices from pages in dir.
func (c *Container) Recoverer(dir string) *recovery.Recoverer {
	return recovery.New(c.PageSource(dir), c.config.Parser.OfficeLookback, c.logger)
}

// ReportGenerator returns the run summary writer.
func (c *Container) ReportGenerator() *report.ReportGenerator {
	return report.NewReportGenerator(c.logger)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
