package bioguide

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/logging"
)

// Cache file names.
const (
	CurrentFile    = "legislators-current.yaml"
	HistoricalFile = "legislators-historical.yaml"
)

// Fetcher downloads a URL to a local file.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) (int64, error)
}

// LoaderOptions locates the legislator data.
type LoaderOptions struct {
	CurrentURL    string
	HistoricalURL string
	CacheDir      string
	MaxAge        time.Duration
}

// Loader builds a Matcher from cached or freshly downloaded data.
type Loader struct {
	opts    LoaderOptions
	fetcher Fetcher
	logger  logging.Logger
	now     func() time.Time
}

// NewLoader creates a Loader.
func NewLoader(opts LoaderOptions, fetcher Fetcher, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{opts: opts, fetcher: fetcher, logger: logger, now: time.Now}
}

// Load reads the current and historical legislator files, downloading
// them when the cached copy is missing or older than MaxAge.
func (l *Loader) Load(ctx context.Context) (*Matcher, error) {
	if err := fileutils.EnsureDirectoryExists(l.opts.CacheDir); err != nil {
		return nil, err
	}

	var senators []Senator
	for _, src := range []struct{ url, file string }{
		{l.opts.CurrentURL, CurrentFile},
		{l.opts.HistoricalURL, HistoricalFile},
	} {
		path, err := l.cached(ctx, src.url, src.file)
		if err != nil {
			return nil, err
		}
		data, err := fileutils.ReadFile(path)
		if err != nil {
			return nil, err
		}
		parsed, err := ParseLegislators(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		senators = append(senators, parsed...)
	}

	l.logger.Info("Loaded senators", logging.F(logging.FieldCount, len(senators)))
	m := NewMatcher(senators, l.logger)
	m.now = l.now
	return m, nil
}

// cached returns the path of an up to date copy of url. A failed download
// falls back to a stale copy when one exists.
func (l *Loader) cached(ctx context.Context, url, file string) (string, error) {
	path := filepath.Join(l.opts.CacheDir, file)

	if info, err := os.Stat(path); err == nil {
		age := l.now().Sub(info.ModTime())
		if age < l.opts.MaxAge {
			l.logger.Debug("Using cached legislator data",
				logging.F(logging.FieldFile, path),
				logging.F("age_hours", int(age.Hours())))
			return path, nil
		}
	}

	l.logger.Info("Downloading legislator data", logging.F(logging.FieldURL, url))
	if _, err := l.fetcher.Download(ctx, url, path); err != nil {
		if fileutils.FileExists(path) {
			l.logger.WithError(err).Warn("Download failed, using stale cache",
				logging.F(logging.FieldFile, path))
			return path, nil
		}
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	return path, nil
}
