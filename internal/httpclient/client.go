// Package httpclient downloads remote files with retries.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("resource not found")

// StatusError is a non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Options configures a Client.
type Options struct {
	UserAgent string
	Headers   map[string]string
	Attempts  uint
	Delay     time.Duration
	Timeout   time.Duration
}

// Client performs GET requests, retrying transport errors and 5xx/429
// answers.
type Client struct {
	http   *http.Client
	opts   Options
	logger logging.Logger
}

// New creates a Client.
func New(opts Options, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.Attempts == 0 {
		opts.Attempts = 1
	}
	return &Client{
		http:   &http.Client{Timeout: opts.Timeout},
		opts:   opts,
		logger: logger,
	}
}

// Fetch returns the body of url.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.do(ctx, url, func(r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Download stores url at dest and returns the number of bytes written. The
// file is written to a temporary name and renamed once complete.
func (c *Client) Download(ctx context.Context, url, dest string) (int64, error) {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(dest)); err != nil {
		return 0, err
	}
	tmp := dest + ".part"

	var written int64
	err := c.do(ctx, url, func(r io.Reader) error {
		f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, models.PermissionFile) // #nosec G304 -- dest comes from configuration
		if err != nil {
			return retry.Unrecoverable(err)
		}
		n, copyErr := io.Copy(f, r)
		closeErr := f.Close()
		if copyErr != nil {
			return copyErr
		}
		if closeErr != nil {
			return closeErr
		}
		written = n
		return nil
	})
	if err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return 0, fmt.Errorf("failed to move download into place: %w", err)
	}
	return written, nil
}

func (c *Client) do(ctx context.Context, url string, consume func(io.Reader) error) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if c.opts.UserAgent != "" {
				req.Header.Set("User-Agent", c.opts.UserAgent)
			}
			for k, v := range c.opts.Headers {
				req.Header.Set(k, v)
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			switch {
			case resp.StatusCode == http.StatusNotFound:
				return retry.Unrecoverable(fmt.Errorf("GET %s: %w", url, ErrNotFound))
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				return &StatusError{URL: url, StatusCode: resp.StatusCode}
			case resp.StatusCode != http.StatusOK:
				return retry.Unrecoverable(&StatusError{URL: url, StatusCode: resp.StatusCode})
			}
			return consume(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(c.opts.Attempts),
		retry.Delay(c.opts.Delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.WithError(err).Warn("Request failed, retrying",
				logging.F(logging.FieldURL, url),
				logging.F("attempt", n+1))
		}),
	)
}
