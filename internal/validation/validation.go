// Package validation checks command inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sunlight/senate-csv/internal/parsererror"
)

// Summary formats
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// InputFile checks that path exists and is a regular file.
func InputFile(path string) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a regular file"}
	}
	return nil
}

// InputDir checks that path exists and is a directory.
func InputDir(path string) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a directory"}
	}
	return nil
}

func stat(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &parsererror.ValidationError{FilePath: path, Reason: "path does not exist", Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("error checking path %s: %w", path, err)
	}
	return info, nil
}

// SummaryFormat returns the report format implied by the extension of
// path.
func SummaryFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unsupported summary format: %q. Supported extensions are '.json', '.xml'", ext)
	}
}
