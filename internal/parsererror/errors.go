// Package parsererror holds the typed errors returned across the pipeline,
// so callers can branch with errors.As instead of matching messages.
package parsererror

import "fmt"

// ParseError reports a single value that could not be converted, such as
// an amount or a posting date.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError rejects a command input before any work starts.
type ValidationError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.FilePath, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// InvalidFormatError means a file exists but is not in the layout the
// reader expects.
type InvalidFormatError struct {
	FilePath string
	Expected string
	Err      error
}

func (e *InvalidFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s is not a %s", e.FilePath, e.Expected)
	}
	return fmt.Sprintf("%s is not a %s: %v", e.FilePath, e.Expected, e.Err)
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// StructuralError reports a page whose layout cannot be trusted, such as a
// page carrying more than one column header.
type StructuralError struct {
	Page   int
	Count  int
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("page %d: %s (found %d)", e.Page, e.Reason, e.Count)
}

// AmbiguousMatchError accompanies a result when several candidates matched
// and the first was chosen.
type AmbiguousMatchError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match for '%s': %d candidates %v", e.Query, len(e.Candidates), e.Candidates)
}

// DecodeError reports page text that no supported encoding could decode.
type DecodeError struct {
	FilePath string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.FilePath, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
