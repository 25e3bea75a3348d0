package senateparser

import "sunlight/senate-csv/internal/parsererror"

// LocateHeader returns the index of the page's column header line. A page
// without a header reports false and should be skipped. More than one header
// is a structural fault.
func LocateHeader(page int, lines []string) (int, bool, error) {
	index, matches := 0, 0
	for i, line := range lines {
		if headerRe.MatchString(line) {
			matches++
			index = i
		}
	}
	switch {
	case matches == 0:
		return 0, false, nil
	case matches > 1:
		return 0, false, &parsererror.StructuralError{
			Page:   page,
			Count:  matches,
			Reason: "expected one column header",
		}
	}
	return index, true, nil
}
