package senateparser

import "strings"

// ExtractTopMatter joins the left label column of the lines above the header
// into one normalized office description.
func ExtractTopMatter(lines []string, headerIndex, column int) string {
	if headerIndex > len(lines) {
		headerIndex = len(lines)
	}
	var fragments []string
	for _, line := range lines[:headerIndex] {
		if topMatterEndRe.MatchString(line) {
			break
		}
		left := leftColumn(line, column)
		if isBlank(left) {
			continue
		}
		fragments = append(fragments, strings.TrimSpace(left))
	}
	return strings.Join(strings.Fields(strings.Join(fragments, " ")), " ")
}

// leftColumn returns the runes of line before column.
func leftColumn(line string, column int) string {
	runes := []rune(line)
	if column < len(runes) {
		runes = runes[:column]
	}
	return string(runes)
}
