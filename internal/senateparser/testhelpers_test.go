package senateparser

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"sunlight/senate-csv/internal/models"
)

const headerLine = "   DOCUMENT NO.   DATE POSTED   PAYEE          START      END       DESCRIPTION        AMOUNT"

// at indents text so that it starts at rune column col.
func at(col int, text string) string {
	return strings.Repeat(" ", col) + text
}

// column returns the rune column of sub within line.
func column(line, sub string) int {
	return utf8.RuneCountInString(line[:strings.Index(line, sub)])
}

// topMatter builds the seven lines above a full-page header.
func topMatter(label, right string) []string {
	return []string{
		fmt.Sprintf("%-48s%s", label, right),
		fmt.Sprintf("%-48s%s", "Funding Year 2016", "NET FUNDS AVAILABLE"),
		"",
		"",
		"",
		"",
		"",
	}
}

func fullPage(number int, label string, data ...string) models.Page {
	lines := append(topMatter(label, "DESCRIPTION"), headerLine)
	return models.Page{Number: number, Lines: append(lines, data...)}
}

// continuationPage has a header too close to the top for top matter.
func continuationPage(number int, data ...string) models.Page {
	lines := []string{"", headerLine}
	return models.Page{Number: number, Lines: append(lines, data...)}
}

type mapSource map[int]models.Page

func (s mapSource) Page(_ context.Context, n int) (models.Page, error) {
	page, ok := s[n]
	if !ok {
		return models.Page{}, fmt.Errorf("page %d: %w", n, fs.ErrNotExist)
	}
	return page, nil
}
