package senateparser

import (
	"fmt"
	"regexp"
	"strings"
)

// Lines reach the classifier without their terminators, so expressions that
// relied on a trailing newline accept end of line instead.
var (
	headerRe = regexp.MustCompile(`\s+START\s+END(\s|$)`)

	topMatterEndRe = regexp.MustCompile(`^\s+DOCUMENT\s+NO\.\s+DATE\s+PAYEE`)

	// Older report eras. Word characters include accented letters.
	strictExpenseRe = regexp.MustCompile(`^\s*([\p{L}\p{N}_]+)\s+(\d\d/\d\d/\d\d\d\d)\s+(.*?)\s+(\d\d/\d\d/\d\d\d\d)\s+(\d\d/\d\d/\d\d\d\d)\s*(.+?)\s+([\d\.\-\,]+)\s*$`)
	strictSalaryRe  = regexp.MustCompile(`^\s+([\p{L}\p{N}_][\p{L}\p{N}_\,\s\.\-\']+?)\s{10,}([\p{L}\p{N}_].*?)\s{4,}([\d\.\-\,]+)\s*`)
	missingDateRe   = regexp.MustCompile(`^\s*([\p{L}\p{N}_]+)\s+(\d\d/\d\d/\d\d\d\d)\s+(.*?)\s{10,}(.*?)\s+([\d\.\-\,]+)\s*$`)

	// Newer report eras: optional dates, amounts and page references.
	flexibleExpenseRe = regexp.MustCompile(`^\s*([A-Z0-9]{8,12})\s+` +
		`(\d\d/\d\d/\d\d\d\d)\s+` +
		`(.+?)\s{2,}` +
		`(?:(\d\d/\d\d/\d\d\d\d)\s+)?` +
		`(?:(\d\d/\d\d/\d\d\d\d)\s+)?` +
		`(.+?)` +
		`(?:\s+\$?([\d\,\.]+))?\s*` +
		`(?:B-\d+)?\s*$`)
	flexibleSalaryRe = regexp.MustCompile(`^\s+([A-Z][A-Z\s\,\.\-\']+?)\s{2,}` +
		`(.+?)\s{2,}` +
		`\$?([\d\,\.]+)\s*` +
		`(?:B-\d+)?\s*$`)
	flexibleSalaryNoAmountRe = regexp.MustCompile(`^\s+([A-Z][A-Z\s\,\.\-\']+?)\s{2,}` +
		`([A-Z][A-Z\s\,\.\-\/]+?)\s*` +
		`(?:B-\d+)?\s*$`)

	continuationWithAmountRe = regexp.MustCompile(`^\s*(.+?)\s{10,}([\d\.\-\,]+)\s*$`)

	footerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s+B\s*\-\s*\d+\s*`),
		regexp.MustCompile(`^\s+\w\-\d\-\d+`),
		regexp.MustCompile(`^\s+\w\-\d+`),
	}
)

// DefaultSubtotals lists the category headings that close a block of records.
var DefaultSubtotals = []string{
	"TRAVEL AND TRANSPORTATION OF PERSONS",
	"INTERDEPARTMENTAL TRANSPORTATION",
	"OTHER CONTRACTUAL SERVICES",
	"ACQUISITION OF ASSETS",
	"PERSONNEL BENEFITS",
	"NET PAYROLL EXPENSES",
	"PERSONNEL COMP. FULL-TIME PERMANENT",
	"OTHER PERSONNEL COMPENSATION",
	"RE-EMPLOYED ANNUITANTS",
	"BENEFITS FOR NON SENATE/FORMER PERSONNEL",
}

// salaryDenylist rejects flexible salary matches whose position is really a
// category or balance line.
var salaryDenylist = []string{"NET PAYROLL", "ORGANIZATION", "UNEXPENDED", "TOTAL", "AUTHORIZATION"}

// SubtotalPattern compiles a heading into an indented, whitespace-tolerant
// prefix pattern.
func SubtotalPattern(heading string) (*regexp.Regexp, error) {
	words := strings.Fields(heading)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty subtotal heading")
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(`^\s+` + strings.Join(quoted, `\s+`) + `(\s|$)`)
}

func isFooter(line string) bool {
	for _, re := range footerPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func deniedPosition(position string) bool {
	upper := strings.ToUpper(position)
	for _, word := range salaryDenylist {
		if strings.Contains(upper, word) {
			return true
		}
	}
	return false
}
