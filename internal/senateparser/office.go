package senateparser

import "strings"

const (
	fundingYearScanLines = 15
	partyMarkerScanLines = 12
	committeeScanLines   = 15
	maxOfficeLength      = 200
)

var committeeNames = []string{
	"APPROPRIATIONS", "AGRICULTURE", "ARMED SERVICES", "BANKING",
	"BUDGET", "COMMERCE", "ENERGY", "FINANCE", "FOREIGN RELATIONS",
	"HEALTH", "JUDICIARY", "RULES", "VETERANS", "INTELLIGENCE",
	"HOMELAND SECURITY", "ENVIRONMENT", "SMALL BUSINESS", "ETHICS",
}

var officeBoilerplate = []string{"AVAILABLE AS", "THE PERIOD OF", "YTD"}

// officeStrategy tries to read an office label from a page's first lines.
type officeStrategy func(lines []string) string

// OfficeResolver recovers office labels for pages whose top matter is missing
// or too short. Labels are cached per page for the lifetime of a run.
type OfficeResolver struct {
	cache      map[int]string
	lookback   int
	strategies []officeStrategy
}

// NewOfficeResolver creates a resolver that reuses labels cached on up to
// lookback preceding pages.
func NewOfficeResolver(lookback int) *OfficeResolver {
	return &OfficeResolver{
		cache:    make(map[int]string),
		lookback: lookback,
		// Precedence is fixed; the first strategy to produce a label wins.
		strategies: []officeStrategy{fundingYearAnchor, partyMarker, committeeKeyword},
	}
}

// Store records a label for page. Empty labels are ignored.
func (r *OfficeResolver) Store(page int, label string) {
	if label == "" {
		return
	}
	r.cache[page] = label
}

// Lookup returns the label cached for page or, failing that, for the nearest
// of the preceding lookback pages. A hit found by lookback is copied to page.
func (r *OfficeResolver) Lookup(page int) (string, bool) {
	if label, ok := r.cache[page]; ok {
		return label, true
	}
	for prev := page - 1; prev >= page-r.lookback && prev > 0; prev-- {
		if label, ok := r.cache[prev]; ok {
			r.cache[page] = label
			return label, true
		}
	}
	return "", false
}

// Resolve returns the office label for page, consulting the cache first and
// then the page heuristics. It returns "" when nothing matches.
func (r *OfficeResolver) Resolve(page int, lines []string) string {
	if label, ok := r.Lookup(page); ok {
		return label
	}
	for _, strategy := range r.strategies {
		if label := strategy(lines); label != "" {
			r.cache[page] = label
			return label
		}
	}
	return ""
}

// fundingYearAnchor reads the label from the lines just above "Funding Year".
func fundingYearAnchor(lines []string) string {
	for i, line := range head(lines, fundingYearScanLines) {
		if !strings.Contains(line, "Funding Year") {
			continue
		}
		for j := max(0, i-3); j < i; j++ {
			candidate := lines[j]
			if strings.Contains(candidate, "DETAILED AND SUMMARY") {
				continue
			}
			candidate = strings.TrimSpace(leftOfFirst(candidate, "DESCRIPTION", "NET FUNDS"))
			if candidate == "" || len(candidate) >= maxOfficeLength {
				continue
			}
			for _, junk := range officeBoilerplate {
				candidate = strings.ReplaceAll(candidate, junk, "")
			}
			candidate = strings.TrimSpace(candidate)
			if len(candidate) > 3 {
				return candidate
			}
		}
	}
	return ""
}

// partyMarker reads the label from a line ending in a party marker.
func partyMarker(lines []string) string {
	for _, line := range head(lines, partyMarkerScanLines) {
		trimmed := strings.TrimSpace(line)
		if !strings.HasSuffix(trimmed, "(R)") && !strings.HasSuffix(trimmed, "(D)") {
			continue
		}
		// The first marked line decides, even when it yields no label.
		candidate := strings.TrimSpace(leftOfFirst(line, "DESCRIPTION"))
		if len(candidate) < maxOfficeLength {
			return candidate
		}
	}
	return ""
}

// committeeKeyword reads the label from a line naming a standing committee.
func committeeKeyword(lines []string) string {
	for _, line := range head(lines, committeeScanLines) {
		if strings.Contains(line, "SALARIES") || strings.Contains(line, "Authorization") {
			continue
		}
		for _, committee := range committeeNames {
			if !strings.Contains(line, committee) {
				continue
			}
			candidate := strings.TrimSpace(leftOfFirst(line, "Funding", "DESCRIPTION", "NET FUNDS"))
			if candidate != "" && len(candidate) < maxOfficeLength {
				return candidate
			}
		}
	}
	return ""
}

// leftOfFirst returns the text of line before the earliest of markers, or the
// whole line when none occurs.
func leftOfFirst(line string, markers ...string) string {
	cut := len(line)
	for _, m := range markers {
		if i := strings.Index(line, m); i >= 0 && i < cut {
			cut = i
		}
	}
	return line[:cut]
}

func head(lines []string, n int) []string {
	if len(lines) < n {
		return lines
	}
	return lines[:n]
}
