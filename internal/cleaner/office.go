package cleaner

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	fundingYearRe = regexp.MustCompile(`(Funding Year) (\d+)`)
	fiscalYearRe  = regexp.MustCompile(`(FY) (\d+)`)
	congressRe    = regexp.MustCompile(`\((\d+)TH\)`)
)

// OfficeInfo is what the cleaned columns derive from an office label.
type OfficeInfo struct {
	Senator        bool
	SenatorName    string
	FundingYear    string
	FiscalYear     string
	CongressNumber string
}

// ParseOffice derives senator and year details from an office label such
// as "SENATOR JANE DOE Funding Year 2015".
func ParseOffice(office string) OfficeInfo {
	info := OfficeInfo{
		Senator:        strings.Contains(strings.ToLower(office), "senator"),
		FundingYear:    submatch(fundingYearRe, office, 2),
		FiscalYear:     submatch(fiscalYearRe, office, 2),
		CongressNumber: submatch(congressRe, office, 1),
	}
	if info.Senator {
		name, _, _ := strings.Cut(office, "Funding")
		info.SenatorName = strings.TrimSpace(strings.ReplaceAll(name, "SENATOR", ""))
	}
	return info
}

// Year returns the funding year, else the fiscal year, as text.
func (o OfficeInfo) Year() string {
	if o.FundingYear != "" {
		return o.FundingYear
	}
	return o.FiscalYear
}

func submatch(re *regexp.Regexp, s string, group int) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[group])
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

// SourceDoc derives the document id from a report PDF path:
// "pdfs/GPO-CDOC-114sdoc7.pdf" becomes "114sdoc7".
func SourceDoc(pdfPath string) string {
	base := filepath.Base(pdfPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimPrefix(base, "GPO-CDOC-")
}
