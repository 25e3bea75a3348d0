// Package recovery re-reads the unclassified lines of a parse run and
// salvages the expense and salary records the strict grammar missed.
package recovery

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"strings"

	"sunlight/senate-csv/internal/common"
	"sunlight/senate-csv/internal/dateutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
	"sunlight/senate-csv/internal/report"
	"sunlight/senate-csv/internal/senateparser"
)

var (
	skipPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*(TRAVEL AND TRANSPORTATION|INTERDEPARTMENTAL|OTHER CONTRACTUAL|ACQUISITION OF|PERSONNEL|NET PAYROLL|FURNISHINGS|ORGANIZATION TOTAL|UNEXPENDED BALANCE)`),
		regexp.MustCompile(`^\s*\$?[\d\,\.]+\s*$`),
		regexp.MustCompile(`^\s*$`),
		regexp.MustCompile(`^\s*B-\d+\s*$`),
	}

	dateDescriptionRe = regexp.MustCompile(`^\s+(\d\d/\d\d/\d\d\d\d)\s+(.+)$`)
	descriptionOnlyRe = regexp.MustCompile(`^\s{20,}(.+)$`)

	categoryWords = []string{"TRAVEL AND TRANSPORTATION", "CONTRACTUAL SERVICES", "NET PAYROLL"}
)

// ShouldSkip reports category headings, bare amounts, bare page
// references and blank lines.
func ShouldSkip(line string) bool {
	for _, re := range skipPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// IsContinuation reports a wrapped description line: a valid date followed
// by text, or heavily indented text that is not a category heading.
func IsContinuation(line string) bool {
	if m := dateDescriptionRe.FindStringSubmatch(line); m != nil {
		return dateutils.IsValidUSDate(m[1])
	}
	m := descriptionOnlyRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	upper := strings.ToUpper(m[1])
	for _, w := range categoryWords {
		if strings.Contains(upper, w) {
			return false
		}
	}
	return true
}

// Stats counts the outcome of a recovery pass.
type Stats struct {
	Expenses      int
	Salaries      int
	Continuations int
	Skipped       int
	Unparseable   int
}

// Recoverer re-parses unclassified lines.
type Recoverer struct {
	matchers []senateparser.Matcher
	resolver *senateparser.OfficeResolver
	source   senateparser.PageSource
	tried    map[int]bool
	logger   logging.Logger
}

// New creates a Recoverer. Offices are resolved from pages loaded through
// source, with the given lookback window.
func New(source senateparser.PageSource, lookback int, logger logging.Logger) *Recoverer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Recoverer{
		matchers: append(
			senateparser.SelectMatchers(models.ShapeFlexibleExpense),
			senateparser.UnfilteredSalaryMatcher(),
			senateparser.SelectMatchers(models.ShapeFlexibleSalaryNoAmount)[0],
		),
		resolver: senateparser.NewOfficeResolver(lookback),
		source:   source,
		tried:    make(map[int]bool),
		logger:   logger,
	}
}

// Recover walks the groups in order and returns the salvaged records. A
// record with no resolvable office carries the last office seen.
func (r *Recoverer) Recover(ctx context.Context, data report.MissingData) ([]models.Record, Stats, error) {
	var (
		stats      Stats
		records    []models.Record
		lastOffice string
	)

	for _, group := range data {
		if err := ctx.Err(); err != nil {
			return records, stats, err
		}
		for _, item := range group {
			line := strings.TrimRight(item.Data, "\r\n")
			if ShouldSkip(line) {
				stats.Skipped++
				continue
			}

			rec, ok := r.match(line)
			if !ok {
				if IsContinuation(line) {
					stats.Continuations++
				} else {
					stats.Unparseable++
					r.logger.Debug("Unparseable line",
						logging.F(logging.FieldPage, item.PageNum),
						logging.F(logging.FieldLine, line))
				}
				continue
			}

			office, err := r.office(ctx, item.PageNum)
			if err != nil {
				return records, stats, err
			}
			if office != "" {
				lastOffice = office
			}
			rec.Office = lastOffice
			rec.Page = item.PageNum
			rec.Shape = models.ShapeRecovered
			records = append(records, rec)

			if rec.Kind == models.KindExpense {
				stats.Expenses++
			} else {
				stats.Salaries++
			}
		}
	}
	return records, stats, nil
}

func (r *Recoverer) match(line string) (models.Record, bool) {
	for _, m := range r.matchers {
		if match, ok := m.Match(line); ok {
			return match.Record, true
		}
	}
	return models.Record{}, false
}

// office resolves the label of page, loading the page at most once.
func (r *Recoverer) office(ctx context.Context, page int) (string, error) {
	if label, ok := r.resolver.Lookup(page); ok {
		return label, nil
	}
	if r.tried[page] || r.source == nil {
		return "", nil
	}
	r.tried[page] = true

	p, err := r.source.Page(ctx, page)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("Page text not found for office lookup", logging.F(logging.FieldPage, page))
			return "", nil
		}
		return "", err
	}
	return r.resolver.Resolve(page, p.Lines), nil
}

// LogStats writes the recovery summary.
func LogStats(logger logging.Logger, s Stats) {
	logger.Info("Recovery summary",
		logging.F("expenses", s.Expenses),
		logging.F("salaries", s.Salaries),
		logging.F("continuations", s.Continuations),
		logging.F("skipped", s.Skipped),
		logging.F("unparseable", s.Unparseable),
		logging.F(logging.FieldCount, s.Expenses+s.Salaries))
}

// RecoverFile reads a missing data file and writes the salvaged records in
// the raw CSV layout.
func (r *Recoverer) RecoverFile(ctx context.Context, missingPath, outPath string, delimiter rune) (Stats, error) {
	data, err := report.ReadMissingData(missingPath)
	if err != nil {
		return Stats{}, err
	}
	r.logger.Info("Read missing data",
		logging.F(logging.FieldInputFile, missingPath),
		logging.F("groups", len(data)),
		logging.F(logging.FieldCount, data.Count()))

	records, stats, err := r.Recover(ctx, data)
	if err != nil {
		return stats, err
	}
	if records == nil {
		records = []models.Record{}
	}
	if err := common.WriteRecordsToCSV(records, outPath, delimiter, r.logger); err != nil {
		return stats, err
	}
	LogStats(r.logger, stats)
	return stats, nil
}
