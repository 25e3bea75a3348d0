// Package senateparser turns extracted Senate disbursement report pages into
// expense and salary records.
//
// Each page goes through the same steps: locate the column header, derive the
// office from the top matter (falling back to the OfficeResolver and then to
// the previous page), classify every data line through the matcher cascade,
// fold wrapped continuation lines into the records they extend and emit the
// records together with the lines that could not be classified.
package senateparser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
)

// Options tunes the engine.
type Options struct {
	TopMatterColumn       int
	MinTopMatterLines     int
	OfficeLookback        int
	ContinuationSeparator string
	ExtraSubtotals        []string
}

// DefaultOptions returns the settings used for the published reports.
func DefaultOptions() Options {
	return Options{
		TopMatterColumn:       48,
		MinTopMatterLines:     7,
		OfficeLookback:        5,
		ContinuationSeparator: " + ",
	}
}

// PageSource loads page text by page number.
type PageSource interface {
	Page(ctx context.Context, number int) (models.Page, error)
}

// PageResult is everything the engine produced for one page.
type PageResult struct {
	Page        int
	Skipped     bool
	HeaderIndex int
	Office      string
	Records     []models.Record
	Missing     []models.UnclassifiedLine
	Stats       models.PageStats
}

// RunContext carries the state shared by consecutive pages of one run.
type RunContext struct {
	Resolver *OfficeResolver
	// Office is the last known office label and OfficePage the page it was
	// resolved on.
	Office     string
	OfficePage int
	// HeaderHistogram counts pages by header line index.
	HeaderHistogram map[int]int
	lastPage        int
}

// RunStats summarizes a whole run.
type RunStats struct {
	Pages           int
	SkippedPages    int
	MissingPages    int
	Lines           models.PageStats
	HeaderHistogram map[int]int
}

// Aggregator drives the per-page state machine.
type Aggregator struct {
	opts       Options
	classifier *Classifier
	logger     logging.Logger
}

// NewAggregator creates an Aggregator. A nil logger discards output.
func NewAggregator(opts Options, logger logging.Logger) (*Aggregator, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	classifier, err := NewClassifier(opts.ExtraSubtotals)
	if err != nil {
		return nil, err
	}
	return &Aggregator{opts: opts, classifier: classifier, logger: logger}, nil
}

// NewRun starts a fresh run context.
func (a *Aggregator) NewRun() *RunContext {
	return &RunContext{
		Resolver:        NewOfficeResolver(a.opts.OfficeLookback),
		HeaderHistogram: make(map[int]int),
	}
}

// ProcessPage runs one page through the engine. Pages must be fed in
// ascending numeric order within a run.
func (a *Aggregator) ProcessPage(run *RunContext, page models.Page) (*PageResult, error) {
	if run.lastPage != 0 && page.Number <= run.lastPage {
		return nil, fmt.Errorf("page %d processed after page %d: pages must ascend", page.Number, run.lastPage)
	}
	run.lastPage = page.Number

	headerIndex, found, err := LocateHeader(page.Number, page.Lines)
	if err != nil {
		return nil, err
	}
	if !found {
		a.logger.Debug("Skipping page without column header", logging.F(logging.FieldPage, page.Number))
		return &PageResult{Page: page.Number, Skipped: true}, nil
	}
	run.HeaderHistogram[headerIndex]++

	office := a.resolveOffice(run, page, headerIndex)

	state := newPageState(page.Number)
	for _, line := range page.Lines[headerIndex+1:] {
		class, match := a.classifier.Classify(line)
		switch class {
		case ClassBlank:
			continue
		case ClassSkip:
			state.stats.Skipped++
			state.resetAnchor()
		case ClassRecord:
			state.addRecord(match)
		case ClassNoMatch:
			state.continuation(line)
		}
		state.stats.NonBlank++
	}
	state.resolveFolds(a.opts.ContinuationSeparator)

	result := &PageResult{
		Page:        page.Number,
		HeaderIndex: headerIndex,
		Office:      office,
		Records:     state.emit(office),
		Missing:     state.missing,
		Stats:       state.stats,
	}
	for _, m := range result.Missing {
		a.logger.Debug("Unclassified line",
			logging.F(logging.FieldPage, m.PageNum),
			logging.F(logging.FieldOffset, m.Offset),
			logging.F(logging.FieldLine, m.Data))
	}
	return result, nil
}

// resolveOffice applies the office precedence: top matter, then the resolver
// (cache, lookback, heuristics), then the run's last label when it is recent
// enough. The result is cached for later pages.
func (a *Aggregator) resolveOffice(run *RunContext, page models.Page, headerIndex int) string {
	office := ""
	if headerIndex >= a.opts.MinTopMatterLines {
		office = ExtractTopMatter(page.Lines, headerIndex, a.opts.TopMatterColumn)
	}
	if office != "" {
		run.Resolver.Store(page.Number, office)
	} else {
		office = run.Resolver.Resolve(page.Number, page.Lines)
	}
	if office == "" && run.Office != "" && page.Number-run.OfficePage <= a.opts.OfficeLookback {
		office = run.Office
		run.Resolver.Store(page.Number, office)
	}
	if office != "" {
		run.Office = office
		run.OfficePage = page.Number
	} else {
		a.logger.Warn("No office label for page", logging.F(logging.FieldPage, page.Number))
	}
	return office
}

// Run processes the given pages in ascending numeric order, passing each
// non-skipped page to emit. Pages the source cannot find are logged and
// skipped; a structural fault aborts the run.
func (a *Aggregator) Run(ctx context.Context, source PageSource, numbers []int, emit func(*PageResult) error) (*RunStats, error) {
	ordered := append([]int(nil), numbers...)
	sort.Ints(ordered)

	run := a.NewRun()
	stats := &RunStats{HeaderHistogram: run.HeaderHistogram}

	for i, n := range ordered {
		if i > 0 && n == ordered[i-1] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		page, err := source.Page(ctx, n)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				a.logger.WithError(err).Warn("Page text not found, skipping", logging.F(logging.FieldPage, n))
				stats.MissingPages++
				continue
			}
			return stats, fmt.Errorf("failed to read page %d: %w", n, err)
		}

		result, err := a.ProcessPage(run, page)
		if err != nil {
			return stats, err
		}
		stats.Pages++
		if result.Skipped {
			stats.SkippedPages++
			continue
		}
		stats.Lines.Add(result.Stats)

		if err := emit(result); err != nil {
			return stats, err
		}
	}

	a.logger.Info("Parsed pages",
		logging.F(logging.FieldCount, stats.Pages),
		logging.F("skipped_pages", stats.SkippedPages),
		logging.F("records", stats.Lines.Records),
		logging.F("unclassified", stats.Lines.Unclassified))
	for _, idx := range sortedKeys(stats.HeaderHistogram) {
		a.logger.Debug("Header index statistics",
			logging.F("header_index", idx),
			logging.F(logging.FieldCount, stats.HeaderHistogram[idx]))
	}
	return stats, nil
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
