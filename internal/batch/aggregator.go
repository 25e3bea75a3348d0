// Package batch groups split report PDFs by document and merges the
// cleaned rows of their parts.
package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"sunlight/senate-csv/internal/cleaner"
	"sunlight/senate-csv/internal/dateutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
)

var partRe = regexp.MustCompile(`^(.*)-(\d+)$`)

// DateRange is the span of posting dates in a document.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the range as "YYYY-MM-DD_YYYY-MM-DD".
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", dr.Start.Format(dateutils.DateLayoutISO), dr.End.Format(dateutils.DateLayoutISO))
}

// Merge combines two ranges into the overall range.
func (dr DateRange) Merge(other DateRange) DateRange {
	start, end := dr.Start, dr.End
	if start.IsZero() || (!other.Start.IsZero() && other.Start.Before(start)) {
		start = other.Start
	}
	if end.IsZero() || (!other.End.IsZero() && other.End.After(end)) {
		end = other.End
	}
	return DateRange{Start: start, End: end}
}

// Part is one PDF of a document.
type Part struct {
	File   string
	Number int
}

// DocumentGroup holds the parts of one report in part order. A report
// published as a single file has one part numbered 0.
type DocumentGroup struct {
	DocID string
	Parts []Part
}

// SplitPart returns the document id and part number of a report file such
// as GPO-CDOC-118sdoc13-2.pdf.
func SplitPart(file string) (string, int) {
	doc := cleaner.SourceDoc(file)
	if m := partRe.FindStringSubmatch(doc); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			return strings.ToLower(m[1]), n
		}
	}
	return strings.ToLower(doc), 0
}

// Aggregator groups and merges report parts.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Aggregator{logger: logger}
}

// GroupFilesByDocument groups report files by document id, sorted by id.
func (a *Aggregator) GroupFilesByDocument(files []string) []DocumentGroup {
	groups := make(map[string]*DocumentGroup)
	for _, file := range files {
		id, n := SplitPart(file)
		a.logger.Debug("File mapped to document",
			logging.F(logging.FieldFile, filepath.Base(file)),
			logging.F(logging.FieldDocument, id),
			logging.F("part", n))

		group, ok := groups[id]
		if !ok {
			group = &DocumentGroup{DocID: id}
			groups[id] = group
		}
		group.Parts = append(group.Parts, Part{File: file, Number: n})
	}

	out := make([]DocumentGroup, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g.Parts, func(i, j int) bool { return g.Parts[i].Number < g.Parts[j].Number })
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocID < out[j].DocID })

	a.logger.Info("Grouped files into documents",
		logging.F("total_files", len(files)),
		logging.F("documents", len(out)))
	return out
}

// MergeRows concatenates the cleaned rows of a document's parts in part
// order and stamps them with the document id. Potential duplicates across
// parts are logged but kept.
func (a *Aggregator) MergeRows(docID string, parts [][]models.CleanRow) []models.CleanRow {
	var merged []models.CleanRow
	for _, rows := range parts {
		for _, row := range rows {
			row.SourceDoc = docID
			merged = append(merged, row)
		}
	}
	a.detectAndLogDuplicates(docID, merged)

	a.logger.Info("Merged document parts",
		logging.F(logging.FieldDocument, docID),
		logging.F("parts", len(parts)),
		logging.F(logging.FieldCount, len(merged)))
	return merged
}

func duplicateKey(row models.CleanRow) string {
	if row.DocumentNumber == "" {
		return ""
	}
	return strings.Join([]string{row.DocumentNumber, row.DatePosted, row.AmountValue, strings.ToLower(row.Payee)}, "|")
}

func (a *Aggregator) detectAndLogDuplicates(docID string, rows []models.CleanRow) int {
	seen := make(map[string]bool, len(rows))
	count := 0
	for _, row := range rows {
		key := duplicateKey(row)
		if key == "" {
			continue
		}
		if seen[key] {
			count++
			a.logger.Warn("Potential duplicate record",
				logging.F(logging.FieldDocument, docID),
				logging.F(logging.FieldPage, row.ReferencePage),
				logging.F("document_number", row.DocumentNumber),
				logging.F("amount", row.Amount))
			continue
		}
		seen[key] = true
	}
	if count > 0 {
		a.logger.Warn("Found potential duplicate records",
			logging.F(logging.FieldDocument, docID),
			logging.F(logging.FieldCount, count))
	}
	return count
}

// PostingRange returns the span of valid posting dates in rows.
func PostingRange(rows []models.CleanRow) DateRange {
	var dr DateRange
	for _, row := range rows {
		t, err := dateutils.ParseUSDate(row.DatePosted)
		if err != nil {
			continue
		}
		dr = dr.Merge(DateRange{Start: t, End: t})
	}
	return dr
}

// OutputFilename returns the merged file name of a document.
func OutputFilename(docID string) string {
	return fmt.Sprintf("%s_cleaned.csv", strings.ToLower(docID))
}
