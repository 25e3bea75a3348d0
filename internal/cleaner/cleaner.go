// Package cleaner derives the published cleaned CSV from raw record rows.
package cleaner

import (
	"errors"
	"strconv"

	"sunlight/senate-csv/internal/dateutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
	"sunlight/senate-csv/internal/parsererror"
)

// IDLookup resolves a senator name and year to a bioguide id.
type IDLookup interface {
	Lookup(name string, year int) (string, error)
}

// Stats counts what a cleaning pass saw.
type Stats struct {
	Rows           int
	SenatorRows    int
	Matched        int
	Unmatched      int
	Ambiguous      int
	AlreadyHadID   int
	InvalidDates   int
	InvalidAmounts int
}

// Cleaner converts raw rows to cleaned rows. A nil lookup leaves
// bioguide_id empty.
type Cleaner struct {
	lookup IDLookup
	logger logging.Logger
}

// New creates a Cleaner.
func New(lookup IDLookup, logger logging.Logger) *Cleaner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Cleaner{lookup: lookup, logger: logger}
}

// Clean converts rows in order.
func (c *Cleaner) Clean(sourceDoc string, rows []models.RawRow) ([]models.CleanRow, Stats) {
	var stats Stats
	cleaned := make([]models.CleanRow, 0, len(rows))
	for _, raw := range rows {
		cleaned = append(cleaned, c.cleanRow(sourceDoc, raw, &stats))
	}
	return cleaned, stats
}

// CleanRow converts a single raw row.
func (c *Cleaner) CleanRow(sourceDoc string, raw models.RawRow) models.CleanRow {
	var stats Stats
	return c.cleanRow(sourceDoc, raw, &stats)
}

func (c *Cleaner) cleanRow(sourceDoc string, raw models.RawRow, stats *Stats) models.CleanRow {
	stats.Rows++
	info := ParseOffice(raw.Office)

	row := models.CleanRow{
		SourceDoc:      sourceDoc,
		SenatorName:    info.SenatorName,
		RawOffice:      raw.Office,
		FundingYear:    info.FundingYear,
		FiscalYear:     info.FiscalYear,
		CongressNumber: info.CongressNumber,
		ReferencePage:  raw.PageNum,
		DocumentNumber: raw.DocumentNumber,
		DatePosted:     raw.DatePosted,
		StartDate:      raw.StartDate,
		EndDate:        raw.EndDate,
		Description:    raw.Description,
		Amount:         raw.Amount,
		Payee:          raw.Payee,
	}
	if info.Senator {
		row.SenatorFlag = 1
		stats.SenatorRows++
	}
	if raw.Kind == string(models.KindSalary) {
		row.SalaryFlag = 1
	}

	if d, err := models.ParseAmount(raw.Amount); err == nil {
		row.AmountValue = d.StringFixed(2)
	} else if !errors.Is(err, models.ErrEmptyAmount) {
		stats.InvalidAmounts++
		c.logger.Debug("Unparseable amount",
			logging.F(logging.FieldPage, raw.PageNum),
			logging.F("amount", raw.Amount))
	}

	for _, d := range []string{raw.DatePosted, raw.StartDate, raw.EndDate} {
		if d != "" && !dateutils.IsValidUSDate(d) {
			stats.InvalidDates++
		}
	}
	if !dateutils.ValidPeriod(raw.StartDate, raw.EndDate) {
		c.logger.Debug("Period ends before it starts",
			logging.F(logging.FieldPage, raw.PageNum),
			logging.F("start_date", raw.StartDate),
			logging.F("end_date", raw.EndDate))
	}

	if row.SenatorFlag == 1 {
		c.assignID(&row, stats)
	}
	return row
}

// Annotate fills bioguide_id on senator rows of an existing cleaned file.
// Rows that already carry an id keep it unless overwrite is set.
func (c *Cleaner) Annotate(rows []models.CleanRow, overwrite bool) Stats {
	var stats Stats
	for i := range rows {
		stats.Rows++
		row := &rows[i]
		if row.SenatorFlag != 1 {
			continue
		}
		stats.SenatorRows++
		if row.BioguideID != "" && !overwrite {
			stats.AlreadyHadID++
			continue
		}
		row.BioguideID = ""
		c.assignID(row, &stats)
	}
	return stats
}

func (c *Cleaner) assignID(row *models.CleanRow, stats *Stats) {
	if c.lookup == nil || row.SenatorName == "" {
		return
	}
	year := 0
	for _, y := range []string{row.FundingYear, row.FiscalYear} {
		if n, err := strconv.Atoi(y); err == nil {
			year = n
			break
		}
	}

	id, err := c.lookup.Lookup(row.SenatorName, year)
	var ambiguous *parsererror.AmbiguousMatchError
	switch {
	case errors.As(err, &ambiguous):
		stats.Ambiguous++
		c.logger.WithError(err).Warn("Ambiguous senator name", logging.F("senator_name", row.SenatorName))
	case err != nil:
		c.logger.WithError(err).Warn("Bioguide lookup failed", logging.F("senator_name", row.SenatorName))
	}
	row.BioguideID = id
	if id != "" {
		stats.Matched++
	} else {
		stats.Unmatched++
	}
}

// LogStats writes the counters of a pass.
func LogStats(logger logging.Logger, msg string, s Stats) {
	logger.Info(msg,
		logging.F("rows", s.Rows),
		logging.F("senator_rows", s.SenatorRows),
		logging.F("matched", s.Matched),
		logging.F("unmatched", s.Unmatched),
		logging.F("ambiguous", s.Ambiguous),
		logging.F("already_had_id", s.AlreadyHadID),
		logging.F("invalid_dates", s.InvalidDates),
		logging.F("invalid_amounts", s.InvalidAmounts))
}
