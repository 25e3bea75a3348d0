package batch

import (
	"testing"
	"time"

	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name  string
		a, b  DateRange
		want  DateRange
		label string
	}{
		{
			name:  "wider on both ends",
			a:     DateRange{Start: date(2016, 2, 1), End: date(2016, 2, 28)},
			b:     DateRange{Start: date(2016, 1, 15), End: date(2016, 3, 1)},
			want:  DateRange{Start: date(2016, 1, 15), End: date(2016, 3, 1)},
			label: "2016-01-15_2016-03-01",
		},
		{
			name:  "empty receiver",
			b:     DateRange{Start: date(2016, 1, 1), End: date(2016, 1, 2)},
			want:  DateRange{Start: date(2016, 1, 1), End: date(2016, 1, 2)},
			label: "2016-01-01_2016-01-02",
		},
		{
			name:  "empty other",
			a:     DateRange{Start: date(2016, 1, 1), End: date(2016, 1, 2)},
			want:  DateRange{Start: date(2016, 1, 1), End: date(2016, 1, 2)},
			label: "2016-01-01_2016-01-02",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Merge(tt.b)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.label, got.String())
		})
	}
	assert.Empty(t, DateRange{}.String())
}

func TestSplitPart(t *testing.T) {
	tests := []struct {
		file string
		id   string
		part int
	}{
		{"GPO-CDOC-118sdoc13.pdf", "118sdoc13", 0},
		{"pdfs/118sdoc13/GPO-CDOC-118sdoc13-2.pdf", "118sdoc13", 2},
		{"GPO-CDOC-114SDOC7-1.pdf", "114sdoc7", 1},
		{"report.pdf", "report", 0},
	}
	for _, tt := range tests {
		id, part := SplitPart(tt.file)
		assert.Equal(t, tt.id, id, tt.file)
		assert.Equal(t, tt.part, part, tt.file)
	}
}

func TestGroupFilesByDocument(t *testing.T) {
	a := NewAggregator(logging.NewMockLogger())
	groups := a.GroupFilesByDocument([]string{
		"d/GPO-CDOC-118sdoc13-2.pdf",
		"d/GPO-CDOC-114sdoc7.pdf",
		"d/GPO-CDOC-118sdoc13-1.pdf",
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "114sdoc7", groups[0].DocID)
	assert.Equal(t, []Part{{File: "d/GPO-CDOC-114sdoc7.pdf", Number: 0}}, groups[0].Parts)
	assert.Equal(t, "118sdoc13", groups[1].DocID)
	assert.Equal(t, []Part{
		{File: "d/GPO-CDOC-118sdoc13-1.pdf", Number: 1},
		{File: "d/GPO-CDOC-118sdoc13-2.pdf", Number: 2},
	}, groups[1].Parts)
}

func TestMergeRows(t *testing.T) {
	logger := logging.NewMockLogger()
	a := NewAggregator(logger)

	first := []models.CleanRow{
		{SourceDoc: "118sdoc13-1", DocumentNumber: "AB1", DatePosted: "01/15/2016", AmountValue: "10.00", Payee: "ACME"},
	}
	second := []models.CleanRow{
		{SourceDoc: "118sdoc13-2", DocumentNumber: "AB1", DatePosted: "01/15/2016", AmountValue: "10.00", Payee: "acme"},
		{SourceDoc: "118sdoc13-2", SalaryFlag: 1, AmountValue: "3200.00"},
	}

	merged := a.MergeRows("118sdoc13", [][]models.CleanRow{first, second})
	require.Len(t, merged, 3)
	for _, row := range merged {
		assert.Equal(t, "118sdoc13", row.SourceDoc)
	}
	assert.Equal(t, "118sdoc13-1", first[0].SourceDoc)
	assert.True(t, logger.HasEntry("WARN", "Potential duplicate record"))
	assert.True(t, logger.HasEntry("WARN", "Found potential duplicate records"))
}

func TestMergeRows_NoDuplicates(t *testing.T) {
	logger := logging.NewMockLogger()
	a := NewAggregator(logger)
	a.MergeRows("x", [][]models.CleanRow{{{DocumentNumber: "A"}, {DocumentNumber: "B"}, {}, {}}})
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))
}

func TestPostingRange(t *testing.T) {
	rows := []models.CleanRow{
		{DatePosted: "03/01/2016"},
		{DatePosted: "not a date"},
		{DatePosted: "01/15/2016"},
		{},
	}
	assert.Equal(t, DateRange{Start: date(2016, 1, 15), End: date(2016, 3, 1)}, PostingRange(rows))
	assert.Equal(t, DateRange{}, PostingRange(nil))
}

func TestOutputFilename(t *testing.T) {
	assert.Equal(t, "118sdoc13_cleaned.csv", OutputFilename("118SDOC13"))
}
