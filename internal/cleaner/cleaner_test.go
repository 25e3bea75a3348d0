package cleaner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sunlight/senate-csv/internal/common"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"
	"sunlight/senate-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupCall struct {
	name string
	year int
}

// stubLookup answers from a fixed table and records its calls.
type stubLookup struct {
	ids       map[string]string
	ambiguous map[string]bool
	calls     []lookupCall
}

func (s *stubLookup) Lookup(name string, year int) (string, error) {
	s.calls = append(s.calls, lookupCall{name, year})
	id := s.ids[name]
	if s.ambiguous[name] {
		return id, &parsererror.AmbiguousMatchError{Query: name, Candidates: []string{id, "X000000"}}
	}
	return id, nil
}

func TestParseOffice(t *testing.T) {
	tests := []struct {
		office string
		want   OfficeInfo
	}{
		{
			office: "SENATOR JANE DOE Funding Year 2015",
			want:   OfficeInfo{Senator: true, SenatorName: "JANE DOE", FundingYear: "2015"},
		},
		{
			office: "COMMITTEE ON FINANCE FY 2016 (114TH)",
			want:   OfficeInfo{FiscalYear: "2016", CongressNumber: "114"},
		},
		{
			office: "Senator John Roe",
			want:   OfficeInfo{Senator: true, SenatorName: "Senator John Roe"},
		},
		{
			office: "",
			want:   OfficeInfo{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.office, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOffice(tt.office))
		})
	}
}

func TestOfficeInfo_Year(t *testing.T) {
	assert.Equal(t, "2015", OfficeInfo{FundingYear: "2015", FiscalYear: "2016"}.Year())
	assert.Equal(t, "2016", OfficeInfo{FiscalYear: "2016"}.Year())
	assert.Empty(t, OfficeInfo{}.Year())
}

func TestSourceDoc(t *testing.T) {
	assert.Equal(t, "114sdoc7", SourceDoc("pdfs/GPO-CDOC-114sdoc7.pdf"))
	assert.Equal(t, "118sdoc13-1", SourceDoc("GPO-CDOC-118sdoc13-1.pdf"))
	assert.Equal(t, "report", SourceDoc("/tmp/report.pdf"))
}

func rawExpense() models.RawRow {
	return models.RawRow{
		Office:         "SENATOR JANE DOE Funding Year 2015",
		Shape:          models.ShapeStrictExpense,
		Kind:           string(models.KindExpense),
		PageNum:        12,
		DocumentNumber: "AB1234567",
		DatePosted:     "04/01/2015",
		Payee:          "ACME CORP",
		StartDate:      "03/01/2015",
		EndDate:        "03/31/2015",
		Description:    "OFFICE SUPPLIES",
		Amount:         "1,250.00",
	}
}

func rawSalary() models.RawRow {
	return models.RawRow{
		Office:      "COMMITTEE ON FINANCE FY 2016",
		Shape:       models.ShapeStrictSalary,
		Kind:        string(models.KindSalary),
		PageNum:     40,
		Payee:       "SMITH, JOHN",
		Description: "CLERK",
		Amount:      "2,000.00-",
	}
}

func TestCleaner_CleanRow(t *testing.T) {
	lookup := &stubLookup{ids: map[string]string{"JANE DOE": "D000001"}}
	c := New(lookup, logging.NewMockLogger())

	row := c.CleanRow("114sdoc7", rawExpense())
	assert.Equal(t, models.CleanRow{
		SourceDoc:      "114sdoc7",
		SenatorFlag:    1,
		SenatorName:    "JANE DOE",
		BioguideID:     "D000001",
		RawOffice:      "SENATOR JANE DOE Funding Year 2015",
		FundingYear:    "2015",
		ReferencePage:  12,
		DocumentNumber: "AB1234567",
		DatePosted:     "04/01/2015",
		StartDate:      "03/01/2015",
		EndDate:        "03/31/2015",
		Description:    "OFFICE SUPPLIES",
		SalaryFlag:     0,
		Amount:         "1,250.00",
		AmountValue:    "1250.00",
		Payee:          "ACME CORP",
	}, row)
	assert.Equal(t, []lookupCall{{"JANE DOE", 2015}}, lookup.calls)
}

func TestCleaner_SalaryRow(t *testing.T) {
	lookup := &stubLookup{}
	row := New(lookup, nil).CleanRow("114sdoc7", rawSalary())

	assert.Equal(t, 1, row.SalaryFlag)
	assert.Equal(t, 0, row.SenatorFlag)
	assert.Equal(t, "-2000.00", row.AmountValue)
	assert.Equal(t, "SMITH, JOHN", row.Payee)
	assert.Equal(t, "2016", row.FiscalYear)
	assert.Empty(t, lookup.calls, "non-senator rows are not looked up")
}

func TestCleaner_Clean_Stats(t *testing.T) {
	bad := rawExpense()
	bad.DatePosted = "13/45/2015"
	bad.Amount = "N/A"
	noAmount := rawExpense()
	noAmount.Amount = ""

	lookup := &stubLookup{
		ids:       map[string]string{"JANE DOE": "D000001"},
		ambiguous: map[string]bool{"JANE DOE": true},
	}
	logger := logging.NewMockLogger()
	rows, stats := New(lookup, logger).Clean("doc", []models.RawRow{rawExpense(), bad, noAmount, rawSalary()})

	require.Len(t, rows, 4)
	assert.Equal(t, Stats{
		Rows:           4,
		SenatorRows:    3,
		Matched:        3,
		Ambiguous:      3,
		InvalidDates:   1,
		InvalidAmounts: 1,
	}, stats)
	assert.Empty(t, rows[2].AmountValue)
	assert.True(t, logger.HasEntry("WARN", "Ambiguous senator name"))
}

func TestCleaner_FiscalYearFallback(t *testing.T) {
	raw := rawExpense()
	raw.Office = "SENATOR JANE DOE FY 2014"
	lookup := &stubLookup{ids: map[string]string{"JANE DOE FY 2014": "D000001"}}

	row := New(lookup, nil).CleanRow("doc", raw)
	assert.Equal(t, "D000001", row.BioguideID)
	assert.Equal(t, []lookupCall{{"JANE DOE FY 2014", 2014}}, lookup.calls)
}

func TestCleaner_NilLookup(t *testing.T) {
	row := New(nil, nil).CleanRow("doc", rawExpense())
	assert.Empty(t, row.BioguideID)
	assert.Equal(t, 1, row.SenatorFlag)
}

func TestCleaner_Annotate(t *testing.T) {
	rows := []models.CleanRow{
		{SenatorFlag: 1, SenatorName: "JANE DOE", FundingYear: "2015"},
		{SenatorFlag: 1, SenatorName: "JOHN ROE", FiscalYear: "2016", BioguideID: "R000009"},
		{SenatorFlag: 1, SenatorName: "NOBODY", FundingYear: "2015"},
		{SenatorFlag: 0, RawOffice: "COMMITTEE ON RULES"},
	}
	lookup := &stubLookup{ids: map[string]string{"JANE DOE": "D000001", "JOHN ROE": "R000001"}}
	c := New(lookup, nil)

	stats := c.Annotate(rows, false)
	assert.Equal(t, Stats{Rows: 4, SenatorRows: 3, Matched: 1, Unmatched: 1, AlreadyHadID: 1}, stats)
	assert.Equal(t, "D000001", rows[0].BioguideID)
	assert.Equal(t, "R000009", rows[1].BioguideID)
	assert.Empty(t, rows[2].BioguideID)

	stats = c.Annotate(rows, true)
	assert.Equal(t, 2, stats.Matched)
	assert.Equal(t, "R000001", rows[1].BioguideID)
	assert.Contains(t, lookup.calls, lookupCall{"JOHN ROE", 2016})
}

func TestCleaner_CleanFile(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "senate_data.csv")
	cleanPath := filepath.Join(dir, "senate_data_cleaned.csv")
	xlsxPath := filepath.Join(dir, "senate_data_cleaned.xlsx")

	require.NoError(t, common.WriteCSVFile([]models.RawRow{rawExpense(), rawSalary()}, rawPath, common.CSVOptions{}, nil))

	logger := logging.NewMockLogger()
	lookup := &stubLookup{ids: map[string]string{"JANE DOE": "D000001"}}
	stats, err := New(lookup, logger).CleanFile(rawPath, cleanPath, FileOptions{
		SourceDoc: "114sdoc7",
		Banner:    "Please cite the data source.",
		XLSXPath:  xlsxPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)
	assert.True(t, logger.HasEntry("INFO", "Cleaned records"))

	data, err := os.ReadFile(cleanPath)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "Please cite the data source.", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "source_doc,senator_flag,senator_name,bioguide_id,"))
	assert.FileExists(t, xlsxPath)

	rows, err := common.ReadCleanRows(cleanPath, ',', nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "D000001", rows[0].BioguideID)
	assert.Equal(t, 1, rows[1].SalaryFlag)
}

func TestCleaner_AnnotateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "senate_data_cleaned.csv")
	// A file from before the bioguide_id column existed.
	content := "Please cite the data source.\n" +
		"source_doc,senator_flag,senator_name,raw_office,funding_year,fiscal_year,congress_number,reference_page,document_number,date_posted,start_date,end_date,description,salary_flag,amount,payee\n" +
		"114sdoc7,1,JANE DOE,SENATOR JANE DOE Funding Year 2015,2015,,,12,AB1,04/01/2015,,,PAPER,0,12.00,ACME\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	lookup := &stubLookup{ids: map[string]string{"JANE DOE": "D000001"}}
	stats, err := New(lookup, nil).AnnotateFile(path, "", ',', false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Matched)

	banner, err := common.ReadBanner(path, ',')
	require.NoError(t, err)
	assert.Equal(t, "Please cite the data source.", banner)

	rows, err := common.ReadCleanRows(path, ',', nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "D000001", rows[0].BioguideID)
	assert.Equal(t, "PAPER", rows[0].Description)
}
