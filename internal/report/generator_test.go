package report

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *RunSummary {
	s := NewRunSummary("parse")
	s.Pages = 3
	s.SkippedPages = 1
	s.Lines = models.PageStats{NonBlank: 10, Skipped: 2, Folded: 1, Records: 6, Unclassified: 1}
	s.SetHistogram(map[int]int{7: 2, 1: 1})
	s.Outputs = []string{"senate_data.csv", "missing_data.json"}
	s.Finish()
	return s
}

func TestNewRunSummary(t *testing.T) {
	s := NewRunSummary("clean")
	_, err := uuid.Parse(s.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "clean", s.Command)
	assert.False(t, s.StartedAt.IsZero())

	other := NewRunSummary("clean")
	assert.NotEqual(t, s.RunID, other.RunID)
}

func TestRunSummary_SetHistogram(t *testing.T) {
	s := sampleSummary()
	assert.Equal(t, []HeaderCount{{Index: 1, Pages: 1}, {Index: 7, Pages: 2}}, s.Headers)
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	generator := NewReportGenerator(logging.NewMockLogger())
	summary := sampleSummary()

	data, err := generator.GenerateReport(summary, "json")
	require.NoError(t, err)

	var decoded RunSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, summary.RunID, decoded.RunID)
	assert.Equal(t, summary.Lines, decoded.Lines)
	assert.Equal(t, summary.Headers, decoded.Headers)
	assert.Contains(t, string(data), `"header_indices"`)
}

func TestReportGenerator_GenerateReport_XML(t *testing.T) {
	generator := NewReportGenerator(nil)
	summary := sampleSummary()

	data, err := generator.GenerateReport(summary, "xml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var decoded RunSummary
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Equal(t, summary.RunID, decoded.RunID)
	assert.Equal(t, "parse", decoded.Command)
	assert.Equal(t, summary.Headers, decoded.Headers)
	assert.Equal(t, summary.Outputs, decoded.Outputs)
}

func TestReportGenerator_UnsupportedFormat(t *testing.T) {
	_, err := NewReportGenerator(nil).GenerateReport(sampleSummary(), "yaml")
	assert.EqualError(t, err, "unsupported report format: yaml")
}

func TestReportGenerator_LogSummary(t *testing.T) {
	logger := logging.NewMockLogger()
	NewReportGenerator(logger).LogSummary(sampleSummary())
	assert.True(t, logger.HasEntry("INFO", "Run complete"))
}
