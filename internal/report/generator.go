// Package report writes the run artifacts that sit next to the record CSV:
// the unclassified-line dump and the run summary.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"

	"github.com/google/uuid"
)

// HeaderCount is one bucket of the header index histogram.
type HeaderCount struct {
	Index int `json:"index" xml:"index,attr"`
	Pages int `json:"pages" xml:"pages,attr"`
}

// RunSummary describes one command run.
type RunSummary struct {
	XMLName      xml.Name         `json:"-" xml:"run"`
	RunID        string           `json:"run_id" xml:"id,attr"`
	Command      string           `json:"command" xml:"command,attr"`
	StartedAt    time.Time        `json:"started_at" xml:"started_at"`
	FinishedAt   time.Time        `json:"finished_at" xml:"finished_at"`
	Pages        int              `json:"pages" xml:"pages"`
	SkippedPages int              `json:"skipped_pages" xml:"skipped_pages"`
	MissingPages int              `json:"missing_pages" xml:"missing_pages"`
	Lines        models.PageStats `json:"lines" xml:"lines"`
	Headers      []HeaderCount    `json:"header_indices" xml:"headers>header"`
	Outputs      []string         `json:"outputs" xml:"outputs>file"`
}

// NewRunSummary starts a summary with a fresh run id.
func NewRunSummary(command string) *RunSummary {
	return &RunSummary{
		RunID:     uuid.New().String(),
		Command:   command,
		StartedAt: time.Now().UTC(),
	}
}

// SetHistogram stores the header index histogram in index order.
func (s *RunSummary) SetHistogram(histogram map[int]int) {
	s.Headers = s.Headers[:0]
	for idx, n := range histogram {
		s.Headers = append(s.Headers, HeaderCount{Index: idx, Pages: n})
	}
	sort.Slice(s.Headers, func(i, j int) bool { return s.Headers[i].Index < s.Headers[j].Index })
}

// Finish stamps the end time.
func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now().UTC()
}

// ReportGenerator renders run summaries.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ReportGenerator{logger: logger.WithField("component", "ReportGenerator")}
}

// GenerateReport renders the summary as json or xml.
func (g *ReportGenerator) GenerateReport(summary *RunSummary, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSONReport(summary)
	case "xml":
		return g.generateXMLReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(summary *RunSummary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *ReportGenerator) generateXMLReport(summary *RunSummary) ([]byte, error) {
	data, err := xml.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(data)), nil
}

// LogSummary writes the summary as a single structured log line.
func (g *ReportGenerator) LogSummary(summary *RunSummary) {
	g.logger.Info("Run complete",
		logging.F(logging.FieldRunID, summary.RunID),
		logging.F(logging.FieldOperation, summary.Command),
		logging.Duration(summary.FinishedAt.Sub(summary.StartedAt)),
		logging.F("pages", summary.Pages),
		logging.F("records", summary.Lines.Records),
		logging.F("unclassified", summary.Lines.Unclassified))
}
