package models

// Page is the text of one extracted report page.
type Page struct {
	Number int
	Lines  []string
}

// UnclassifiedLine is a data line that matched no record or continuation
// shape. The JSON layout matches the published missing_data.json files.
type UnclassifiedLine struct {
	Data    string `json:"data"`
	Offset  int    `json:"offset"`
	PageNum int    `json:"page_num"`
}

// PageStats accounts for every non-blank data line below the header.
// Skipped + Folded + Records + Unclassified always equals NonBlank.
type PageStats struct {
	NonBlank     int `json:"non_blank"`
	Skipped      int `json:"skipped"`
	Folded       int `json:"folded"`
	Records      int `json:"records"`
	Unclassified int `json:"unclassified"`
}

// Balanced reports whether every non-blank line was accounted for.
func (s PageStats) Balanced() bool {
	return s.Skipped+s.Folded+s.Records+s.Unclassified == s.NonBlank
}

// Add accumulates other into s.
func (s *PageStats) Add(other PageStats) {
	s.NonBlank += other.NonBlank
	s.Skipped += other.Skipped
	s.Folded += other.Folded
	s.Records += other.Records
	s.Unclassified += other.Unclassified
}
