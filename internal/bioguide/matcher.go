package bioguide

import (
	"time"

	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/parsererror"
)

// Matcher resolves senator names to bioguide ids.
type Matcher struct {
	senators []Senator
	logger   logging.Logger
	now      func() time.Time
}

// NewMatcher creates a Matcher over senators.
func NewMatcher(senators []Senator, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Matcher{senators: senators, logger: logger, now: time.Now}
}

// Len returns the number of known senators.
func (m *Matcher) Len() int {
	return len(m.senators)
}

// Matches returns every senator whose name variants contain name and who
// served in year (0 for any year).
func (m *Matcher) Matches(name string, year int) []Senator {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil
	}
	current := m.now().Year()
	var matches []Senator
	for _, s := range m.senators {
		if s.matchesName(normalized) && s.ActiveIn(year, current) {
			matches = append(matches, s)
		}
	}
	return matches
}

// Lookup returns the bioguide id for name in year, or "" when nobody
// matches. Several matches return the first id together with an
// *parsererror.AmbiguousMatchError.
func (m *Matcher) Lookup(name string, year int) (string, error) {
	return m.pick(name, year, m.Matches(name, year))
}

// LookupInState narrows Lookup to senators who served state.
func (m *Matcher) LookupInState(name string, year int, state string) (string, error) {
	var matches []Senator
	for _, s := range m.Matches(name, year) {
		if s.ServedState(state) {
			matches = append(matches, s)
		}
	}
	return m.pick(name, year, matches)
}

func (m *Matcher) pick(name string, year int, matches []Senator) (string, error) {
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0].BioguideID, nil
	}
	ids := make([]string, len(matches))
	for i, s := range matches {
		ids[i] = s.BioguideID
	}
	m.logger.Warn("Multiple bioguide matches",
		logging.F("name", name),
		logging.F("year", year),
		logging.F(logging.FieldCount, len(matches)))
	return matches[0].BioguideID, &parsererror.AmbiguousMatchError{Query: name, Candidates: ids}
}
