package senateparser

import (
	"strings"
	"unicode"

	"sunlight/senate-csv/internal/models"
)

// Carryover reports whether line lines up under a free-text field starting at
// anchor: every rune before the anchor is blank and something follows it.
func Carryover(line string, anchor int) bool {
	runes := []rune(line)
	if anchor <= 0 || len(runes) <= anchor {
		return false
	}
	for _, r := range runes[:anchor] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	for _, r := range runes[anchor:] {
		if !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// pendingFold is a continuation fragment waiting for the page to be fully
// classified. Target is the arena index the walk back starts from.
type pendingFold struct {
	target int
	text   string
	amount string
}

// pageState is the per-page working set: the append-only record arena, the
// active column anchor and the folds queued in line order.
type pageState struct {
	number   int
	arena    []models.Record
	folds    []pendingFold
	anchor   int
	anchored bool
	missing  []models.UnclassifiedLine
	stats    models.PageStats
}

func newPageState(number int) *pageState {
	return &pageState{number: number}
}

func (s *pageState) addRecord(m Match) {
	rec := m.Record
	rec.Page = s.number
	s.arena = append(s.arena, rec)
	s.anchor = m.Anchor
	s.anchored = true
	s.stats.Records++
}

func (s *pageState) resetAnchor() {
	s.anchored = false
	s.anchor = 0
}

func (s *pageState) unclassified(line string) {
	s.missing = append(s.missing, models.UnclassifiedLine{
		Data:    line,
		Offset:  len(s.arena),
		PageNum: s.number,
	})
	s.stats.Unclassified++
}

// continuation handles a line no matcher accepted. Lines that fail the
// carryover test are reported as unclassified.
func (s *pageState) continuation(line string) {
	if !s.anchored || len(s.arena) == 0 || !Carryover(line, s.anchor) {
		s.unclassified(line)
		return
	}
	target := len(s.arena) - 1
	if m := continuationWithAmountRe.FindStringSubmatch(line); m != nil {
		rec, err := models.NewContinuationBuilder(target).
			WithPage(s.number).
			WithText(m[1]).
			WithAmount(m[2]).
			Build()
		if err != nil {
			s.unclassified(line)
			return
		}
		s.arena = append(s.arena, rec)
		s.folds = append(s.folds, pendingFold{target: target, text: rec.Continuation.Text, amount: rec.Continuation.Amount})
	} else {
		s.folds = append(s.folds, pendingFold{target: target, text: strings.TrimSpace(line)})
	}
	s.stats.Folded++
}

// root walks back from i over chained continuation entries to the record
// they extend.
func (s *pageState) root(i int) int {
	for i > 0 && s.arena[i].IsContinuation() {
		i--
	}
	return i
}

// resolveFolds splices every queued fragment into its originating record in
// line order. Folding only appends text and amounts.
func (s *pageState) resolveFolds(sep string) {
	for _, f := range s.folds {
		r := s.root(f.target)
		s.arena[r].AppendText(sep, f.text)
		s.arena[r].AttachAmount(f.amount)
	}
	s.folds = nil
}

// emit returns the page's records, without continuation entries, stamped
// with office.
func (s *pageState) emit(office string) []models.Record {
	out := make([]models.Record, 0, len(s.arena))
	for _, rec := range s.arena {
		if rec.IsContinuation() {
			continue
		}
		rec.Office = office
		out = append(out, rec)
	}
	return out
}
