package senateparser

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"sunlight/senate-csv/internal/models"
)

// Match is a successful classification of one line.
type Match struct {
	Record models.Record
	// Anchor is the rune column where the record's free-text field begins.
	Anchor int
}

// Matcher recognizes one line grammar.
type Matcher interface {
	Name() string
	Match(line string) (Match, bool)
}

// regexMatcher adapts a regular expression and a record constructor to the
// Matcher interface.
type regexMatcher struct {
	name      string
	re        *regexp.Regexp
	textGroup int
	build     func(name string, groups []string) (models.Record, bool)
}

func (m *regexMatcher) Name() string { return m.name }

func (m *regexMatcher) Match(line string) (Match, bool) {
	loc := m.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = line[loc[2*i]:loc[2*i+1]]
		}
	}
	rec, ok := m.build(m.name, groups)
	if !ok {
		return Match{}, false
	}
	return Match{
		Record: rec,
		Anchor: utf8.RuneCountInString(line[:loc[2*m.textGroup]]),
	}, true
}

func buildExpense(name string, number, posted, payee, start, end, description, amount string) (models.Record, bool) {
	rec, err := models.NewExpenseBuilder().
		WithShape(name).
		WithDocument(number, posted).
		WithPayee(payee).
		WithPeriod(start, end).
		WithText(description).
		WithAmount(amount).
		Build()
	return rec, err == nil
}

func buildSalary(name string, person, position, amount string) (models.Record, bool) {
	rec, err := models.NewSalaryBuilder().
		WithShape(name).
		WithName(person).
		WithText(position).
		WithAmount(amount).
		Build()
	return rec, err == nil
}

// DefaultMatchers returns the classification cascade in priority order.
func DefaultMatchers() []Matcher {
	return []Matcher{
		&regexMatcher{
			name: models.ShapeStrictExpense, re: strictExpenseRe, textGroup: 6,
			build: func(n string, g []string) (models.Record, bool) {
				return buildExpense(n, g[1], g[2], g[3], g[4], g[5], g[6], g[7])
			},
		},
		&regexMatcher{
			name: models.ShapeStrictSalary, re: strictSalaryRe, textGroup: 2,
			build: func(n string, g []string) (models.Record, bool) {
				return buildSalary(n, g[1], g[2], g[3])
			},
		},
		&regexMatcher{
			name: models.ShapeMissingDate, re: missingDateRe, textGroup: 4,
			build: func(n string, g []string) (models.Record, bool) {
				return buildExpense(n, g[1], g[2], g[3], "", "", g[4], g[5])
			},
		},
		&regexMatcher{
			name: models.ShapeFlexibleExpense, re: flexibleExpenseRe, textGroup: 6,
			build: func(n string, g []string) (models.Record, bool) {
				return buildExpense(n, g[1], g[2], g[3], g[4], g[5], g[6], g[7])
			},
		},
		flexibleSalaryMatcher(true),
		&regexMatcher{
			name: models.ShapeFlexibleSalaryNoAmount, re: flexibleSalaryNoAmountRe, textGroup: 2,
			build: func(n string, g []string) (models.Record, bool) {
				if deniedPosition(g[2]) {
					return models.Record{}, false
				}
				return buildSalary(n, g[1], g[2], "")
			},
		},
	}
}

func flexibleSalaryMatcher(denylist bool) Matcher {
	return &regexMatcher{
		name: models.ShapeFlexibleSalary, re: flexibleSalaryRe, textGroup: 2,
		build: func(n string, g []string) (models.Record, bool) {
			if denylist && deniedPosition(g[2]) {
				return models.Record{}, false
			}
			return buildSalary(n, g[1], g[2], g[3])
		},
	}
}

// UnfilteredSalaryMatcher is the flexible salary matcher without the
// position denylist. A line with an amount is accepted whatever its
// position text.
func UnfilteredSalaryMatcher() Matcher {
	return flexibleSalaryMatcher(false)
}

// SelectMatchers returns the default matchers named by shape, in cascade
// order.
func SelectMatchers(shapes ...string) []Matcher {
	var selected []Matcher
	for _, m := range DefaultMatchers() {
		for _, s := range shapes {
			if m.Name() == s {
				selected = append(selected, m)
				break
			}
		}
	}
	return selected
}

// LineClass is the outcome of classifying one data line.
type LineClass int

const (
	// ClassBlank lines are ignored and not counted.
	ClassBlank LineClass = iota
	// ClassSkip covers page footers and subtotal headings.
	ClassSkip
	// ClassRecord lines produced a record.
	ClassRecord
	// ClassNoMatch lines matched nothing and go to the continuation resolver.
	ClassNoMatch
)

// Classifier runs the ordered matcher cascade over single lines.
type Classifier struct {
	matchers  []Matcher
	subtotals []*regexp.Regexp
}

// NewClassifier builds a classifier with the default cascade. Extra subtotal
// headings are appended to the built-in list.
func NewClassifier(extraSubtotals []string) (*Classifier, error) {
	c := &Classifier{matchers: DefaultMatchers()}
	for _, heading := range append(append([]string{}, DefaultSubtotals...), extraSubtotals...) {
		re, err := SubtotalPattern(heading)
		if err != nil {
			return nil, fmt.Errorf("invalid subtotal heading %q: %w", heading, err)
		}
		c.subtotals = append(c.subtotals, re)
	}
	return c, nil
}

// WithMatchers replaces the cascade. Used to test matchers in isolation.
func (c *Classifier) WithMatchers(matchers ...Matcher) *Classifier {
	c.matchers = matchers
	return c
}

// IsSubtotal reports whether line is a known category heading.
func (c *Classifier) IsSubtotal(line string) bool {
	for _, re := range c.subtotals {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Classify assigns line to a class. For ClassRecord the match is returned.
func (c *Classifier) Classify(line string) (LineClass, Match) {
	if isBlank(line) {
		return ClassBlank, Match{}
	}
	if isFooter(line) || c.IsSubtotal(line) {
		return ClassSkip, Match{}
	}
	for _, m := range c.matchers {
		if match, ok := m.Match(line); ok {
			return ClassRecord, match
		}
	}
	return ClassNoMatch, Match{}
}
