// Package bioguide matches senator names from report offices to their
// Biographical Directory identifiers using the congress-legislators data.
package bioguide

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Term is one term of service.
type Term struct {
	Type  string `yaml:"type"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	State string `yaml:"state"`
}

// Name holds the name parts of a legislator.
type Name struct {
	First        string `yaml:"first"`
	Middle       string `yaml:"middle"`
	Last         string `yaml:"last"`
	Nickname     string `yaml:"nickname"`
	Suffix       string `yaml:"suffix"`
	OfficialFull string `yaml:"official_full"`
}

type legislator struct {
	ID struct {
		Bioguide string `yaml:"bioguide"`
	} `yaml:"id"`
	Name  Name   `yaml:"name"`
	Terms []Term `yaml:"terms"`
}

// Senator is a legislator with at least one Senate term. Terms holds only
// the Senate terms.
type Senator struct {
	BioguideID string
	Name       Name
	Terms      []Term
	variants   []string
}

// ParseLegislators decodes a legislators YAML document and keeps the
// senators.
func ParseLegislators(data []byte) ([]Senator, error) {
	var all []legislator
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse legislators: %w", err)
	}

	var senators []Senator
	for _, l := range all {
		var terms []Term
		for _, t := range l.Terms {
			if t.Type == "sen" {
				terms = append(terms, t)
			}
		}
		if len(terms) == 0 {
			continue
		}
		s := Senator{BioguideID: l.ID.Bioguide, Name: l.Name, Terms: terms}
		s.variants = s.NameVariants()
		senators = append(senators, s)
	}
	return senators, nil
}

var (
	suffixRe      = regexp.MustCompile(`\s+(JR\.?|SR\.?|III?|IV|V)$`)
	punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// NormalizeName upper-cases a name, drops a trailing generational suffix
// and punctuation, and collapses whitespace.
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	name = suffixRe.ReplaceAllString(name, "")
	name = punctuationRe.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// NameVariants lists the normalized forms a report may use for the
// senator: first last, nickname last, first middle last and first middle
// initial last.
func (s Senator) NameVariants() []string {
	n := s.Name
	var names []string
	if n.First != "" && n.Last != "" {
		names = append(names, n.First+" "+n.Last)
	}
	if n.Nickname != "" && n.Nickname != n.First && n.Last != "" {
		names = append(names, n.Nickname+" "+n.Last)
	}
	if n.First != "" && n.Middle != "" && n.Last != "" {
		names = append(names, n.First+" "+n.Middle+" "+n.Last)
		initial, _ := firstRune(n.Middle)
		names = append(names, n.First+" "+initial+" "+n.Last)
	}
	for i := range names {
		names[i] = NormalizeName(names[i])
	}
	return names
}

func firstRune(s string) (string, bool) {
	for _, r := range s {
		return string(r), true
	}
	return "", false
}

// ActiveIn reports whether any Senate term spans year. A term without an
// end counts as running through currentYear. Year 0 matches every
// senator.
func (s Senator) ActiveIn(year, currentYear int) bool {
	if year == 0 {
		return true
	}
	for _, t := range s.Terms {
		start, ok := yearOf(t.Start)
		if !ok {
			continue
		}
		end := currentYear
		if t.End != "" {
			if end, ok = yearOf(t.End); !ok {
				continue
			}
		}
		if start <= year && year <= end {
			return true
		}
	}
	return false
}

// ServedState reports whether any Senate term was for state.
func (s Senator) ServedState(state string) bool {
	for _, t := range s.Terms {
		if strings.EqualFold(t.State, state) {
			return true
		}
	}
	return false
}

func (s Senator) matchesName(normalized string) bool {
	variants := s.variants
	if variants == nil {
		variants = s.NameVariants()
	}
	for _, v := range variants {
		if v == normalized {
			return true
		}
	}
	return false
}

func yearOf(date string) (int, bool) {
	head, _, _ := strings.Cut(date, "-")
	y, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return y, true
}
