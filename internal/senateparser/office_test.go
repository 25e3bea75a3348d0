package senateparser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFundingYearAnchor(t *testing.T) {
	lines := []string{
		"DETAILED AND SUMMARY STATEMENT OF EXPENDITURES",
		fmt.Sprintf("%-50s%s", "SENATOR JOHN ROE", "DESCRIPTION        YTD"),
		"                Funding Year 2018",
	}
	assert.Equal(t, "SENATOR JOHN ROE", fundingYearAnchor(lines))
}

func TestFundingYearAnchor_StripsBoilerplate(t *testing.T) {
	lines := []string{
		"COMMITTEE ON RULES AVAILABLE AS OF YTD     NET FUNDS",
		"Funding Year 2019",
	}
	assert.Equal(t, "COMMITTEE ON RULES  OF", fundingYearAnchor(lines))
}

func TestFundingYearAnchor_RejectsShortAndDistantCandidates(t *testing.T) {
	assert.Equal(t, "", fundingYearAnchor([]string{"YTD", "Funding Year 2019"}))

	distant := []string{"SENATOR FAR AWAY", "", "", "", "", "Funding Year 2019"}
	assert.Equal(t, "", fundingYearAnchor(distant))

	late := make([]string, 20)
	late[17] = "SENATOR TOO LOW"
	late[18] = "Funding Year 2019"
	assert.Equal(t, "", fundingYearAnchor(late))
}

func TestPartyMarker(t *testing.T) {
	lines := []string{
		"REPORT OF THE SECRETARY",
		"SENATOR JANE DOE  DESCRIPTION  (D)",
	}
	assert.Equal(t, "SENATOR JANE DOE", partyMarker(lines))
	assert.Equal(t, "SENATOR JOHN ROE (R)", partyMarker([]string{"  SENATOR JOHN ROE (R)  "}))
	assert.Equal(t, "", partyMarker([]string{"DESCRIPTION (R)"}))

	// Scanning stops at the first marked line even when it has no label.
	assert.Equal(t, "", partyMarker([]string{
		"DESCRIPTION (R)",
		"SENATOR JOHN ROE  DESCRIPTION  (R)",
	}))
}

func TestCommitteeKeyword(t *testing.T) {
	lines := []string{
		"SALARIES, COMMITTEE ON FINANCE",
		"Authorization for JUDICIARY",
		"COMMITTEE ON THE JUDICIARY  Funding Year 2017  DESCRIPTION",
	}
	assert.Equal(t, "COMMITTEE ON THE JUDICIARY", committeeKeyword(lines))
	assert.Equal(t, "", committeeKeyword([]string{"OFFICE OF THE CHAPLAIN"}))
}

func TestOfficeResolver_Precedence(t *testing.T) {
	// Party marker and committee keyword near the top, Funding Year anchor below.
	lines := []string{
		"SENATOR JANE DOE (D)",
		"COMMITTEE ON ARMED SERVICES",
		"",
		"",
		"",
		"OFFICE OF SENATOR JANE DOE",
		"Funding Year 2016",
	}
	r := NewOfficeResolver(5)
	assert.Equal(t, "OFFICE OF SENATOR JANE DOE", r.Resolve(10, lines))

	r = NewOfficeResolver(5)
	assert.Equal(t, "SENATOR JANE DOE (D)", r.Resolve(10, lines[:5]))

	r = NewOfficeResolver(5)
	assert.Equal(t, "COMMITTEE ON ARMED SERVICES", r.Resolve(10, lines[1:5]))
}

func TestOfficeResolver_CacheAndLookback(t *testing.T) {
	r := NewOfficeResolver(5)
	r.Store(10, "SENATOR JANE DOE")
	r.Store(11, "")

	label, ok := r.Lookup(10)
	assert.True(t, ok)
	assert.Equal(t, "SENATOR JANE DOE", label)

	// Within five pages: reused and copied forward.
	assert.Equal(t, "SENATOR JANE DOE", r.Resolve(15, nil))
	label, ok = r.Lookup(15)
	assert.True(t, ok)
	assert.Equal(t, "SENATOR JANE DOE", label)

	// Lookback is checked before the heuristics.
	assert.Equal(t, "SENATOR JANE DOE", r.Resolve(16, []string{"COMMITTEE ON FINANCE"}))

	// More than five pages past the last cached label.
	assert.Equal(t, "", r.Resolve(22, nil))
	_, ok = r.Lookup(22)
	assert.False(t, ok)
}

func TestOfficeResolver_LookbackStopsAtFirstPage(t *testing.T) {
	r := NewOfficeResolver(5)
	_, ok := r.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, "", r.Resolve(3, nil))
}

func TestLeftOfFirst(t *testing.T) {
	assert.Equal(t, "A ", leftOfFirst("A NET FUNDS B DESCRIPTION", "DESCRIPTION", "NET FUNDS"))
	assert.Equal(t, "whole", leftOfFirst("whole", "DESCRIPTION"))
}
