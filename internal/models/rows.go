package models

import (
	"errors"
	"fmt"
	"strings"

	"sunlight/senate-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

// RawRow is one row of the raw record CSV.
type RawRow struct {
	Office            string `csv:"office"`
	Shape             string `csv:"shape"`
	Kind              string `csv:"kind"`
	PageNum           int    `csv:"page_num"`
	DocumentNumber    string `csv:"document_number"`
	DatePosted        string `csv:"date_posted"`
	Payee             string `csv:"payee"`
	StartDate         string `csv:"start_date"`
	EndDate           string `csv:"end_date"`
	Description       string `csv:"description"`
	Amount            string `csv:"amount"`
	AdditionalAmounts string `csv:"additional_amounts"`
}

// CleanRow is one row of the cleaned CSV. Numeric columns that may be
// unknown are strings so that an absent value stays empty.
type CleanRow struct {
	SourceDoc      string `csv:"source_doc"`
	SenatorFlag    int    `csv:"senator_flag"`
	SenatorName    string `csv:"senator_name"`
	BioguideID     string `csv:"bioguide_id"`
	RawOffice      string `csv:"raw_office"`
	FundingYear    string `csv:"funding_year"`
	FiscalYear     string `csv:"fiscal_year"`
	CongressNumber string `csv:"congress_number"`
	ReferencePage  int    `csv:"reference_page"`
	DocumentNumber string `csv:"document_number"`
	DatePosted     string `csv:"date_posted"`
	StartDate      string `csv:"start_date"`
	EndDate        string `csv:"end_date"`
	Description    string `csv:"description"`
	SalaryFlag     int    `csv:"salary_flag"`
	Amount         string `csv:"amount"`
	AmountValue    string `csv:"amount_value"`
	Payee          string `csv:"payee"`
}

// CleanColumns lists the cleaned CSV header in output order.
var CleanColumns = []string{
	"source_doc", "senator_flag", "senator_name", "bioguide_id", "raw_office",
	"funding_year", "fiscal_year", "congress_number", "reference_page",
	"document_number", "date_posted", "start_date", "end_date", "description",
	"salary_flag", "amount", "amount_value", "payee",
}

// Values returns the row's cells in CleanColumns order.
func (c CleanRow) Values() []string {
	return []string{
		c.SourceDoc, fmt.Sprint(c.SenatorFlag), c.SenatorName, c.BioguideID, c.RawOffice,
		c.FundingYear, c.FiscalYear, c.CongressNumber, fmt.Sprint(c.ReferencePage),
		c.DocumentNumber, c.DatePosted, c.StartDate, c.EndDate, c.Description,
		fmt.Sprint(c.SalaryFlag), c.Amount, c.AmountValue, c.Payee,
	}
}

// ToRawRow flattens a record into the raw CSV layout. Salary names go in
// the payee column and positions in the description column.
func (r *Record) ToRawRow() RawRow {
	row := RawRow{
		Office:            r.Office,
		Shape:             r.Shape,
		Kind:              string(r.Kind),
		PageNum:           r.Page,
		AdditionalAmounts: strings.Join(r.AdditionalAmounts, AdditionalAmountsSeparator),
	}
	switch r.Kind {
	case KindExpense:
		e := r.Expense
		row.DocumentNumber = e.DocumentNumber
		row.DatePosted = e.DatePosted
		row.Payee = e.Payee
		row.StartDate = e.StartDate
		row.EndDate = e.EndDate
		row.Description = e.Description
		row.Amount = e.Amount
	case KindSalary:
		row.Payee = r.Salary.Name
		row.Description = r.Salary.Position
		row.Amount = r.Salary.Amount
	case KindContinuation:
		row.Description = r.Continuation.Text
		row.Amount = r.Continuation.Amount
	}
	return row
}

// ErrEmptyAmount is returned by ParseAmount for blank input.
var ErrEmptyAmount = errors.New("empty amount")

// ParseAmount converts a report amount such as "1,250.00", "$75.10",
// "-12.00" or "12.00-" to a decimal.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	negative := false
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimPrefix(s, "-")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Field: "amount", Value: raw, Err: err}
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
