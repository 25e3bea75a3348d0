package models

import "strings"

// ExpenseRecord is one itemized expense line.
type ExpenseRecord struct {
	DocumentNumber string
	DatePosted     string
	Payee          string
	StartDate      string
	EndDate        string
	Description    string
	Amount         string
}

// SalaryRecord is one salary line.
type SalaryRecord struct {
	Name     string
	Position string
	Amount   string
}

// ContinuationRecord extends the record at Target in the page's record arena.
// It is folded into its target and never emitted.
type ContinuationRecord struct {
	Target int
	Text   string
	Amount string
}

// Record is a tagged variant over the three record kinds. Exactly one of
// Expense, Salary or Continuation is set, matching Kind.
type Record struct {
	Kind   RecordKind
	Shape  string
	Page   int
	Office string

	Expense      *ExpenseRecord
	Salary       *SalaryRecord
	Continuation *ContinuationRecord

	// AdditionalAmounts holds amounts from chained continuation lines whose
	// target already carried an amount.
	AdditionalAmounts []string
}

// IsContinuation reports whether r is a chained continuation entry.
func (r *Record) IsContinuation() bool {
	return r.Kind == KindContinuation
}

// Text returns the free-text field: the expense description, the salary
// position or the continuation text.
func (r *Record) Text() string {
	switch r.Kind {
	case KindExpense:
		return r.Expense.Description
	case KindSalary:
		return r.Salary.Position
	case KindContinuation:
		return r.Continuation.Text
	}
	return ""
}

// Amount returns the primary amount, possibly empty.
func (r *Record) Amount() string {
	switch r.Kind {
	case KindExpense:
		return r.Expense.Amount
	case KindSalary:
		return r.Salary.Amount
	case KindContinuation:
		return r.Continuation.Amount
	}
	return ""
}

// AppendText appends a fragment to the free-text field using sep.
func (r *Record) AppendText(sep, fragment string) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return
	}
	joined := fragment
	if current := r.Text(); current != "" {
		joined = current + sep + fragment
	}
	switch r.Kind {
	case KindExpense:
		r.Expense.Description = joined
	case KindSalary:
		r.Salary.Position = joined
	case KindContinuation:
		r.Continuation.Text = joined
	}
}

// AttachAmount sets the primary amount when it is empty and otherwise
// records amount as an additional amount.
func (r *Record) AttachAmount(amount string) {
	if amount == "" {
		return
	}
	if r.Amount() != "" {
		r.AdditionalAmounts = append(r.AdditionalAmounts, amount)
		return
	}
	switch r.Kind {
	case KindExpense:
		r.Expense.Amount = amount
	case KindSalary:
		r.Salary.Amount = amount
	case KindContinuation:
		r.Continuation.Amount = amount
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	if r.Expense != nil {
		e := *r.Expense
		out.Expense = &e
	}
	if r.Salary != nil {
		s := *r.Salary
		out.Salary = &s
	}
	if r.Continuation != nil {
		c := *r.Continuation
		out.Continuation = &c
	}
	if r.AdditionalAmounts != nil {
		out.AdditionalAmounts = append([]string(nil), r.AdditionalAmounts...)
	}
	return out
}
