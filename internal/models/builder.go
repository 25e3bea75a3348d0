package models

import (
	"errors"
	"strings"
)

// RecordBuilder provides a fluent API for constructing records
type RecordBuilder struct {
	rec Record
	err error
}

// NewExpenseBuilder starts an expense record.
func NewExpenseBuilder() *RecordBuilder {
	return &RecordBuilder{rec: Record{Kind: KindExpense, Expense: &ExpenseRecord{}}}
}

// NewSalaryBuilder starts a salary record.
func NewSalaryBuilder() *RecordBuilder {
	return &RecordBuilder{rec: Record{Kind: KindSalary, Salary: &SalaryRecord{}}}
}

// NewContinuationBuilder starts a continuation record extending target.
func NewContinuationBuilder(target int) *RecordBuilder {
	b := &RecordBuilder{rec: Record{
		Kind:         KindContinuation,
		Shape:        ShapeContinuation,
		Continuation: &ContinuationRecord{Target: target},
	}}
	if target < 0 {
		b.err = errors.New("continuation target must not be negative")
	}
	return b
}

// WithShape sets the producing matcher name
func (b *RecordBuilder) WithShape(shape string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Shape = shape
	return b
}

// WithPage sets the source page
func (b *RecordBuilder) WithPage(page int) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Page = page
	return b
}

// WithOffice sets the office label
func (b *RecordBuilder) WithOffice(office string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Office = office
	return b
}

// WithDocument sets the document number and posting date of an expense.
func (b *RecordBuilder) WithDocument(number, datePosted string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if b.rec.Expense == nil {
		b.err = errors.New("document number only applies to expenses")
		return b
	}
	b.rec.Expense.DocumentNumber = strings.TrimSpace(number)
	b.rec.Expense.DatePosted = strings.TrimSpace(datePosted)
	return b
}

// WithPayee sets the payee of an expense.
func (b *RecordBuilder) WithPayee(payee string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if b.rec.Expense == nil {
		b.err = errors.New("payee only applies to expenses")
		return b
	}
	b.rec.Expense.Payee = strings.TrimSpace(payee)
	return b
}

// WithPeriod sets the optional service period of an expense.
func (b *RecordBuilder) WithPeriod(start, end string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if b.rec.Expense == nil {
		b.err = errors.New("period only applies to expenses")
		return b
	}
	b.rec.Expense.StartDate = strings.TrimSpace(start)
	b.rec.Expense.EndDate = strings.TrimSpace(end)
	return b
}

// WithName sets the person name of a salary record.
func (b *RecordBuilder) WithName(name string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if b.rec.Salary == nil {
		b.err = errors.New("name only applies to salaries")
		return b
	}
	b.rec.Salary.Name = strings.TrimSpace(name)
	return b
}

// WithText sets the free-text field of any kind.
func (b *RecordBuilder) WithText(text string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	text = strings.TrimSpace(text)
	switch b.rec.Kind {
	case KindExpense:
		b.rec.Expense.Description = text
	case KindSalary:
		b.rec.Salary.Position = text
	case KindContinuation:
		b.rec.Continuation.Text = text
	}
	return b
}

// WithAmount sets the primary amount of any kind.
func (b *RecordBuilder) WithAmount(amount string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	amount = strings.TrimSpace(amount)
	switch b.rec.Kind {
	case KindExpense:
		b.rec.Expense.Amount = amount
	case KindSalary:
		b.rec.Salary.Amount = amount
	case KindContinuation:
		b.rec.Continuation.Amount = amount
	}
	return b
}

// Build validates and returns the record
func (b *RecordBuilder) Build() (Record, error) {
	if b.err != nil {
		return Record{}, b.err
	}
	switch b.rec.Kind {
	case KindExpense:
		if b.rec.Expense.DocumentNumber == "" {
			return Record{}, errors.New("expense requires a document number")
		}
		if b.rec.Expense.DatePosted == "" {
			return Record{}, errors.New("expense requires a posting date")
		}
	case KindSalary:
		if b.rec.Salary.Name == "" {
			return Record{}, errors.New("salary requires a name")
		}
	}
	return b.rec.Clone(), nil
}
