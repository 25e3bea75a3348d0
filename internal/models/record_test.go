package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpense(t *testing.T, description, amount string) Record {
	t.Helper()
	rec, err := NewExpenseBuilder().
		WithShape(ShapeStrictExpense).
		WithPage(12).
		WithDocument("AB1234567", "01/15/2016").
		WithPayee("ACME CORP").
		WithText(description).
		WithAmount(amount).
		Build()
	require.NoError(t, err)
	return rec
}

func TestRecord_AppendText(t *testing.T) {
	rec := newExpense(t, "Office supplies", "")
	rec.AppendText(" + ", "  and toner  ")
	rec.AppendText(" + ", "   ")
	assert.Equal(t, "Office supplies + and toner", rec.Text())

	empty := newExpense(t, "", "")
	empty.AppendText(" + ", "first")
	assert.Equal(t, "first", empty.Text())
}

func TestRecord_AttachAmount(t *testing.T) {
	rec := newExpense(t, "Travel", "")
	rec.AttachAmount("10.00")
	assert.Equal(t, "10.00", rec.Amount())
	assert.Empty(t, rec.AdditionalAmounts)

	rec.AttachAmount("20.00")
	rec.AttachAmount("")
	assert.Equal(t, "10.00", rec.Amount())
	assert.Equal(t, []string{"20.00"}, rec.AdditionalAmounts)
}

func TestRecord_SalaryText(t *testing.T) {
	rec, err := NewSalaryBuilder().WithName(" DOE, JANE ").WithText("LEGISLATIVE ASSISTANT").Build()
	require.NoError(t, err)
	assert.Equal(t, "DOE, JANE", rec.Salary.Name)

	rec.AppendText(" + ", "AND COUNSEL")
	assert.Equal(t, "LEGISLATIVE ASSISTANT + AND COUNSEL", rec.Salary.Position)
	assert.False(t, rec.IsContinuation())
}

func TestRecord_Clone(t *testing.T) {
	rec := newExpense(t, "Phones", "5.00")
	rec.AdditionalAmounts = []string{"1.00"}

	clone := rec.Clone()
	clone.Expense.Description = "changed"
	clone.AdditionalAmounts[0] = "9.99"

	assert.Equal(t, "Phones", rec.Expense.Description)
	assert.Equal(t, "1.00", rec.AdditionalAmounts[0])
}

func TestRecordBuilder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (Record, error)
		wantErr string
	}{
		{
			name:    "expense without document",
			build:   func() (Record, error) { return NewExpenseBuilder().WithPayee("X").Build() },
			wantErr: "document number",
		},
		{
			name:    "expense without date",
			build:   func() (Record, error) { return NewExpenseBuilder().WithDocument("AB1", "").Build() },
			wantErr: "posting date",
		},
		{
			name:    "salary without name",
			build:   func() (Record, error) { return NewSalaryBuilder().WithText("CLERK").Build() },
			wantErr: "name",
		},
		{
			name:    "payee on salary",
			build:   func() (Record, error) { return NewSalaryBuilder().WithPayee("X").Build() },
			wantErr: "payee only applies",
		},
		{
			name:    "negative continuation target",
			build:   func() (Record, error) { return NewContinuationBuilder(-1).Build() },
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestContinuationBuilder(t *testing.T) {
	rec, err := NewContinuationBuilder(2).WithPage(4).WithText("PART TWO").WithAmount("3.00").Build()
	require.NoError(t, err)
	assert.True(t, rec.IsContinuation())
	assert.Equal(t, ShapeContinuation, rec.Shape)
	assert.Equal(t, 2, rec.Continuation.Target)
	assert.Equal(t, "PART TWO", rec.Text())
	assert.Equal(t, "3.00", rec.Amount())
}

func TestPageStats(t *testing.T) {
	stats := PageStats{NonBlank: 5, Skipped: 1, Folded: 1, Records: 2, Unclassified: 1}
	assert.True(t, stats.Balanced())

	var total PageStats
	total.Add(stats)
	total.Add(PageStats{NonBlank: 1, Records: 1})
	assert.Equal(t, 6, total.NonBlank)
	assert.Equal(t, 3, total.Records)
	assert.True(t, total.Balanced())

	stats.Records = 3
	assert.False(t, stats.Balanced())
}
