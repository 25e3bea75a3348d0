package models

// RecordKind tags the variant held by a Record.
type RecordKind string

// Record kinds
const (
	KindExpense      RecordKind = "expense"
	KindSalary       RecordKind = "salary"
	KindContinuation RecordKind = "continuation"
)

// Shape names identify the line grammar that produced a record.
const (
	ShapeStrictExpense          = "strict-expense"
	ShapeStrictSalary           = "strict-salary"
	ShapeMissingDate            = "missing-date"
	ShapeFlexibleExpense        = "flexible-expense"
	ShapeFlexibleSalary         = "flexible-salary"
	ShapeFlexibleSalaryNoAmount = "flexible-salary-no-amount"
	ShapeContinuation           = "continuation"
	ShapeRecovered              = "recovered"
)

// AdditionalAmountsSeparator joins extra amounts in a single CSV cell.
const AdditionalAmountsSeparator = "|"

// File permissions
const (
	PermissionFile      = 0644
	PermissionDirectory = 0750
)
