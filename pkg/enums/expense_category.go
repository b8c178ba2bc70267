package enums

import "fmt"

// ExpenseCategory buckets operating costs for reporting.
type ExpenseCategory string

const (
	ExpenseCategoryFeed        ExpenseCategory = "feed"
	ExpenseCategorySeed        ExpenseCategory = "seed"
	ExpenseCategorySalary      ExpenseCategory = "salary"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryElectricity ExpenseCategory = "electricity"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

var validExpenseCategories = []ExpenseCategory{
	ExpenseCategoryFeed,
	ExpenseCategorySeed,
	ExpenseCategorySalary,
	ExpenseCategoryMaintenance,
	ExpenseCategoryElectricity,
	ExpenseCategoryOther,
}

// String implements fmt.Stringer.
func (e ExpenseCategory) String() string {
	return string(e)
}

// IsValid reports whether the value is a known ExpenseCategory.
func (e ExpenseCategory) IsValid() bool {
	for _, candidate := range validExpenseCategories {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExpenseCategory converts raw input into an ExpenseCategory.
func ParseExpenseCategory(value string) (ExpenseCategory, error) {
	for _, candidate := range validExpenseCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense category %q", value)
}
