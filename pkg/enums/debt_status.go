package enums

import "fmt"

// DebtStatus is the settlement state of a receivable. The stored column is a
// cache; the authoritative value is derived from the payment sum on read.
type DebtStatus string

const (
	DebtStatusUnpaid DebtStatus = "unpaid"
	DebtStatusPaid   DebtStatus = "paid"
)

var validDebtStatuses = []DebtStatus{
	DebtStatusUnpaid,
	DebtStatusPaid,
}

// String implements fmt.Stringer.
func (d DebtStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DebtStatus.
func (d DebtStatus) IsValid() bool {
	for _, candidate := range validDebtStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDebtStatus converts raw input into a DebtStatus.
func ParseDebtStatus(value string) (DebtStatus, error) {
	for _, candidate := range validDebtStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid debt status %q", value)
}
