package enums

import "fmt"

// PondStatus marks whether a pond is currently in production.
type PondStatus string

const (
	PondStatusActive   PondStatus = "active"
	PondStatusInactive PondStatus = "inactive"
)

var validPondStatuses = []PondStatus{PondStatusActive, PondStatusInactive}

// String implements fmt.Stringer.
func (p PondStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PondStatus.
func (p PondStatus) IsValid() bool {
	for _, candidate := range validPondStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePondStatus converts raw input into a PondStatus.
func ParsePondStatus(value string) (PondStatus, error) {
	for _, candidate := range validPondStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pond status %q", value)
}
