package enums

import "fmt"

// StockKind distinguishes feed stock from seed (fry) stock.
type StockKind string

const (
	StockKindFeed StockKind = "feed"
	StockKindSeed StockKind = "seed"
)

var validStockKinds = []StockKind{StockKindFeed, StockKindSeed}

// String implements fmt.Stringer.
func (s StockKind) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockKind.
func (s StockKind) IsValid() bool {
	for _, candidate := range validStockKinds {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockKind converts raw input into a StockKind.
func ParseStockKind(value string) (StockKind, error) {
	for _, candidate := range validStockKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock kind %q", value)
}

// StockMovementType describes how a movement changes on-hand quantity.
type StockMovementType string

const (
	StockMovementPurchase   StockMovementType = "purchase"
	StockMovementUsage      StockMovementType = "usage"
	StockMovementAdjustment StockMovementType = "adjustment"
)

var validStockMovementTypes = []StockMovementType{
	StockMovementPurchase,
	StockMovementUsage,
	StockMovementAdjustment,
}

// String implements fmt.Stringer.
func (s StockMovementType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockMovementType.
func (s StockMovementType) IsValid() bool {
	for _, candidate := range validStockMovementTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockMovementType converts raw input into a StockMovementType.
func ParseStockMovementType(value string) (StockMovementType, error) {
	for _, candidate := range validStockMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock movement type %q", value)
}
