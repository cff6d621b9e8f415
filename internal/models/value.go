// ABOUTME: Generic structured values for open-ended JSON columns
// ABOUTME: Used for preferences, metadata, citations, protocol steps, context
package models

import (
	"github.com/shopspring/decimal"
)

// Metadata is a dynamically shaped mapping persisted as JSON. The source data
// constrains these columns to "JSON-serializable" and nothing more, so the
// values stay untyped.
type Metadata map[string]any

// Decimal scales declared by the schema. Fixed-point fields must round-trip
// at exactly these precisions.
const (
	DoseScale   int32 = 3
	WeightScale int32 = 2
	TimingScale int32 = 3
)

// checkScale rejects a decimal carrying more fractional digits than declared.
func checkScale(field string, d decimal.Decimal, scale int32) error {
	if !d.Equal(d.Round(scale)) {
		return invalid(field, "more than %d decimal places", scale)
	}
	return nil
}

// checkOptScale applies checkScale to an optional decimal.
func checkOptScale(field string, d *decimal.Decimal, scale int32) error {
	if d == nil {
		return nil
	}
	return checkScale(field, *d, scale)
}

// checkAgeOrder validates an optional min/max age window in months.
func checkAgeOrder(minField string, min, max *int) error {
	if min != nil && *min < 0 {
		return invalid(minField, "cannot be negative")
	}
	if min != nil && max != nil && *min > *max {
		return invalid(minField, "exceeds the maximum age bound")
	}
	return nil
}

// checkWeightOrder validates an optional min/max weight window in kg.
func checkWeightOrder(minField, maxField string, min, max *decimal.Decimal) error {
	if err := checkOptScale(minField, min, WeightScale); err != nil {
		return err
	}
	if err := checkOptScale(maxField, max, WeightScale); err != nil {
		return err
	}
	if min != nil && max != nil && min.GreaterThan(*max) {
		return invalid(minField, "exceeds the maximum weight bound")
	}
	return nil
}
