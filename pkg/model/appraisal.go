package model

import (
	"github.com/shopspring/decimal"
)

// Fullness is the honeycomb condition of a converter unit. It scales the
// appraisal base value of the unit's category.
type Fullness string

const (
	FullnessFull         Fullness = "FULL"
	FullnessThreeQuarter Fullness = "THREE_QUARTER"
	FullnessHalf         Fullness = "HALF"
	FullnessOneQuarter   Fullness = "ONE_QUARTER"
	FullnessEmpty        Fullness = "EMPTY"
)

// Multiplier returns the numeric scale for the fullness level.
// Unknown levels count as full. That is a deliberate permissive policy:
// a unit with an unrecognized condition tag is appraised at face value
// rather than dropped to zero.
func (f Fullness) Multiplier() decimal.Decimal {
	switch f {
	case FullnessFull:
		return decimal.NewFromInt(1)
	case FullnessThreeQuarter:
		return decimal.NewFromFloat(0.75)
	case FullnessHalf:
		return decimal.NewFromFloat(0.5)
	case FullnessOneQuarter:
		return decimal.NewFromFloat(0.25)
	case FullnessEmpty:
		return decimal.Zero
	default:
		return decimal.NewFromInt(1)
	}
}

// AppraisalCategory is reference data: a preset scrap category with a base
// per-pound value. Read-only input to bidding, refreshed independently.
type AppraisalCategory struct {
	Base
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	BaseValue   decimal.Decimal `json:"base_value"` // $/lb
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
	SortOrder   int             `json:"sort_order"`
}
