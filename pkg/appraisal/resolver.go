// Package appraisal resolves a monetary base value for a scrap unit from its
// category reference data and fullness condition.
package appraisal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/model"
)

// CategorySource supplies appraisal reference data. Implemented by
// database.AppraisalCategoryDatabase and the CachedSource wrapper.
type CategorySource interface {
	// GetByCode returns the active category with the given code,
	// or database.ErrNotFound when the code is unknown or inactive.
	GetByCode(ctx context.Context, code string) (model.AppraisalCategory, error)
}

// Value scales the category's base value by the fullness multiplier.
// Pure, no rounding: 5.00 $/lb at HALF is exactly 2.50.
func Value(cat model.AppraisalCategory, fullness model.Fullness) decimal.Decimal {
	return cat.BaseValue.Mul(fullness.Multiplier())
}

// Resolver looks categories up in a source and applies the fullness scale.
type Resolver struct {
	Source CategorySource
}

func (r *Resolver) Resolve(ctx context.Context, code string, fullness model.Fullness) (decimal.Decimal, error) {
	cat, err := r.Source.GetByCode(ctx, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("can't resolve appraisal category %q: %w", code, err)
	}

	return Value(cat, fullness), nil
}
