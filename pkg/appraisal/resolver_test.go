package appraisal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
)

func TestValue(t *testing.T) {
	exotic := model.AppraisalCategory{
		Code:      "EXOTIC",
		Name:      "Exotic",
		BaseValue: decimal.RequireFromString("5.00"),
		Active:    true,
	}

	tests := []struct {
		name     string
		fullness model.Fullness
		expected string
	}{
		{"full", model.FullnessFull, "5"},
		{"three quarter", model.FullnessThreeQuarter, "3.75"},
		{"half", model.FullnessHalf, "2.5"},
		{"one quarter", model.FullnessOneQuarter, "1.25"},
		{"empty", model.FullnessEmpty, "0"},
		{"unknown level counts as full", model.Fullness("UNKNOWN_CODE"), "5"},
		{"blank level counts as full", model.Fullness(""), "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Value(exotic, tt.fullness)
			check.True(t, got.Equal(decimal.RequireFromString(tt.expected)))
		})
	}
}

type staticLister struct {
	cats []model.AppraisalCategory
	err  error

	calls int
}

func (s *staticLister) ListActive(_ context.Context) ([]model.AppraisalCategory, error) {
	s.calls++
	return s.cats, s.err
}

func TestResolver(t *testing.T) {
	lister := &staticLister{cats: []model.AppraisalCategory{
		{Code: "EXOTIC", BaseValue: decimal.RequireFromString("5.00"), Active: true},
		{Code: "DIESEL", BaseValue: decimal.RequireFromString("1.10"), Active: true},
	}}

	r := &Resolver{Source: NewCachedSource(lister, time.Minute)}
	ctx := context.Background()

	got, err := r.Resolve(ctx, "EXOTIC", model.FullnessHalf)
	assert.NoError(t, err)
	check.True(t, got.Equal(decimal.RequireFromString("2.50")))

	got, err = r.Resolve(ctx, "DIESEL", model.FullnessFull)
	assert.NoError(t, err)
	check.True(t, got.Equal(decimal.RequireFromString("1.10")))

	_, err = r.Resolve(ctx, "NO_SUCH", model.FullnessFull)
	check.True(t, errors.Is(err, database.ErrNotFound))

	// both lookups served from one snapshot
	check.Equal(t, 1, lister.calls)
}

func TestCachedSourceRefreshFailure(t *testing.T) {
	lister := &staticLister{cats: []model.AppraisalCategory{
		{Code: "GM_BALE", BaseValue: decimal.RequireFromString("2.40"), Active: true},
	}}

	cs := NewCachedSource(lister, 0) // every access is stale
	ctx := context.Background()

	_, err := cs.GetByCode(ctx, "GM_BALE")
	assert.NoError(t, err)

	// the old snapshot keeps serving when refresh starts failing
	lister.err = errors.New("connection refused")

	cat, err := cs.GetByCode(ctx, "GM_BALE")
	assert.NoError(t, err)
	check.True(t, cat.BaseValue.Equal(decimal.RequireFromString("2.40")))
}
