package model

import (
	"github.com/shopspring/decimal"
)

// RollupResult reports the aggregates touched by one accepted bid.
type RollupResult struct {
	BidID         int                     `json:"bid_id"`
	ItemID        int                     `json:"item_id"`
	NewPrice      decimal.Decimal         `json:"new_price"`
	PreviousPrice decimal.NullDecimal     `json:"previous_price"`
	PackageID     int                     `json:"package_id,omitempty"` // 0 when the item is unpackaged
	PackageTotal  decimal.Decimal         `json:"package_total,omitempty"`
	SaleTotals    map[int]decimal.Decimal `json:"sale_totals,omitempty"` // sale id -> recomputed aggregate
}

// SaleIDs lists the sales whose aggregates were recomputed.
func (r RollupResult) SaleIDs() []int {
	ids := make([]int, 0, len(r.SaleTotals))
	for id := range r.SaleTotals {
		ids = append(ids, id)
	}
	return ids
}
