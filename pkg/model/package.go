package model

import (
	"github.com/shopspring/decimal"
)

type PackageStatus string

const (
	PackageInProgress PackageStatus = "IN_PROGRESS"
	PackageCompleted  PackageStatus = "COMPLETED"
	PackageInSale     PackageStatus = "IN_SALE"
	PackageSold       PackageStatus = "SOLD"
)

// Package groups items for sale. CurrentBid is a cached aggregate: it must
// equal the sum of member items' current prices after every settled bid.
// Only the rollup recompute writes it.
type Package struct {
	Base
	OwnerID     int                 `json:"owner_id"`
	Name        string              `json:"name"`
	Status      PackageStatus       `json:"status"`
	FinalWeight decimal.NullDecimal `json:"final_weight,omitempty"` // pounds
	CurrentBid  decimal.Decimal     `json:"current_bid"`
	ItemCount   int                 `json:"item_count"` // derived from membership, never stored
	Notes       string              `json:"-"`
}
