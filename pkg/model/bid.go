package model

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidPending BidStatus = "PENDING"
	BidActive  BidStatus = "ACTIVE"
	BidWinning BidStatus = "WINNING"
	BidOutbid  BidStatus = "OUTBID"
	BidWon     BidStatus = "WON"
	BidLost    BidStatus = "LOST"
)

// Bid is immutable once created. Status is the only field that ever changes,
// and only the rollup engine changes it (WINNING -> OUTBID on a higher bid,
// WINNING -> WON / ACTIVE -> LOST at settlement).
type Bid struct {
	Base
	UserID    int             `json:"user_id"`
	ItemID    int             `json:"item_id"`
	PackageID sql.NullInt64   `json:"package_id,omitempty"` // aggregation context, set from the item at creation
	SaleID    sql.NullInt64   `json:"sale_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Status    BidStatus       `json:"status"`

	// Appraisal snapshot justifying the amount, recorded as submitted.
	// Later reference-data changes don't rewrite history.
	AppraisalCategory string              `json:"appraisal_category,omitempty"`
	AppraisalValue    decimal.NullDecimal `json:"appraisal_value,omitempty"`
	FullnessApplied   Fullness            `json:"fullness_applied,omitempty"`
}
