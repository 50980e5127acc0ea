package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleDraft         SaleStatus = "DRAFT"
	SaleActive        SaleStatus = "ACTIVE"
	SaleBiddingClosed SaleStatus = "BIDDING_CLOSED"
	SaleCompleted     SaleStatus = "COMPLETED"
)

type SellerType string

const (
	SellerGenerator SellerType = "GENERATOR"
	SellerProcessor SellerType = "PROCESSOR"
	SellerBroker    SellerType = "BROKER"
)

// Sale is a buyer-facing LOT: a group of packages with a shared bidding
// deadline. CurrentBid is a cached aggregate equal to the sum of member
// package aggregates, written only by the rollup recompute.
type Sale struct {
	Base
	LotNumber          string          `json:"lot_number"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	ZipCode            string          `json:"zip_code"`
	PickupInstructions string          `json:"-"`
	UnitCount          int             `json:"unit_count"`
	TotalWeight        decimal.Decimal `json:"total_weight"`
	SellerType         SellerType      `json:"seller_type"`
	Status             SaleStatus      `json:"status"`
	BidDueDate         time.Time       `json:"bid_due_date"`
	CurrentBid         decimal.Decimal `json:"current_bid"`
	SellerID           int             `json:"seller_id"`
	PublishedAt        time.Time       `json:"published_at,omitzero"`
}

// AcceptsBids reports whether the sale is still open for bidding at now.
func (s *Sale) AcceptsBids(now time.Time) bool {
	return s.Status == SaleActive && s.BidDueDate.After(now)
}
