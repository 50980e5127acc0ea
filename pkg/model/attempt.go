package model

import (
	"github.com/shopspring/decimal"
)

// BidAttempt is an audit record of a bid placement try, accepted or not.
// Attempts are write-only history for sellers and ops, they never feed back
// into validation.
type BidAttempt struct {
	Base
	UserID int             `json:"user_id"`
	ItemID int             `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
	BidID  int             `json:"bid_id,omitempty"` // 0 when the attempt was rejected
	Error  string          `json:"error,omitempty"`
}
