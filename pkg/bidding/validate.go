// Package bidding holds the bid acceptance rules and the rollup event
// contract. Validation here is advisory: it runs against a snapshot of the
// item, and the authoritative floor check is repeated by the conditional
// update inside the placement transaction (see database.RollupDatabase).
package bidding

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/model"
)

// Validate applies the acceptance rules in order, first failure wins:
//
//  1. the bidder must not be the item's seller
//  2. the item must be active, and when it sits in a sale, that sale must
//     be accepting bids
//  3. the amount must strictly exceed max(current bid, starting price)
//  4. the amount must be positive with at most two decimal places
//
// sales carries every sale enclosing the item's package; empty when the
// item is listed outside a sale.
func Validate(item *model.Item, sales []*model.Sale, amount decimal.Decimal, bidderID int, now time.Time) error {
	if bidderID == item.SellerID {
		return model.ErrSelfBid
	}

	if !item.Active {
		return model.ErrBiddingClosed
	}

	if len(sales) > 0 && OpenSale(sales, now) == nil {
		return model.ErrBiddingClosed
	}

	// The rejection names the floor that actually bound: a starting price
	// above the current bid rejects as below-starting even when a bid exists.
	floor := item.PriceFloor()
	if !amount.GreaterThan(floor) {
		if item.CurrentPrice.Valid && floor.Equal(item.CurrentPrice.Decimal) {
			return model.ErrBelowCurrentBid
		}
		return model.ErrBelowStartingPrice
	}

	if !ValidAmount(amount) {
		return model.ErrInvalidAmount
	}

	return nil
}

// OpenSale returns the first sale still accepting bids at now, nil if none.
func OpenSale(sales []*model.Sale, now time.Time) *model.Sale {
	for _, s := range sales {
		if s.AcceptsBids(now) {
			return s
		}
	}
	return nil
}

// ValidAmount reports whether amount is a positive monetary value with at
// most two decimal places.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}
