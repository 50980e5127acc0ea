package model

import (
	"errors"
	"time"
)

// Rejection reasons returned by the bid validator. Each one maps 1:1 to a
// reason code on the wire, see pkg/server/handler.
var (
	ErrSelfBid            = errors.New("seller can't bid on their own item")
	ErrBiddingClosed      = errors.New("bidding is closed for this item")
	ErrBelowCurrentBid    = errors.New("amount must exceed the current bid")
	ErrBelowStartingPrice = errors.New("amount must exceed the starting price")
	ErrInvalidAmount      = errors.New("amount must be a positive value with at most two decimal places")
)

type Base struct {
	ID        int       `json:"id"` // int/serial used for simplicity, in prod env uuid is more preferrable
	CreatedAt time.Time `json:"created_at"`
}
