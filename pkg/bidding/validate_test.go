package bidding

import (
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testItem() *model.Item {
	return &model.Item{
		Base:          model.Base{ID: 1},
		SellerID:      10,
		StartingPrice: d("100.00"),
		Active:        true,
	}
}

func withCurrent(item *model.Item, price string) *model.Item {
	item.CurrentPrice = decimal.NullDecimal{Decimal: d(price), Valid: true}
	return item
}

func openSale(now time.Time) *model.Sale {
	return &model.Sale{
		Base:       model.Base{ID: 5},
		Status:     model.SaleActive,
		BidDueDate: now.Add(time.Hour),
	}
}

func TestValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		item     *model.Item
		sales    []*model.Sale
		amount   decimal.Decimal
		bidderID int
		expected error
	}{
		{
			name:     "first bid above starting price",
			item:     testItem(),
			amount:   d("150.00"),
			bidderID: 20,
			expected: nil,
		},
		{
			name:     "seller bids on own item",
			item:     testItem(),
			amount:   d("150.00"),
			bidderID: 10,
			expected: model.ErrSelfBid,
		},
		{
			name:     "self-bid wins over every later rule",
			item:     testItem(),
			amount:   d("-3.00"),
			bidderID: 10,
			expected: model.ErrSelfBid,
		},
		{
			name:     "sale deadline passed",
			item:     testItem(),
			sales:    []*model.Sale{{Status: model.SaleActive, BidDueDate: now.Add(-time.Minute)}},
			amount:   d("150.00"),
			bidderID: 20,
			expected: model.ErrBiddingClosed,
		},
		{
			name:     "sale not active",
			item:     testItem(),
			sales:    []*model.Sale{{Status: model.SaleDraft, BidDueDate: now.Add(time.Hour)}},
			amount:   d("150.00"),
			bidderID: 20,
			expected: model.ErrBiddingClosed,
		},
		{
			name:     "one open sale among closed ones is enough",
			item:     testItem(),
			sales:    []*model.Sale{{Status: model.SaleCompleted, BidDueDate: now.Add(time.Hour)}, openSale(now)},
			amount:   d("150.00"),
			bidderID: 20,
			expected: nil,
		},
		{
			name:     "below current bid",
			item:     withCurrent(testItem(), "150.00"),
			amount:   d("120.00"),
			bidderID: 20,
			expected: model.ErrBelowCurrentBid,
		},
		{
			name:     "equal to current bid",
			item:     withCurrent(testItem(), "150.00"),
			amount:   d("150.00"),
			bidderID: 20,
			expected: model.ErrBelowCurrentBid,
		},
		{
			name:     "equal to starting price with no prior bid",
			item:     testItem(),
			amount:   d("100.00"),
			bidderID: 20,
			expected: model.ErrBelowStartingPrice,
		},
		{
			// starting price stays a floor even when a stale current
			// price sits below it, and the rejection names that floor
			name:     "starting price floors a lower current bid",
			item:     withCurrent(testItem(), "50.00"),
			amount:   d("80.00"),
			bidderID: 20,
			expected: model.ErrBelowStartingPrice,
		},
		{
			name:     "below both floors with a stale current bid",
			item:     withCurrent(testItem(), "50.00"),
			amount:   d("30.00"),
			bidderID: 20,
			expected: model.ErrBelowStartingPrice,
		},
		{
			name:     "too many decimal places",
			item:     testItem(),
			amount:   d("150.001"),
			bidderID: 20,
			expected: model.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.item, tt.sales, tt.amount, tt.bidderID, now)
			check.True(t, errors.Is(err, tt.expected))
		})
	}
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount   string
		expected bool
	}{
		{"150.00", true},
		{"150", true},
		{"0.01", true},
		{"150.5", true},
		{"0", false},
		{"-5.00", false},
		{"150.001", false},
		{"0.009", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			check.Equal(t, tt.expected, ValidAmount(d(tt.amount)))
		})
	}
}

func TestOpenSale(t *testing.T) {
	now := time.Now()

	check.Nil(t, OpenSale(nil, now))
	check.Nil(t, OpenSale([]*model.Sale{{Status: model.SaleActive, BidDueDate: now}}, now)) // deadline is exclusive

	open := openSale(now)
	got := OpenSale([]*model.Sale{{Status: model.SaleDraft, BidDueDate: now.Add(time.Hour)}, open}, now)
	check.Equal(t, open, got)
}
