package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
	"github.com/smashscrap/marketplace/pkg/service"
)

type stubBidding struct {
	listedItemID int
}

func (s *stubBidding) PlaceBid(context.Context, service.BidRequest) (model.RollupResult, error) {
	return model.RollupResult{}, nil
}

func (s *stubBidding) ListBids(_ context.Context, itemID int) ([]model.Bid, error) {
	s.listedItemID = itemID
	return []model.Bid{{Base: model.Base{ID: 1}, ItemID: itemID}}, nil
}

type stubItems struct{}

func (stubItems) ListPage(context.Context, database.ItemFilter, int, int) ([]model.Item, int, error) {
	return nil, 0, nil
}
func (stubItems) Get(context.Context, int) (*model.Item, error) { return nil, database.ErrNotFound }

type stubPackages struct{}

func (stubPackages) ListPage(context.Context, int, int) ([]model.Package, int, error) {
	return nil, 0, nil
}

type stubSales struct{}

func (stubSales) ListPage(context.Context, model.SaleStatus, int, int) ([]model.Sale, int, error) {
	return nil, 0, nil
}

func TestRoutes(t *testing.T) {
	bidding := &stubBidding{}
	srv, err := New(":0", bidding, stubItems{}, stubPackages{}, stubSales{})
	assert.NoError(t, err)

	tests := []struct {
		path     string
		expected int
	}{
		{"/items/bids?item_id=7", http.StatusOK},
		{"/items", http.StatusOK},
		{"/packages", http.StatusOK},
		{"/sales", http.StatusOK},
		{"/bids", http.StatusNotFound}, // listing lives under /items/bids
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			check.Equal(t, tt.expected, rec.Code)
		})
	}

	check.Equal(t, 7, bidding.listedItemID)
}
