package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rollupScript(now time.Time, startingPrice string, currentPrice driver.Value) func(string) ([]string, [][]driver.Value, error) {
	return func(q string) ([]string, [][]driver.Value, error) {
		switch {
		case strings.Contains(q, "from items") && strings.Contains(q, "for update"):
			return []string{"starting_price", "current_price", "package_id", "active"},
				[][]driver.Value{{startingPrice, currentPrice, int64(7), true}}, nil
		case strings.Contains(q, "insert into bids"):
			return []string{"id", "created_at"},
				[][]driver.Value{{int64(1), now}}, nil
		case strings.Contains(q, "from packages") && strings.Contains(q, "for update"):
			return []string{"id"}, [][]driver.Value{{int64(7)}}, nil
		case strings.Contains(q, "update packages"):
			return []string{"current_bid"}, [][]driver.Value{{"150.00"}}, nil
		case strings.Contains(q, "from sales") && strings.Contains(q, "for update"):
			return []string{"id"}, [][]driver.Value{{int64(3)}}, nil
		case strings.Contains(q, "update sales"):
			return []string{"id", "current_bid"}, [][]driver.Value{{int64(3), "150.00"}}, nil
		}
		return nil, nil, fmt.Errorf("unexpected query: %s", q)
	}
}

// A recompute statement that waits on an ancestor row lock keeps its original
// snapshot under read committed and can miss a sibling's committed price, so
// the locks have to land in their own statements first. The recorded SQL
// sequence pins that ordering down.
func TestApplyLocksAncestorsBeforeRecompute(t *testing.T) {
	now := time.Now()
	db, script := openScriptDB(rollupScript(now, "100.00", nil))
	defer db.Close()

	rd := &RollupDatabase{DB: db}
	bid := &model.Bid{UserID: 20, ItemID: 1, Amount: dec("150.00"), Status: model.BidActive}

	res, err := rd.Apply(context.Background(), bid)
	assert.NoError(t, err)

	check.Equal(t, 1, res.BidID)
	check.Equal(t, 7, res.PackageID)
	check.True(t, res.NewPrice.Equal(dec("150.00")))
	check.False(t, res.PreviousPrice.Valid)
	check.True(t, res.PackageTotal.Equal(dec("150.00")))
	check.True(t, res.SaleTotals[3].Equal(dec("150.00")))

	queries := script.executed()

	packageLock := indexMatching(queries, "from packages", "for update")
	packageRecompute := indexMatching(queries, "update packages")
	saleLock := indexMatching(queries, "from sales", "for update")
	saleRecompute := indexMatching(queries, "update sales")

	assert.True(t, packageLock >= 0)
	assert.True(t, packageRecompute >= 0)
	assert.True(t, saleLock >= 0)
	assert.True(t, saleRecompute >= 0)

	check.True(t, packageLock < packageRecompute)
	check.True(t, saleLock < saleRecompute)
	// package before sales, so concurrent writers queue in the same order
	check.True(t, packageLock < saleLock)

	check.Equal(t, "commit", queries[len(queries)-1])
}

func TestApplyFloorReasons(t *testing.T) {
	tests := []struct {
		name         string
		currentPrice driver.Value
		amount       string
		expected     error
	}{
		{
			name:         "below current bid",
			currentPrice: "150.00",
			amount:       "120.00",
			expected:     model.ErrBelowCurrentBid,
		},
		{
			name:         "below starting price with no prior bid",
			currentPrice: nil,
			amount:       "80.00",
			expected:     model.ErrBelowStartingPrice,
		},
		{
			// the starting price is the binding floor here, and the
			// rejection says so even though a current bid exists
			name:         "starting price floors a stale lower current bid",
			currentPrice: "50.00",
			amount:       "80.00",
			expected:     model.ErrBelowStartingPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, script := openScriptDB(rollupScript(time.Now(), "100.00", tt.currentPrice))
			defer db.Close()

			rd := &RollupDatabase{DB: db}
			bid := &model.Bid{UserID: 20, ItemID: 1, Amount: dec(tt.amount), Status: model.BidActive}

			_, err := rd.Apply(context.Background(), bid)
			check.True(t, errors.Is(err, tt.expected))

			queries := script.executed()
			check.Equal(t, -1, indexMatching(queries, "insert into bids"))
			check.Equal(t, "rollback", queries[len(queries)-1])
		})
	}
}
