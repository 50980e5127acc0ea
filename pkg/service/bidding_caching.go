package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/model"
)

const priceKeyPrefix = "price:"

// BiddingCaching rejects obviously low bids from a redis copy of the current
// price before touching postgres. Helpful when a hot item draws many bids.
//
// The cached price is only ever written after a commit, so it can lag behind
// the real price but never run ahead of it. Rejecting amount <= cached is
// therefore always correct; anything else falls through to the slower path.
// Redis errors are logged, not returned.
type BiddingCaching struct {
	Bidding

	Redis *redis.Client
	TTL   time.Duration
}

func (bc *BiddingCaching) PlaceBid(ctx context.Context, req BidRequest) (model.RollupResult, error) {
	key := priceCacheKey(req.ItemID)

	// a derived-amount bid (appraisal inputs, zero amount) can't be
	// pre-filtered, its amount isn't known yet
	if !req.Amount.IsZero() {
		val, err := bc.Redis.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
			// do nothing
		case err != nil:
			slog.Error("can't get item price from redis", slog.Any("error", err))

		default:
			cached, err := decimal.NewFromString(val)
			if err != nil {
				slog.Error("can't parse cached price", slog.String("val", val), slog.Any("error", err))
				break
			}

			if !req.Amount.GreaterThan(cached) {
				return model.RollupResult{}, model.ErrBelowCurrentBid
			}
		}
	}

	res, err := bc.Bidding.PlaceBid(ctx, req)
	if err != nil {
		return res, err
	}

	if err := bc.Redis.Set(ctx, key, res.NewPrice.String(), bc.TTL).Err(); err != nil {
		slog.Error("can't set item price in redis", slog.Any("error", err))
	}

	return res, nil
}

func priceCacheKey(itemID int) string {
	return priceKeyPrefix + strconv.Itoa(itemID)
}
