package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/smashscrap/marketplace/pkg/model"
)

type BiddingLogging struct {
	Bidding
}

func (bl *BiddingLogging) PlaceBid(ctx context.Context, req BidRequest) (res model.RollupResult, err error) {
	defer func(t0 time.Time) {
		log := slog.With(
			slog.Int("user_id", req.UserID),
			slog.Int("item_id", req.ItemID),
			slog.String("amount", req.Amount.String()),
			slog.String("delay", time.Since(t0).String()),
		)

		if err != nil {
			log.Error("failed to place bid", slog.Any("error", err))
		} else {
			log.Debug("bid placed", slog.Int("bid_id", res.BidID))
		}
	}(time.Now())

	return bl.Bidding.PlaceBid(ctx, req)
}
