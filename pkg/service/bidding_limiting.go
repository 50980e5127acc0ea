package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smashscrap/marketplace/pkg/limiter"
	"github.com/smashscrap/marketplace/pkg/model"
)

var ErrLimitExceeded = errors.New("user exceeded their bid limit")

// BiddingLimiting caps how many bids a user may place per window.
//
// If the limit check itself fails, the behavior depends on FailOpen. If set,
// the current request is allowed. Otherwise an error is returned.
type BiddingLimiting struct {
	Bidding

	Limiter  *limiter.Limiter
	FailOpen bool
}

func (bl *BiddingLimiting) PlaceBid(ctx context.Context, req BidRequest) (model.RollupResult, error) {
	exceeded, err := bl.Limiter.LimitExceeded(ctx, req.UserID)
	if err != nil {
		if !bl.FailOpen {
			return model.RollupResult{}, fmt.Errorf("can't check if limit exceeded: %w", err)
		}

		slog.Error("can't check if limit exceeded", slog.Any("error", err))
	}

	if exceeded {
		return model.RollupResult{}, ErrLimitExceeded
	}

	res, err := bl.Bidding.PlaceBid(ctx, req)
	if err != nil {
		return res, err
	}

	if _, err := bl.Limiter.Increment(ctx, req.UserID); err != nil {
		slog.Error("can't increment user's bid count", slog.Any("error", err))
	}

	return res, nil
}
