package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/appraisal"
	"github.com/smashscrap/marketplace/pkg/bidding"
	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
)

// BidRequest carries one bid placement. Amount may be zero when appraisal
// inputs are present: it is then derived from the resolved appraisal value.
type BidRequest struct {
	ItemID int
	UserID int
	Amount decimal.Decimal

	AppraisalCategory string
	Fullness          model.Fullness
}

type Bidding interface {
	PlaceBid(ctx context.Context, req BidRequest) (model.RollupResult, error)
	ListBids(ctx context.Context, itemID int) ([]model.Bid, error)
}

// BiddingGeneric contains the core placement logic. Wrap it with the
// decorators in bidding_*.go for logging, rate limits and the price cache.
type BiddingGeneric struct {
	Items    database.ItemRepository
	Sales    database.SaleRepository
	Bids     database.BidRepository
	Rollup   database.RollupRepository
	Attempts database.AttemptRepository

	Resolver  *appraisal.Resolver
	Publisher bidding.Publisher
}

func (bg *BiddingGeneric) PlaceBid(ctx context.Context, req BidRequest) (res model.RollupResult, err error) {
	defer func() {
		if !shouldSaveAttempt(err) {
			return
		}

		attempt := model.BidAttempt{
			Base:   model.Base{CreatedAt: time.Now()},
			UserID: req.UserID,
			ItemID: req.ItemID,
			Amount: req.Amount,
		}

		if err == nil {
			attempt.BidID = res.BidID
		} else {
			attempt.Error = err.Error()
		}

		if err := bg.Attempts.Add(ctx, attempt); err != nil {
			slog.Error("can't save bid attempt to DB", slog.Any("error", err))
		}
	}()

	item, err := bg.Items.Get(ctx, req.ItemID)
	if err != nil {
		return model.RollupResult{}, err
	}

	sales, err := bg.Sales.ListForItem(ctx, req.ItemID)
	if err != nil {
		return model.RollupResult{}, err
	}

	bid := model.Bid{
		UserID:    req.UserID,
		ItemID:    req.ItemID,
		PackageID: item.PackageID,
		Amount:    req.Amount,
	}

	if req.AppraisalCategory != "" {
		value, err := bg.Resolver.Resolve(ctx, req.AppraisalCategory, req.Fullness)
		if err != nil {
			return model.RollupResult{}, err
		}

		bid.AppraisalCategory = req.AppraisalCategory
		bid.AppraisalValue = decimal.NullDecimal{Decimal: value, Valid: true}
		bid.FullnessApplied = req.Fullness

		if bid.Amount.IsZero() {
			bid.Amount = value.Round(2)
			req.Amount = bid.Amount
		}
	}

	now := time.Now()
	if err := bidding.Validate(item, sales, bid.Amount, req.UserID, now); err != nil {
		return model.RollupResult{}, err
	}

	// winning-bid semantics apply only inside a sale; a standalone listing
	// keeps its bids ACTIVE
	bid.Status = model.BidActive
	if open := bidding.OpenSale(sales, now); open != nil {
		bid.Status = model.BidWinning
		bid.SaleID.Int64, bid.SaleID.Valid = int64(open.ID), true
	}

	res, err = bg.Rollup.Apply(ctx, &bid)
	if err != nil {
		return model.RollupResult{}, err
	}

	ev := bidding.NewRollupEvent(res.BidID, res.ItemID, res.PackageID, res.SaleIDs(), res.NewPrice, res.PreviousPrice)
	if err := bg.Publisher.Publish(ctx, ev); err != nil {
		// the aggregates are already committed, losing the trigger only
		// delays downstream projections
		slog.Error("can't publish rollup event", slog.Any("error", err))
	}

	return res, nil
}

func (bg *BiddingGeneric) ListBids(ctx context.Context, itemID int) ([]model.Bid, error) {
	return bg.Bids.ListForItem(ctx, itemID)
}

// shouldSaveAttempt keeps infra failures out of the audit trail: only
// outcomes the bidder caused get recorded.
func shouldSaveAttempt(err error) bool {
	return err == nil || errOneOf(err,
		model.ErrSelfBid,
		model.ErrBiddingClosed,
		model.ErrBelowCurrentBid,
		model.ErrBelowStartingPrice,
		model.ErrInvalidAmount,
	)
}

func errOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
