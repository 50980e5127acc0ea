package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/model"
)

// RollupRepository applies an accepted bid and propagates its effect up the
// item -> package -> sale hierarchy as one atomic unit.
type RollupRepository interface {
	Apply(ctx context.Context, bid *model.Bid) (model.RollupResult, error)
}

type RollupDatabase struct {
	DB *sql.DB
}

// Apply performs the whole placement in a single transaction:
//
//  1. lock the item row and re-check the price floor under the lock
//  2. write the new current price
//  3. insert the bid, flip the previously winning bid to OUTBID
//  4. lock the package row, then recompute its aggregate as the full sum
//     of member prices
//  5. lock the containing sale rows, then recompute their aggregates
//
// The floor re-check under the row lock is what serializes concurrent bids
// per item: the validator's earlier check ran against a snapshot and two
// racing bids may both have passed it. The loser of the race fails here on
// the floor check and no partial write survives the rollback.
//
// The ancestor locks are taken in their own statements, before the
// recompute statements. Under read committed an update blocked on the
// package row would re-evaluate only the packages row after the holder
// commits, while its sum subquery kept the statement's original snapshot
// and missed a sibling item's committed price. Locking first moves the
// wait ahead of the recompute, whose fresh statement snapshot then sees
// every committed member price. Package before sales keeps the lock order
// identical across writers.
//
// Aggregates are recomputed in full rather than patched by delta, so a
// recompute is idempotent and can't drift.
func (rd *RollupDatabase) Apply(ctx context.Context, bid *model.Bid) (res model.RollupResult, err error) {
	err = WithTx(ctx, rd.DB, func(tx *sql.Tx) error {
		const lockItem = `
			select starting_price, current_price, package_id, active
			from items
			where id = $1
			for update
		`

		var (
			startingPrice decimal.Decimal
			currentPrice  decimal.NullDecimal
			packageID     sql.NullInt64
			active        bool
		)

		err := tx.QueryRowContext(ctx, lockItem, bid.ItemID).Scan(&startingPrice, &currentPrice, &packageID, &active)
		if err != nil {
			return fmt.Errorf("can't lock item: %w", mapError(err))
		}

		if !active {
			return model.ErrBiddingClosed
		}

		floor := startingPrice
		if currentPrice.Valid && currentPrice.Decimal.GreaterThan(floor) {
			floor = currentPrice.Decimal
		}
		if !bid.Amount.GreaterThan(floor) {
			if currentPrice.Valid && floor.Equal(currentPrice.Decimal) {
				return model.ErrBelowCurrentBid
			}
			return model.ErrBelowStartingPrice
		}

		const updatePrice = `
			update items set current_price = $1, updated_at = now() where id = $2
		`
		if _, err := tx.ExecContext(ctx, updatePrice, bid.Amount, bid.ItemID); err != nil {
			return fmt.Errorf("can't update item price: %w", err)
		}

		const insertBid = `
			insert into bids (
				user_id, item_id, package_id, sale_id, amount, status,
				appraisal_category, appraisal_value, fullness_applied, created_at
			)
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			returning id, created_at
		`
		err = tx.QueryRowContext(ctx, insertBid,
			bid.UserID, bid.ItemID, bid.PackageID, bid.SaleID, bid.Amount, bid.Status,
			nullString(bid.AppraisalCategory), bid.AppraisalValue, nullString(string(bid.FullnessApplied)),
		).Scan(&bid.ID, &bid.CreatedAt)
		if err != nil {
			return fmt.Errorf("can't insert bid: %w", err)
		}

		const outbid = `
			update bids set status = $1
			where item_id = $2 and status = $3 and id <> $4
		`
		if _, err := tx.ExecContext(ctx, outbid, model.BidOutbid, bid.ItemID, model.BidWinning, bid.ID); err != nil {
			return fmt.Errorf("can't mark outbid bids: %w", err)
		}

		res = model.RollupResult{
			BidID:         bid.ID,
			ItemID:        bid.ItemID,
			NewPrice:      bid.Amount,
			PreviousPrice: currentPrice,
		}

		if !packageID.Valid {
			return nil
		}
		res.PackageID = int(packageID.Int64)

		const lockPackage = `
			select id from packages where id = $1 for update
		`
		var lockedPackage int
		if err := tx.QueryRowContext(ctx, lockPackage, res.PackageID).Scan(&lockedPackage); err != nil {
			return fmt.Errorf("can't lock package: %w", mapError(err))
		}

		const recomputePackage = `
			update packages
			set current_bid = coalesce(
				(select sum(current_price) from items where package_id = packages.id and current_price is not null),
				0
			), updated_at = now()
			where id = $1
			returning current_bid
		`
		if err := tx.QueryRowContext(ctx, recomputePackage, res.PackageID).Scan(&res.PackageTotal); err != nil {
			return fmt.Errorf("can't recompute package aggregate: %w", err)
		}

		const lockSales = `
			select id from sales
			where id in (select sale_id from sale_packages where package_id = $1)
			order by id
			for update
		`
		saleRows, err := tx.QueryContext(ctx, lockSales, res.PackageID)
		if err != nil {
			return fmt.Errorf("can't lock sales: %w", err)
		}
		for saleRows.Next() {
			var saleID int
			if err := saleRows.Scan(&saleID); err != nil {
				saleRows.Close()
				return fmt.Errorf("can't scan locked sale: %w", err)
			}
		}
		if err := saleRows.Err(); err != nil {
			saleRows.Close()
			return fmt.Errorf("can't lock sales: %w", err)
		}
		saleRows.Close()

		const recomputeSales = `
			update sales
			set current_bid = coalesce(
				(
					select sum(p.current_bid)
					from packages p
					join sale_packages sp on sp.package_id = p.id
					where sp.sale_id = sales.id
				),
				0
			), updated_at = now()
			where id in (select sale_id from sale_packages where package_id = $1)
			returning id, current_bid
		`
		rows, err := tx.QueryContext(ctx, recomputeSales, res.PackageID)
		if err != nil {
			return fmt.Errorf("can't recompute sale aggregates: %w", err)
		}
		defer rows.Close()

		res.SaleTotals = make(map[int]decimal.Decimal)
		for rows.Next() {
			var (
				saleID int
				total  decimal.Decimal
			)
			if err := rows.Scan(&saleID, &total); err != nil {
				return fmt.Errorf("can't scan sale aggregate: %w", err)
			}

			res.SaleTotals[saleID] = total
		}

		return rows.Err()
	})
	if err != nil {
		return model.RollupResult{}, err
	}

	return res, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
