package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smashscrap/marketplace/pkg/model"
)

type BidRepository interface {
	ListForItem(ctx context.Context, itemID int) ([]model.Bid, error)
}

type BidDatabase struct {
	DB *sql.DB
}

func (bd *BidDatabase) ListForItem(ctx context.Context, itemID int) ([]model.Bid, error) {
	const q = `
		select id, user_id, item_id, package_id, sale_id, amount, status,
		       appraisal_category, appraisal_value, fullness_applied, created_at
		from bids
		where item_id = $1
		order by amount desc, created_at desc
	`

	rows, err := bd.DB.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, fmt.Errorf("can't query bids: %w", err)
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var (
			b                 model.Bid
			appraisalCategory sql.NullString
			fullnessApplied   sql.NullString
		)
		err := rows.Scan(
			&b.ID, &b.UserID, &b.ItemID, &b.PackageID, &b.SaleID, &b.Amount, &b.Status,
			&appraisalCategory, &b.AppraisalValue, &fullnessApplied, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("can't scan bid: %w", err)
		}

		b.AppraisalCategory = appraisalCategory.String
		b.FullnessApplied = model.Fullness(fullnessApplied.String)

		bids = append(bids, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over bids: %w", err)
	}

	return bids, nil
}
