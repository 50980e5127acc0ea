package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smashscrap/marketplace/pkg/model"
)

type SaleRepository interface {
	Get(ctx context.Context, id int) (*model.Sale, error)
	GetPage(ctx context.Context, status model.SaleStatus, num, size int) ([]model.Sale, int, error)
	// ListForItem returns every sale whose lot contains the item's package.
	// Empty when the item is unpackaged or the package is in no sale yet.
	ListForItem(ctx context.Context, itemID int) ([]*model.Sale, error)
}

type SaleDatabase struct {
	DB *sql.DB
}

const saleColumns = `
	id, lot_number, title, description, zip_code, pickup_instructions,
	unit_count, total_weight, seller_type, status, bid_due_date,
	current_bid, seller_id, published_at, created_at
`

func (sd *SaleDatabase) Get(ctx context.Context, id int) (*model.Sale, error) {
	q := `select ` + saleColumns + ` from sales where id = $1`

	var s model.Sale
	if err := scanSale(sd.DB.QueryRowContext(ctx, q, id), &s); err != nil {
		return nil, fmt.Errorf("can't get sale %d: %w", id, mapError(err))
	}

	return &s, nil
}

func (sd *SaleDatabase) GetPage(ctx context.Context, status model.SaleStatus, num, size int) ([]model.Sale, int, error) {
	where, args := "", []any{}
	if status != "" {
		where = ` where status = $1`
		args = append(args, status)
	}

	var total int
	if err := sd.DB.QueryRowContext(ctx, `select count(*) from sales`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("can't count sales: %w", err)
	}

	offset := (num - 1) * size
	q := fmt.Sprintf(
		`select %s from sales%s order by created_at desc limit $%d offset $%d`,
		saleColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := sd.DB.QueryContext(ctx, q, append(args, size, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("can't query sales: %w", err)
	}
	defer rows.Close()

	ss := make([]model.Sale, 0, size)
	for rows.Next() {
		var s model.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, 0, fmt.Errorf("can't scan sale: %w", err)
		}

		ss = append(ss, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over sales: %w", err)
	}

	return ss, total, nil
}

func (sd *SaleDatabase) ListForItem(ctx context.Context, itemID int) ([]*model.Sale, error) {
	q := `
		select ` + saleColumns + `
		from sales
		where id in (
			select sp.sale_id
			from sale_packages sp
			join items i on i.package_id = sp.package_id
			where i.id = $1
		)
		order by bid_due_date
	`

	rows, err := sd.DB.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, fmt.Errorf("can't query sales for item: %w", err)
	}
	defer rows.Close()

	var ss []*model.Sale
	for rows.Next() {
		var s model.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, fmt.Errorf("can't scan sale: %w", err)
		}

		ss = append(ss, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over sales: %w", err)
	}

	return ss, nil
}

func scanSale(row rowScanner, s *model.Sale) error {
	var (
		description, pickup sql.NullString
		publishedAt         sql.NullTime
	)

	err := row.Scan(
		&s.ID, &s.LotNumber, &s.Title, &description, &s.ZipCode, &pickup,
		&s.UnitCount, &s.TotalWeight, &s.SellerType, &s.Status, &s.BidDueDate,
		&s.CurrentBid, &s.SellerID, &publishedAt, &s.CreatedAt,
	)
	if err != nil {
		return err
	}

	s.Description = description.String
	s.PickupInstructions = pickup.String
	s.PublishedAt = publishedAt.Time

	return nil
}
