package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/model"
)

type ItemRepository interface {
	Get(ctx context.Context, id int) (*model.Item, error)
	GetPage(ctx context.Context, filter ItemFilter, num, size int) ([]model.Item, int, error)
}

// ItemFilter narrows item listings. Zero values mean "no constraint".
type ItemFilter struct {
	PackageID int
	Kind      model.ItemKind
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
}

const itemColumns = `
	id, unit_id, title, description, kind,
	fullness, appraisal_category, appraisal_value,
	collectible_category, collectible_condition,
	starting_price, current_price, package_id, seller_id, active, created_at
`

type ItemDatabase struct {
	db      *sql.DB
	getStmt *sql.Stmt
}

func NewItemDatabase(db *sql.DB) (*ItemDatabase, error) {
	// the single-item read runs on every bid placement, keep it prepared
	q := `select ` + itemColumns + ` from items where id = $1`

	getStmt, err := db.Prepare(q)
	if err != nil {
		return nil, fmt.Errorf("can't prepare get item query: %w", err)
	}

	return &ItemDatabase{db, getStmt}, nil
}

func (i *ItemDatabase) Get(ctx context.Context, id int) (*model.Item, error) {
	var item model.Item
	if err := scanItem(i.getStmt.QueryRowContext(ctx, id), &item); err != nil {
		return nil, fmt.Errorf("can't get item %d: %w", id, mapError(err))
	}

	return &item, nil
}

func (i *ItemDatabase) GetPage(ctx context.Context, filter ItemFilter, num, size int) ([]model.Item, int, error) {
	where, args := buildItemFilter(filter)

	var total int
	q := `select count(*) from items` + where
	if err := i.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("can't count items: %w", err)
	}

	offset := (num - 1) * size
	q = `select ` + itemColumns + ` from items` + where +
		` order by created_at desc, id limit $` + strconv.Itoa(len(args)+1) +
		` offset $` + strconv.Itoa(len(args)+2)

	rows, err := i.db.QueryContext(ctx, q, append(args, size, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("can't query items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0, size)
	for rows.Next() {
		var item model.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, 0, fmt.Errorf("can't scan item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over items: %w", err)
	}

	return items, total, nil
}

func buildItemFilter(f ItemFilter) (where string, args []any) {
	conds := []string{"active"}

	if f.PackageID != 0 {
		args = append(args, f.PackageID)
		conds = append(conds, fmt.Sprintf("package_id = $%d", len(args)))
	}
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if !f.MinPrice.IsZero() {
		args = append(args, f.MinPrice)
		conds = append(conds, fmt.Sprintf("current_price >= $%d", len(args)))
	}
	if !f.MaxPrice.IsZero() {
		args = append(args, f.MaxPrice)
		conds = append(conds, fmt.Sprintf("current_price <= $%d", len(args)))
	}

	return " where " + strings.Join(conds, " and "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, item *model.Item) error {
	var (
		description              sql.NullString
		fullness, appraisalCat   sql.NullString
		appraisalVal             decimal.NullDecimal
		collectibleCat, condName sql.NullString
	)

	err := row.Scan(
		&item.ID, &item.UnitID, &item.Title, &description, &item.Kind,
		&fullness, &appraisalCat, &appraisalVal,
		&collectibleCat, &condName,
		&item.StartingPrice, &item.CurrentPrice, &item.PackageID, &item.SellerID, &item.Active, &item.CreatedAt,
	)
	if err != nil {
		return err
	}

	item.Description = description.String

	switch item.Kind {
	case model.KindConverter:
		item.Converter = &model.ConverterAttrs{
			Fullness:          model.Fullness(fullness.String),
			AppraisalCategory: appraisalCat.String,
			AppraisalValue:    appraisalVal,
		}
	case model.KindCollectible:
		item.Collectible = &model.CollectibleAttrs{
			Category:  collectibleCat.String,
			Condition: condName.String,
		}
	}

	return nil
}
