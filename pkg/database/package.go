package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smashscrap/marketplace/pkg/model"
)

type PackageRepository interface {
	Get(ctx context.Context, id int) (*model.Package, error)
	GetPage(ctx context.Context, num, size int) ([]model.Package, int, error)
}

type PackageDatabase struct {
	DB *sql.DB
}

const packageColumns = `
	p.id, p.owner_id, p.name, p.status, p.final_weight, p.current_bid, p.notes, p.created_at,
	(select count(*) from items i where i.package_id = p.id) as item_count
`

func (pd *PackageDatabase) Get(ctx context.Context, id int) (*model.Package, error) {
	q := `select ` + packageColumns + ` from packages p where p.id = $1`

	var p model.Package
	if err := scanPackage(pd.DB.QueryRowContext(ctx, q, id), &p); err != nil {
		return nil, fmt.Errorf("can't get package %d: %w", id, mapError(err))
	}

	return &p, nil
}

func (pd *PackageDatabase) GetPage(ctx context.Context, num, size int) ([]model.Package, int, error) {
	var total int
	if err := pd.DB.QueryRowContext(ctx, `select count(*) from packages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("can't count packages: %w", err)
	}

	offset := (num - 1) * size
	q := `select ` + packageColumns + ` from packages p order by p.created_at desc limit $1 offset $2`

	rows, err := pd.DB.QueryContext(ctx, q, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("can't query packages: %w", err)
	}
	defer rows.Close()

	pkgs := make([]model.Package, 0, size)
	for rows.Next() {
		var p model.Package
		if err := scanPackage(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("can't scan package: %w", err)
		}

		pkgs = append(pkgs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over packages: %w", err)
	}

	return pkgs, total, nil
}

func scanPackage(row rowScanner, p *model.Package) error {
	var notes sql.NullString

	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Status, &p.FinalWeight, &p.CurrentBid, &notes, &p.CreatedAt,
		&p.ItemCount,
	)
	if err != nil {
		return err
	}

	p.Notes = notes.String
	return nil
}
