package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smashscrap/marketplace/pkg/model"
)

type AppraisalCategoryDatabase struct {
	DB *sql.DB
}

func (ad *AppraisalCategoryDatabase) GetByCode(ctx context.Context, code string) (model.AppraisalCategory, error) {
	const q = `
		select id, code, name, base_value, description, active, sort_order, created_at
		from appraisal_categories
		where code = $1 and active
	`

	var c model.AppraisalCategory
	if err := scanAppraisalCategory(ad.DB.QueryRowContext(ctx, q, code), &c); err != nil {
		return model.AppraisalCategory{}, fmt.Errorf("can't get appraisal category %q: %w", code, mapError(err))
	}

	return c, nil
}

func (ad *AppraisalCategoryDatabase) ListActive(ctx context.Context) ([]model.AppraisalCategory, error) {
	const q = `
		select id, code, name, base_value, description, active, sort_order, created_at
		from appraisal_categories
		where active
		order by sort_order, name
	`

	rows, err := ad.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("can't query appraisal categories: %w", err)
	}
	defer rows.Close()

	var cats []model.AppraisalCategory
	for rows.Next() {
		var c model.AppraisalCategory
		if err := scanAppraisalCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("can't scan appraisal category: %w", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over appraisal categories: %w", err)
	}

	return cats, nil
}

func scanAppraisalCategory(row rowScanner, c *model.AppraisalCategory) error {
	var description sql.NullString

	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.BaseValue, &description, &c.Active, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return err
	}

	c.Description = description.String
	return nil
}
