package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/smashscrap/marketplace/pkg/model"
)

var itemCols = []string{
	"id", "unit_id", "title", "description", "kind",
	"fullness", "appraisal_category", "appraisal_value",
	"collectible_category", "collectible_condition",
	"starting_price", "current_price", "package_id", "seller_id", "active", "created_at",
}

// description is nullable in the schema, the scan has to survive a null.
func TestItemGetNullDescription(t *testing.T) {
	created := time.Now()
	db, _ := openScriptDB(func(q string) ([]string, [][]driver.Value, error) {
		if strings.Contains(q, "from items where id") {
			return itemCols, [][]driver.Value{{
				int64(1), "U-100", "Honda OEM medium", nil, "CONVERTER",
				"FULL", "EXOTIC", "5.00",
				nil, nil,
				"100.00", nil, int64(7), int64(10), true, created,
			}}, nil
		}
		return nil, nil, fmt.Errorf("unexpected query: %s", q)
	})
	defer db.Close()

	items, err := NewItemDatabase(db)
	assert.NoError(t, err)

	item, err := items.Get(context.Background(), 1)
	assert.NoError(t, err)

	check.Equal(t, "Honda OEM medium", item.Title)
	check.Equal(t, "", item.Description)
	check.Equal(t, model.KindConverter, item.Kind)
	assert.NotNil(t, item.Converter)
	check.Equal(t, model.FullnessFull, item.Converter.Fullness)
	check.True(t, item.Converter.AppraisalValue.Decimal.Equal(dec("5.00")))
	check.True(t, item.StartingPrice.Equal(dec("100.00")))
	check.False(t, item.CurrentPrice.Valid)
}
