package model

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// ItemKind discriminates the category-specific attributes attached to an item.
// Exactly one of Item.Converter / Item.Collectible is set, matching the kind.
type ItemKind string

const (
	KindConverter   ItemKind = "CONVERTER"
	KindCollectible ItemKind = "COLLECTIBLE"
)

type Item struct {
	Base
	UnitID        string              `json:"unit_id"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Kind          ItemKind            `json:"kind"`
	Converter     *ConverterAttrs     `json:"converter,omitempty"`
	Collectible   *CollectibleAttrs   `json:"collectible,omitempty"`
	StartingPrice decimal.Decimal     `json:"starting_price"`
	CurrentPrice  decimal.NullDecimal `json:"current_price"` // unset until the first accepted bid
	PackageID     sql.NullInt64       `json:"package_id,omitempty"`
	SellerID      int                 `json:"seller_id"`
	Active        bool                `json:"active"`
}

// ConverterAttrs holds the scrap-specific fields of a catalytic converter unit.
type ConverterAttrs struct {
	Fullness          Fullness            `json:"fullness"`
	AppraisalCategory string              `json:"appraisal_category,omitempty"`
	AppraisalValue    decimal.NullDecimal `json:"appraisal_value,omitempty"` // $/lb
}

// CollectibleAttrs holds the fields of a generic collectible listing.
type CollectibleAttrs struct {
	Category  string `json:"category"` // Art, Book, Comic, ...
	Condition string `json:"condition,omitempty"`
}

// PriceFloor is the strict lower bound a new bid has to exceed:
// the current bid when one exists, the starting price otherwise.
// Starting price is always a floor, so the max of both is taken.
func (i *Item) PriceFloor() decimal.Decimal {
	if i.CurrentPrice.Valid && i.CurrentPrice.Decimal.GreaterThan(i.StartingPrice) {
		return i.CurrentPrice.Decimal
	}
	return i.StartingPrice
}
