package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/config"
	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
)

var cfg = config.New()

var ErrLotExists = errors.New("lot exists")

// preset appraisal categories, $/lb base values
var appraisalCategories = []struct {
	code  string
	name  string
	value string
}{
	{"EXOTIC", "Exotic", "5.00"},
	{"XL_FIN", "XL Fin", "3.75"},
	{"GM_BALE", "GM Bale", "2.40"},
	{"DIESEL", "Diesel", "1.10"},
	{"SMALL_FOREIGN", "Small Foreign", "1.85"},
	{"AFTERMARKET", "Aftermarket", "0.25"},
}

var fullnessLevels = []model.Fullness{
	model.FullnessFull,
	model.FullnessThreeQuarter,
	model.FullnessHalf,
	model.FullnessOneQuarter,
	model.FullnessEmpty,
}

func main() {
	t0 := time.Now()
	defer func() { log.Printf("Seed data generated. Elapsed: %s", time.Since(t0)) }()

	db, closeDB, err := database.New(cfg.PostgresAddr, cfg.PostgresDB, cfg.PostgresUser, cfg.PostgresPassword)
	if err != nil {
		log.Fatalf("### Can't init database: %v", err)
	}
	defer closeDB()

	if err := seedCategories(db); err != nil {
		log.Fatalf("### Can't seed appraisal categories: %v", err)
	}

	if err := generate(db); err != nil {
		if errors.Is(err, ErrLotExists) {
			log.Printf("Lot for today already exists, nothing to do")
			return
		}
		log.Fatalf("### Can't generate seed data: %v", err)
	}
}

func seedCategories(db *sql.DB) error {
	const q = `
		insert into appraisal_categories (code, name, base_value, active, sort_order, created_at)
		values ($1, $2, $3, true, $4, now())
		on conflict (code) do update set base_value = excluded.base_value
	`

	for i, c := range appraisalCategories {
		if _, err := db.Exec(q, c.code, c.name, c.value, i); err != nil {
			return fmt.Errorf("can't upsert category %s: %w", c.code, err)
		}
	}

	return nil
}

func generate(db *sql.DB) error {
	now := time.Now()
	lotNumber := fmt.Sprintf("LOT-%s", now.Format("2006-01-02"))

	return database.WithTx(context.Background(), db, func(tx *sql.Tx) error {
		const lotExists = `select exists (select 1 from sales where lot_number = $1) as exists`

		var exists bool
		if err := tx.QueryRow(lotExists, lotNumber).Scan(&exists); err != nil {
			return fmt.Errorf("can't check if lot exists: %w", err)
		}
		if exists {
			return ErrLotExists
		}

		unitCount := cfg.PackageCount * cfg.ItemsPerPkg

		const insertSale = `
			insert into sales (
				lot_number, title, description, zip_code, unit_count, total_weight,
				seller_type, status, bid_due_date, current_bid, seller_id, published_at, created_at
			)
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11, $11)
			returning id
		`

		var saleID int
		err := tx.QueryRow(insertSale,
			lotNumber, "Scrap lot "+lotNumber, "Generated test lot", "48201",
			unitCount, decimal.NewFromInt(int64(unitCount)).Mul(decimal.NewFromFloat(7.5)),
			model.SellerGenerator, model.SaleActive, now.Add(cfg.BidWindow), cfg.SellerID, now,
		).Scan(&saleID)
		if err != nil {
			return fmt.Errorf("can't insert sale: %w", err)
		}

		itemStmt, err := tx.Prepare(`
			insert into items (
				unit_id, title, description, kind, fullness, appraisal_category, appraisal_value,
				starting_price, package_id, seller_id, active, created_at
			)
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, $11)
		`)
		if err != nil {
			return fmt.Errorf("can't prepare stmt for inserting item: %w", err)
		}

		for p := 0; p < cfg.PackageCount; p++ {
			const insertPackage = `
				insert into packages (owner_id, name, status, final_weight, current_bid, created_at)
				values ($1, $2, $3, $4, 0, $5)
				returning id
			`

			var pkgID int
			err := tx.QueryRow(insertPackage,
				cfg.SellerID, fmt.Sprintf("%s batch %d", now.Format("January"), p+1),
				model.PackageInSale, decimal.NewFromInt(int64(cfg.ItemsPerPkg)*7), now,
			).Scan(&pkgID)
			if err != nil {
				return fmt.Errorf("can't insert package: %w", err)
			}

			if _, err := tx.Exec(`insert into sale_packages (sale_id, package_id) values ($1, $2)`, saleID, pkgID); err != nil {
				return fmt.Errorf("can't link package to sale: %w", err)
			}

			for j := 0; j < cfg.ItemsPerPkg; j++ {
				cat := appraisalCategories[rand.Intn(len(appraisalCategories))]
				fullness := fullnessLevels[rand.Intn(len(fullnessLevels))]
				unitID := fmt.Sprintf("%s-P%d-U%03d", lotNumber, p+1, j+1)
				baseValue, _ := decimal.NewFromString(cat.value)
				starting := baseValue.Mul(fullness.Multiplier()).Mul(decimal.NewFromInt(7)).Round(2)
				if starting.IsZero() {
					starting = decimal.NewFromFloat(1.00)
				}

				_, err := itemStmt.Exec(
					unitID, cat.name+" converter", "Generated unit", model.KindConverter,
					fullness, cat.code, baseValue, starting, pkgID, cfg.SellerID, now,
				)
				if err != nil {
					return fmt.Errorf("can't insert item: %w", err)
				}
			}

			log.Printf("Package #%d seeded with %d items\n", p+1, cfg.ItemsPerPkg)
		}

		log.Printf("Sale %s added\n", lotNumber)
		return nil
	})
}
