package main

import (
	"flag"

	"go-restaurant-api/pkg/database"
	"go-restaurant-api/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// moneyColumns lists every stored money value that must be rescaled together.
var moneyColumns = []struct {
	table  string
	column string
}{
	{"menu_items", "price"},
	{"menu_items", "old_price"},
	{"orders", "total_price"},
	{"order_items", "unit_price"},
	{"purchase_orders", "subtotal"},
	{"purchase_orders", "tax"},
	{"purchase_orders", "total"},
	{"purchase_order_items", "unit_price"},
	{"purchase_order_items", "line_total"},
}

func main() {
	rate := flag.Float64("rate", 0, "conversion rate to multiply all money columns by")
	rollback := flag.Bool("rollback", false, "divide by the rate instead, undoing a previous run")
	flag.Parse()

	if *rate <= 0 {
		log.Fatal().Msg("a positive -rate is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}
	logger.Init()

	db := database.ConnectDB()

	factor := decimal.NewFromFloat(*rate)
	if *rollback {
		factor = decimal.NewFromInt(1).Div(factor)
		log.Info().Str("factor", factor.String()).Msg("rolling back a previous conversion")
	} else {
		log.Info().Str("factor", factor.String()).Msg("converting money columns")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, mc := range moneyColumns {
			res := tx.Exec(
				"UPDATE "+mc.table+" SET "+mc.column+" = ROUND("+mc.column+" * ?, 2)",
				factor,
			)
			if res.Error != nil {
				return res.Error
			}
			log.Info().
				Str("table", mc.table).
				Str("column", mc.column).
				Int64("rows", res.RowsAffected).
				Msg("column rescaled")
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("conversion failed, nothing was changed")
	}

	log.Info().Msg("conversion complete")
}
