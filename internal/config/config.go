package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port          string
	DBDSN         string
	CatalogPath   string
	LogFile       string
	TaxRate       decimal.Decimal
	SubmitDelayMS int
}

func Load() Config {
	// .env is optional; absent is fine.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "wickandwax.db" // sqlite file in project root
	}
	catalog := os.Getenv("CATALOG_PATH")
	if catalog == "" {
		catalog = "./data/catalog.json"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./wickandwax.log"
	}

	// Tax defaults to zero; the storefront quotes pre-tax prices unless told otherwise.
	taxRate := decimal.Zero
	if raw := os.Getenv("TAX_RATE"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			taxRate = d
		} else {
			log.Printf("[config] ignoring bad TAX_RATE=%q", raw)
		}
	}

	delay := 1200
	if raw := os.Getenv("SUBMIT_DELAY_MS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			delay = n
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, CatalogPath: catalog, LogFile: logFile, TaxRate: taxRate, SubmitDelayMS: delay}
	log.Printf("[config] PORT=%s DB_DSN=%s CATALOG_PATH=%s LOG_FILE=%s TAX_RATE=%s SUBMIT_DELAY_MS=%d",
		cfg.Port, cfg.DBDSN, cfg.CatalogPath, cfg.LogFile, cfg.TaxRate, cfg.SubmitDelayMS)
	return cfg
}
