package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	LabelPrint   LabelPrintConfig
	Sheets       SheetsConfig
	Snapshot     SnapshotConfig
	Transactions TransactionsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// LabelPrintConfig contains credentials for the external label render service.
// An empty BaseURL disables label printing.
type LabelPrintConfig struct {
	BaseURL string
	APIKey  string
}

// SheetsConfig contains configuration for the spreadsheet export of the
// consolidated stock report. Empty values disable the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// SnapshotConfig holds scheduler-related settings for the daily stock snapshot.
type SnapshotConfig struct {
	CronSchedule string
	Timezone     string
}

// TransactionsConfig holds tunable business rules for the transaction engine.
type TransactionsConfig struct {
	// StrictBulkOccupancy rejects bulk entries onto occupied capacity-counted
	// coordinates instead of stacking. Off by default.
	StrictBulkOccupancy bool
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "slotkeeper"),
		},
		LabelPrint: LabelPrintConfig{
			BaseURL: os.Getenv("LABEL_PRINT_BASE_URL"),
			APIKey:  os.Getenv("LABEL_PRINT_API_KEY"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 22 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Transactions: TransactionsConfig{
			StrictBulkOccupancy: os.Getenv("STRICT_BULK_OCCUPANCY") == "true",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.LabelPrint.BaseURL != "" && c.LabelPrint.APIKey == "" {
		return errors.New("LABEL_PRINT_API_KEY must be provided when LABEL_PRINT_BASE_URL is set")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Snapshot.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
