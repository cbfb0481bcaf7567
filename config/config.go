package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds all configuration for the application.
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Firestore FirestoreConfig
	Fees      FeeConfig
	Log       LogConfig
}

type AppConfig struct {
	Environment string
	Port        string
}

// StoreConfig selects the backing database for the local fallback
// store: SQLite by default, Postgres for deployments that share the
// fallback between instances.
type StoreConfig struct {
	Driver     string // "sqlite" or "postgres"
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

// FirestoreConfig points at the remote project. An empty ProjectID
// disables the remote store entirely (pure local mode).
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

// FeeConfig carries the cart fee policy. The defaults are a 2%
// service fee and a 5000 delivery fee waived from a 50000 subtotal.
type FeeConfig struct {
	ServiceFeePercent     decimal.Decimal
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables, after reading
// an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	config := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", "sqlite"),
			SQLitePath: getEnv("STORE_SQLITE_PATH", "menu-service.db"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "menu_service"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		Firestore: FirestoreConfig{
			ProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
			CredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),
		},
		Fees: FeeConfig{
			ServiceFeePercent:     decimalEnv("FEE_SERVICE_PERCENT", "2"),
			DeliveryFee:           decimalEnv("FEE_DELIVERY", "5000"),
			FreeDeliveryThreshold: decimalEnv("FEE_FREE_DELIVERY_FROM", "50000"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// Dialector returns the GORM driver for the configured local store.
func (c *StoreConfig) Dialector() gorm.Dialector {
	if c.Driver == "postgres" {
		return postgres.Open(c.DSN())
	}
	return sqlite.Open(c.SQLitePath)
}

// DSN returns the Postgres connection string.
func (c *StoreConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func decimalEnv(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		value, _ = decimal.NewFromString(defaultValue)
	}
	return value
}
