package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port string

	JWTSecret string

	GoEnv    string // dev/prod
	LogLevel string

	RedisAddr string

	TaxOracleURL    string
	TaxOracleAPIKey string

	PaymentURL    string
	PaymentAPIKey string

	// fixed per-order fees
	FuelSurcharge   decimal.Decimal
	ExpediteFee     decimal.Decimal
	NoPostSurcharge decimal.Decimal
}

func Load() (Config, error) {
	fuel, err := decimalEnv("FUEL_SURCHARGE", "2.47")
	if err != nil {
		return Config{}, err
	}
	expedite, err := decimalEnv("EXPEDITE_FEE", "25.00")
	if err != nil {
		return Config{}, err
	}
	noPost, err := decimalEnv("NO_POST_SURCHARGE", "10.00")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),

		TaxOracleURL:    getenv("TAX_ORACLE_URL", "https://api.stripe.com"),
		TaxOracleAPIKey: os.Getenv("TAX_ORACLE_API_KEY"),

		PaymentURL:    getenv("PAYMENT_URL", "https://api.stripe.com"),
		PaymentAPIKey: os.Getenv("PAYMENT_API_KEY"),

		FuelSurcharge:   fuel,
		ExpediteFee:     expedite,
		NoPostSurcharge: noPost,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TaxOracleAPIKey == "" {
		return Config{}, fmt.Errorf("TAX_ORACLE_API_KEY is required")
	}
	if cfg.PaymentAPIKey == "" {
		return Config{}, fmt.Errorf("PAYMENT_API_KEY is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func decimalEnv(key string, def string) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a decimal amount: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must be >= 0", key)
	}
	return d, nil
}
