package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/statementlens/statementlens/internal/models"
)

// AppConfig holds everything read from the environment at startup. The
// column boundaries and merge tolerance default to the reference statement
// layout but can be overridden for other renderings.
type AppConfig struct {
	Port     string
	LogLevel string

	MaxUploadSizeBytes int64

	Schema models.ColumnSchema
}

var Cfg *AppConfig

// LoadConfig reads .env (if present) and the OS environment into Cfg.
// Call once at startup, before the logger is initialized.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, relying on OS environment and defaults")
	}

	schema := models.DefaultColumnSchema()
	schema.DateMax = getEnvFloat("COLUMN_DATE_MAX", schema.DateMax)
	schema.TypeMax = getEnvFloat("COLUMN_TYPE_MAX", schema.TypeMax)
	schema.DetailsMax = getEnvFloat("COLUMN_DETAILS_MAX", schema.DetailsMax)
	schema.OutMax = getEnvFloat("COLUMN_OUT_MAX", schema.OutMax)
	schema.InMax = getEnvFloat("COLUMN_IN_MAX", schema.InMax)
	schema.ChargeMax = getEnvFloat("COLUMN_CHARGE_MAX", schema.ChargeMax)
	schema.MergeTolerance = getEnvInt("ROW_MERGE_TOLERANCE", schema.MergeTolerance)

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxUploadSizeBytes: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 32)) << 20,
		Schema:             schema,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid integer for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid number for %s: %q, using default %g", key, v, fallback)
		return fallback
	}
	return f
}
