package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Resource is the workbook name, fixed per deployment. The connector
	// resolves its location from credentials (see storage.ResolveCredentials).
	Resource        string
	CredentialsFile string
	CredentialsEnv  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxRetries   int
	RetryDelayMs int

	// SalesGoal is the yearly portfolio-value target shown on the dashboard.
	SalesGoal int64

	CSVExportDir string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Resource:        getEnv("CRM_RESOURCE", "estate_crm"),
		CredentialsFile: getEnv("CRM_CREDENTIALS_FILE", "credentials.json"),
		CredentialsEnv:  getEnv("CRM_CREDENTIALS_ENV", "CRM_CREDENTIALS"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "crm"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "crm123"),
		PostgresDB:       getEnv("POSTGRES_DB", "estate_crm"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxRetries:   getEnvInt("MAX_RETRIES", 3),
		RetryDelayMs: getEnvInt("RETRY_DELAY_MS", 500),

		SalesGoal: int64(getEnvInt("SALES_GOAL", 50_000_000)),

		CSVExportDir: getEnv("CSV_EXPORT_DIR", "./export"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
