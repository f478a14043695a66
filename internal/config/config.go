package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	FrontendURL string

	// Outbound email
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string

	// Reporting warehouse (empty disables export)
	ExportDBURL string
	ExportCron  string

	// Activity log retention in days
	ActivityRetentionDays int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		JWTSecret:             getEnv("JWT_SECRET", "secret"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:                getEnv("DB_NAME", "go-recruit"),
		SkipAuth:              getEnv("SKIP_AUTH", "false") == "true",
		Environment:           getEnv("ENVIRONMENT", "development"),
		AppId:                 getEnv("APP_ID", "go-recruit"),
		FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:3000"),
		SMTPHost:              getEnv("SMTP_HOST", "localhost"),
		SMTPPort:              getEnvInt("SMTP_PORT", 587),
		SMTPUser:              getEnv("SMTP_USER", ""),
		SMTPPass:              getEnv("SMTP_PASS", ""),
		EmailFrom:             getEnv("EMAIL_FROM", "recruitment@molmi.com"),
		ExportDBURL:           getEnv("EXPORT_DB_URL", ""),
		ExportCron:            getEnv("EXPORT_CRON", "0 2 * * *"),
		ActivityRetentionDays: getEnvInt("ACTIVITY_RETENTION_DAYS", 90),
	}, nil
}

// IsProduction reports whether the app runs in production mode.
// Error responses hide internal detail when it does.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
