package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PersistenceRedis    = "redis"
	PersistencePostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	SMTP      SMTPConfig
	Reviewers ReviewerMailboxes
	Export    ExportConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	IntakeSessionTTL   time.Duration
}

type StorageConfig struct {
	Driver     string
	RedisURL   string
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// ReviewerMailboxes maps each review stage to the shared inbox notified
// when a submission reaches it. Empty means no email for that stage.
type ReviewerMailboxes struct {
	PBP         string
	Procurement string
	OPW         string
	Contract    string
	AP          string
}

type ExportConfig struct {
	ChromePath string
}

// TracingConfig drives the OTLP exporter. Tracing stays off unless Enabled.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "review-audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			IntakeSessionTTL:   time.Duration(getEnvAsInt("INTAKE_SESSION_TTL_MINUTES", 120)) * time.Minute,
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("PERSISTENCE_DRIVER", PersistenceRedis)),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Supplier Onboarding"),
		},
		Reviewers: ReviewerMailboxes{
			PBP:         getEnv("REVIEWER_EMAIL_PBP", ""),
			Procurement: getEnv("REVIEWER_EMAIL_PROCUREMENT", ""),
			OPW:         getEnv("REVIEWER_EMAIL_OPW", ""),
			Contract:    getEnv("REVIEWER_EMAIL_CONTRACT", ""),
			AP:          getEnv("REVIEWER_EMAIL_AP", ""),
		},
		Export: ExportConfig{
			ChromePath: getEnv("CHROME_PATH", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "supplier-onboarding-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
