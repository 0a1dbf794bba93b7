package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageS3   = "s3"
	StorageDisk = "disk"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database: memory, sqlite or pgx (default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string
	LogLevel  string

	// Storage: s3 for S3-compatible providers, disk for local development
	StorageDriver   string
	StoragePath     string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: MinIO, R2, DO Spaces
	S3PresignExpiry time.Duration // Expiry for study file download links

	// Content generation (OpenAI-compatible chat completions)
	AIBaseURL string
	AIAPIKey  string
	AIModel   string
	AITimeout time.Duration

	// HTTP
	CORSAllowedOrigins []string
	RateLimitGenerate  int
	RateLimitWindow    time.Duration

	// Rewards
	RewardTokensPerDay int
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Studytrail"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/studytrail.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
		LogLevel:  envString("LOG_LEVEL", ""),

		// Storage
		StorageDriver:   envString("STORAGE_DRIVER", StorageDisk),
		StoragePath:     envString("STORAGE_PATH", "./data/files"),
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),

		// Content generation
		AIBaseURL: envString("AI_BASE_URL", "https://ai.gateway.lovable.dev"),
		AIAPIKey:  envString("AI_API_KEY", ""),
		AIModel:   envString("AI_MODEL", "google/gemini-2.5-flash"),
		AITimeout: envDuration("AI_TIMEOUT", 90*time.Second),

		// HTTP
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		RateLimitGenerate:  envInt("RATE_LIMIT_GENERATE", 10),
		RateLimitWindow:    envDuration("RATE_LIMIT_WINDOW", time.Minute),

		// Rewards
		RewardTokensPerDay: envInt("REWARD_TOKENS_PER_DAY", 10),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		if problems := cfg.productionProblems(); len(problems) > 0 {
			for _, p := range problems {
				slog.Error("production deployment misconfigured", "problem", p)
			}
			os.Exit(1)
		}
	}

	return cfg
}

// productionProblems lists settings that may only use fallbacks in development.
func (c *Config) productionProblems() []string {
	var problems []string
	if c.ResendAPIKey == "" {
		problems = append(problems, "RESEND_API_KEY is required (email log mode is development only)")
	}
	if c.AIAPIKey == "" {
		problems = append(problems, "AI_API_KEY is required")
	}
	if c.DBDriver == "memory" {
		problems = append(problems, "DB_DRIVER=memory loses all data on restart")
	}
	if c.StorageDriver != StorageS3 {
		problems = append(problems, "STORAGE_DRIVER=s3 is required (disk storage is development only)")
	} else if c.S3Bucket == "" {
		problems = append(problems, "S3_BUCKET is required when STORAGE_DRIVER=s3")
	}
	return problems
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList reads a comma separated list, dropping empty entries.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		AppURL:  c.AppURL,
		Port:    c.Port,

		DBDriver:      c.DBDriver,
		StorageDriver: c.StorageDriver,
		S3Endpoint:    c.S3Endpoint,
		S3Bucket:      c.S3Bucket,
		AIBaseURL:     c.AIBaseURL,
		AIModel:       c.AIModel,
	}
}
