package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Mode              string // GIN_MODE, also selects the log encoder
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	SupabaseAnonKey   string // accepted as apikey/bearer on the public function route
	TrustedProxies    []string
	FrontendURL       string
	Timezone          string

	// Transactional email (Resend first, SMTP as fallback)
	ResendAPIKey     string
	EmailFromAddress string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string

	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitNotifyThreshold int
	RateLimitAdminThreshold  int

	// Supabase Storage (S3 protocol) archive for generated contracts
	StorageS3Endpoint  string
	StorageS3Region    string
	StorageS3AccessKey string
	StorageS3SecretKey string
	StorageBucket      string

	// Tracing
	OtelEnabled     bool
	OtelEndpoint    string
	OtelServiceName string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; missing file is fine
	_ = godotenv.Load()

	supabaseURL := strings.TrimRight(getEnv("SUPABASE_URL", ""), "/")

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Mode:              getEnv("GIN_MODE", "debug"),
		DBUrl:             getEnv("DATABASE_URL", ""),
		SupabaseUrl:       supabaseURL,
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		TrustedProxies:    getEnvList("TRUSTED_PROXIES"),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		Timezone:          getEnv("APP_TIMEZONE", "America/Sao_Paulo"),

		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "onboarding@resend.dev"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitNotifyThreshold: getEnvInt("RATE_LIMIT_NOTIFY_THRESHOLD", 20),
		RateLimitAdminThreshold:  getEnvInt("RATE_LIMIT_ADMIN_THRESHOLD", 120),

		StorageS3Endpoint:  strings.TrimRight(getEnv("STORAGE_S3_ENDPOINT", defaultStorageEndpoint(supabaseURL)), "/"),
		StorageS3Region:    getEnv("STORAGE_S3_REGION", "sa-east-1"),
		StorageS3AccessKey: getEnv("STORAGE_S3_ACCESS_KEY_ID", ""),
		StorageS3SecretKey: getEnv("STORAGE_S3_SECRET_ACCESS_KEY", ""),
		StorageBucket:      getEnv("STORAGE_CONTRACTS_BUCKET", "contracts"),

		OtelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OtelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OtelServiceName: getEnv("OTEL_SERVICE_NAME", "celebrai-backend"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.SupabaseAnonKey == "" && cfg.SupabaseJWTSecret == "" {
		log.Println("WARNING: neither SUPABASE_ANON_KEY nor SUPABASE_JWT_SECRET is set. The notification function only accepts JWKS-signed tokens.")
	}
	if cfg.ResendAPIKey == "" && cfg.SMTPHost == "" {
		log.Println("WARNING: neither RESEND_API_KEY nor SMTP_HOST is set. Signature emails will fail.")
	}

	return cfg, nil
}

// StorageConfigured reports whether generated contracts can be archived.
func (c *Config) StorageConfigured() bool {
	return c.StorageS3Endpoint != "" && c.StorageS3AccessKey != "" && c.StorageS3SecretKey != ""
}

func defaultStorageEndpoint(supabaseURL string) string {
	if supabaseURL == "" {
		return ""
	}
	return supabaseURL + "/storage/v1/s3"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty entries
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
