package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Storage backend for signed-in accounts: "postgres" or "sqlite"
	DBDriver    string
	DBUrl       string
	SQLitePath  string
	SupabaseUrl string
	FrontendURL string
	// Comma separated list of extra CORS origins
	AllowedOrigins []string
	// Session tokens issued after OAuth sign-in (HS256)
	SessionJWTSecret string
	SessionTTLHours  int
	// LinkedIn OAuth
	LinkedInClientID     string
	LinkedInClientSecret string
	OAuthRedirectURL     string
	// Redis/Upstash Configuration (guest storage, one-shot flags, rate limiting)
	UpstashRedisURL      string
	UpstashRedisPassword string
	GuestTTLHours        int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitAuthThreshold   int
	// Export archive (S3 / Wasabi)
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Endpoint        string
	ExportBucket      string
	// Secure flag on identity cookies; defaults to on in production
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; ignored in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBUrl:       getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "jobtracker.sqlite"),
		// Trailing slash would produce .co//auth
		SupabaseUrl:    strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
		// Session
		SessionJWTSecret: getEnv("SESSION_JWT_SECRET", getEnv("NEXTAUTH_SECRET", "")),
		SessionTTLHours:  getEnvInt("SESSION_TTL_HOURS", 24*7),
		// OAuth
		LinkedInClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedInClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
		OAuthRedirectURL:     getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/v1/auth/callback"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		GuestTTLHours:        getEnvInt("GUEST_TTL_HOURS", 24),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		// Export archive
		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		ExportBucket:      getEnv("EXPORT_BUCKET", ""),
	}
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.IsProduction())

	if cfg.DBDriver == "postgres" && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.SessionJWTSecret == "" {
		log.Println("WARNING: SESSION_JWT_SECRET not configured. OAuth sign-in will be unavailable.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Guest data and rate limits will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OAuthConfigured reports whether LinkedIn sign-in can be offered.
func (c *Config) OAuthConfigured() bool {
	return c.LinkedInClientID != "" && c.LinkedInClientSecret != "" && c.SessionJWTSecret != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
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

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
