package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	JWTTTL       time.Duration
	AllowOrigins []string

	GoogleAudience string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketListing string
	MinIOPublicURL     string

	LogstashTCPAddr string

	DefaultCity            string
	ListingTTL             time.Duration
	PaymentProcessingDelay time.Duration

	EnableDeals    bool
	EnableAssist   bool
	EnablePayments bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  must("DATABASE_URL"),
		JWTSecret:    must("JWT_SECRET"),
		JWTTTL:       duration("JWT_TTL", 24*time.Hour),
		AllowOrigins: splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		GoogleAudience: getenv("GOOGLE_AUDIENCE", ""),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       0,
		SessionTTL:    duration("SESSION_TTL", 7*24*time.Hour),

		GeminiAPIKey:  getenv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getenv("GEMINI_BASE_URL", ""),
		GeminiModel:   getenv("GEMINI_MODEL", ""),

		MinIOEndpoint:      must("MINIO_ENDPOINT"),
		MinIOAccessKey:     must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:     must("MINIO_SECRET_KEY"),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketListing: getenv("MINIO_BUCKET_LISTINGS", "sajha-listings"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),

		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		DefaultCity:            getenv("DEFAULT_CITY", "Kathmandu"),
		ListingTTL:             duration("LISTING_TTL", 30*24*time.Hour),
		PaymentProcessingDelay: duration("PAYMENT_PROCESSING_DELAY", 2*time.Second),

		EnableDeals:    getenv("ENABLE_DEALS", "true") == "true",
		EnableAssist:   getenv("ENABLE_ASSIST", "true") == "true",
		EnablePayments: getenv("ENABLE_PAYMENTS", "true") == "true",
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func duration(k string, d time.Duration) time.Duration {
	raw := os.Getenv(k)
	if raw == "" {
		return d
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid %s %q, using %s", k, raw, d)
		return d
	}
	return parsed
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
