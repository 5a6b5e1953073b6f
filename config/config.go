package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port        string
	DatabaseURL string
	CorsOrigin  string

	SessionCookie string
	SessionTTL    time.Duration
	CookieSecure  bool

	UploadDir     string
	UploadBaseURL string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	UpstreamCooldown time.Duration

	AIGatewayURL    string
	AIGatewayAPIKey string
	AIModel         string
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	Port = getEnv("PORT", "8080")
	DatabaseURL = mustEnv("DATABASE_URL")
	CorsOrigin = getEnv("CORS_ORIGIN", "*")

	SessionCookie = getEnv("SESSION_COOKIE", "am_session")
	SessionTTL = getDuration("SESSION_TTL", 30*24*time.Hour)
	CookieSecure = getBool("COOKIE_SECURE", false)

	UploadDir = getEnv("UPLOAD_DIR", "public/uploads")
	UploadBaseURL = getEnv("UPLOAD_BASE_URL", "/uploads")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "")
	MinioBucket = getEnv("MINIO_BUCKET", "auto-market")
	MinioUseSSL = getBool("MINIO_USE_SSL", false)
	MinioPublicURL = getEnv("MINIO_PUBLIC_URL", "")

	UpstreamCooldown = getDuration("UPSTREAM_COOLDOWN", 5*time.Minute)

	AIGatewayURL = getEnv("AI_GATEWAY_URL", "https://gateway.ai.vercel.com/v1/chat/completions")
	AIGatewayAPIKey = getEnv("AI_GATEWAY_API_KEY", "")
	AIModel = getEnv("AI_MODEL", "openai/gpt-4o-mini")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
