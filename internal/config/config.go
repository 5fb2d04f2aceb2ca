package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
	FrontendURL    string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	Timezone *time.Location

	LogLevel string
	LogFile  string
	LogJSON  bool

	ReminderSchedule  string
	RateLimitAIPerMin int
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASS"),
		DBName:     getEnv("DB_NAME", "wodtracker"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: normalizeMeiliHost(getEnv("MEILISEARCH_HOST", "http://localhost:7700")),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "wodtracker"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 18 * * *"),
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "dev-secret"
	}

	var err error
	cfg.LogJSON, err = parseBool(getEnv("LOG_JSON", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_JSON: %w", err)
	}
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.AITimeout, err = parseDuration(getEnv("AI_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT: %w", err)
	}
	cfg.RateLimitAIPerMin, err = strconv.Atoi(getEnv("RATE_LIMIT_AI_PER_MIN", "10"))
	if err != nil || cfg.RateLimitAIPerMin <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AI_PER_MIN: %q", getEnv("RATE_LIMIT_AI_PER_MIN", ""))
	}
	cfg.Timezone, err = time.LoadLocation(getEnv("APP_TIMEZONE", "Europe/Madrid"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeMeiliHost accepts a bare docker service name ("meilisearch") as well as a URL.
func normalizeMeiliHost(host string) string {
	if strings.HasPrefix(host, "http") {
		return host
	}
	return "http://" + host + ":7700"
}
