package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment
// variables.
type Config struct {
	AppEnv string
	Port   string

	AuthDriver     string
	DocstoreDriver string

	FirebaseProjectID             string
	FirebaseWebAPIKey             string
	FirebaseCredentialsFile       string
	FirebaseCredentialsJSONBase64 string

	DatabaseURL string

	ProfileCacheTTL time.Duration

	AllowedOrigins  []string
	DefaultLocale   string
	GeoIPDBPath     string
	RateLimitPerMin int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// Driver names accepted by the config.
const (
	AuthDriverFirebase = "firebase"
	AuthDriverMemory   = "memory"

	DocstoreDriverFirestore = "firestore"
	DocstoreDriverPostgres  = "postgres"
	DocstoreDriverMemory    = "memory"
)

// LoadConfig loads configuration from environment variables and applies
// defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                        getEnv("APP_ENV", "development"),
		Port:                          getEnv("PORT", "8080"),
		AuthDriver:                    getEnv("AUTH_DRIVER", AuthDriverFirebase),
		DocstoreDriver:                getEnv("DOCSTORE_DRIVER", DocstoreDriverFirestore),
		FirebaseProjectID:             os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseWebAPIKey:             os.Getenv("FIREBASE_WEB_API_KEY"),
		FirebaseCredentialsFile:       os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseCredentialsJSONBase64: os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"),
		DatabaseURL:                   os.Getenv("DATABASE_URL"),
		ProfileCacheTTL:               time.Second * time.Duration(getEnvInt("PROFILE_CACHE_TTL_SECONDS", 30)),
		AllowedOrigins:                splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		DefaultLocale:                 getEnv("DEFAULT_LOCALE", "en"),
		GeoIPDBPath:                   os.Getenv("GEOIP_DB_PATH"),
		RateLimitPerMin:               getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		HTTPReadTimeout:               time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:              time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:               time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	switch cfg.AuthDriver {
	case AuthDriverFirebase:
		if cfg.FirebaseProjectID == "" {
			return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
		}
		if cfg.FirebaseWebAPIKey == "" {
			return nil, fmt.Errorf("FIREBASE_WEB_API_KEY is required")
		}
	case AuthDriverMemory:
		// Nothing to validate.
	default:
		return nil, fmt.Errorf("unknown AUTH_DRIVER %q", cfg.AuthDriver)
	}

	switch cfg.DocstoreDriver {
	case DocstoreDriverFirestore:
		if cfg.FirebaseProjectID == "" {
			return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
		}
	case DocstoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case DocstoreDriverMemory:
		// Nothing to validate.
	default:
		return nil, fmt.Errorf("unknown DOCSTORE_DRIVER %q", cfg.DocstoreDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
