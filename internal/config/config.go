package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether every R2 credential is present.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.Bucket != "" && r.AccessKey != "" && r.SecretKey != ""
}

type Config struct {
	Env      string
	HTTPAddr string
	DBURL    string

	GoogleAPIKey string
	GeminiModel  string

	JWTSecret string
	TokenTTL  time.Duration

	CacheBackend string
	CachePath    string
	RedisAddr    string

	RabbitMQURL string
	R2          R2Config

	RemoteTimeout    time.Duration
	PersistAttempts  int
	PersistBackoff   time.Duration
	ChatHistoryLimit int
	DraftDelay       time.Duration

	CORSOrigins []string
}

// Load reads .env (when present) and the process environment. Only values
// every command needs are checked here; see RequireServe for the rest.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              str("APP_ENV", "development"),
		HTTPAddr:         str("HTTP_ADDR", ":8080"),
		DBURL:            str("DB_URL", ""),
		GoogleAPIKey:     str("GOOGLE_API_KEY", ""),
		GeminiModel:      str("GEMINI_MODEL", "gemini-2.5-flash"),
		JWTSecret:        str("JWT_SECRET", ""),
		TokenTTL:         duration("TOKEN_TTL", 24*time.Hour),
		CacheBackend:     strings.ToLower(str("CACHE_BACKEND", "bolt")),
		CachePath:        str("CACHE_PATH", "data/cache.bolt"),
		RedisAddr:        str("REDIS_ADDR", ""),
		RabbitMQURL:      str("RABBITMQ_URL", ""),
		RemoteTimeout:    duration("REMOTE_TIMEOUT", 10*time.Second),
		PersistAttempts:  integer("PERSIST_ATTEMPTS", 3),
		PersistBackoff:   duration("PERSIST_BACKOFF", 500*time.Millisecond),
		ChatHistoryLimit: integer("CHAT_HISTORY_LIMIT", 50),
		DraftDelay:       duration("DRAFT_DELAY", 2*time.Second),
		CORSOrigins:      list("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		R2: R2Config{
			AccountID: str("R2_ACCCOUNT_ID", ""),
			Bucket:    str("R2_BUCKET", ""),
			AccessKey: str("R2_ACCESS_KEY", ""),
			SecretKey: str("R2_SECRET_KEY", ""),
		},
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("empty DB_URL in environment")
	}
	switch cfg.CacheBackend {
	case "bolt", "memory":
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("CACHE_BACKEND=redis needs REDIS_ADDR")
		}
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}
	return cfg, nil
}

// RequireServe checks the values only the HTTP server needs.
func (c *Config) RequireServe() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("empty JWT_SECRET in environment")
	}
	return nil
}

func str(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func integer(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func duration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func list(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
