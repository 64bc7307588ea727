package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName        string
	Environment    string
	HTTPPort       string
	UploadMaxBytes int
	MigrationsDir  string
}

type DatabaseConfig struct {
	URL        string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type AuthConfig struct {
	JWTSecret string
	Audience  string
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type EmbeddingConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type StorageConfig struct {
	Bucket        string
	PublicBaseURL string
}

type RateLimitConfig struct {
	LLMPerMinute int
}

const (
	defaultGroqBaseURL    = "https://api.groq.com/openai/v1"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultEmbeddingModel = "all-MiniLM-L6-v2"
	defaultUploadMaxBytes = 10 << 20
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}

	cfg.App = AppConfig{
		AppName:        optDefault("APP_NAME", "careerpath"),
		Environment:    optDefault("APP_ENV", "development"),
		HTTPPort:       req("HTTP_PORT"),
		UploadMaxBytes: intFromString(opt("UPLOAD_MAX_BYTES"), defaultUploadMaxBytes),
		MigrationsDir:  optDefault("MIGRATIONS_DIR", "migrations"),
	}

	cfg.Database = DatabaseConfig{
		URL:        opt("DATABASE_URL"),
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        secondsFromString(opt("DB_CONNECT_TIMEOUT_SECONDS"), 0),
		PoolMaxConns:          int32(intFromString(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intFromString(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   secondsFromString(opt("DB_POOL_MAX_CONN_LIFETIME_SECONDS"), 0),
		PoolMaxConnIdleTime:   secondsFromString(opt("DB_POOL_MAX_CONN_IDLE_SECONDS"), 0),
		PoolHealthCheckPeriod: secondsFromString(opt("DB_POOL_HEALTH_CHECK_SECONDS"), 0),
	}
	if cfg.Database.URL == "" && cfg.Database.DBHost == "" {
		missing = append(missing, "DATABASE_URL|DB_HOST")
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      secondsFromString(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.Auth = AuthConfig{
		JWTSecret: req("SUPABASE_JWT_SECRET"),
		Audience:  optDefault("SUPABASE_JWT_AUDIENCE", "authenticated"),
	}

	cfg.LLM = LLMConfig{
		APIKey:  req("GROQ_API_KEY"),
		BaseURL: optDefault("GROQ_BASE_URL", defaultGroqBaseURL),
		Model:   optDefault("GROQ_MODEL", defaultGroqModel),
	}

	cfg.Embedding = EmbeddingConfig{
		BaseURL: req("EMBEDDING_BASE_URL"),
		APIKey:  opt("EMBEDDING_API_KEY"),
		Model:   optDefault("EMBEDDING_MODEL", defaultEmbeddingModel),
	}

	cfg.Storage = StorageConfig{
		Bucket:        req("RESUME_BUCKET"),
		PublicBaseURL: opt("RESUME_PUBLIC_BASE_URL"),
	}

	cfg.RateLimit = RateLimitConfig{
		LLMPerMinute: intFromString(opt("LLM_RATE_PER_MINUTE"), 20),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c AppConfig) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

func intFromString(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func secondsFromString(raw string, def time.Duration) time.Duration {
	v := intFromString(raw, 0)
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
