package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	LLM      LLMConfig      `yaml:"llm"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Cache    CacheConfig    `yaml:"cache"`
	Reader   ReaderConfig   `yaml:"reader"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Paragraph-Page,X-Paragraph-Page-Size,X-Paragraph-Total,X-Paragraph-Total-Pages,Retry-After"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings. RateLimit is requests per minute
// per caller; 0 disables it.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"4194304"`
	RateLimit       int           `yaml:"rate_limit"       env:"SERVER_RATE_LIMIT"       env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds access-token validation settings. Tokens are issued by the
// identity service; this backend only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"reading-copilot"`
	// Required rejects unauthenticated requests. When false, requests without
	// a token act as DevUserID (local single-user setups).
	Required  bool   `yaml:"required"    env:"AUTH_REQUIRED"    env-default:"true"`
	DevUserID string `yaml:"dev_user_id" env:"AUTH_DEV_USER_ID" env-default:"00000000-0000-0000-0000-000000000001"`
}

// LLMConfig holds the OpenAI-compatible chat completion endpoint settings.
type LLMConfig struct {
	APIKey      string        `yaml:"api_key"     env:"LLM_API_KEY"`
	BaseURL     string        `yaml:"base_url"    env:"LLM_BASE_URL"    env-default:"https://dashscope.aliyuncs.com/compatible-mode/v1"`
	Model       string        `yaml:"model"       env:"LLM_MODEL"       env-default:"qwen-plus"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"     env-default:"60s"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.3"`
}

// Enabled reports whether an API key is configured.
func (c LLMConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// AnalysisConfig holds the analysis collaborator limits.
type AnalysisConfig struct {
	RateLimitMax        int           `yaml:"rate_limit_max"         env:"ANALYSIS_RATE_LIMIT_MAX"         env-default:"20"`
	RateLimitWindow     time.Duration `yaml:"rate_limit_window"      env:"ANALYSIS_RATE_LIMIT_WINDOW"      env-default:"60s"`
	BatchConcurrency    int           `yaml:"batch_concurrency"      env:"ANALYSIS_BATCH_CONCURRENCY"      env-default:"4"`
	BreakerMaxFailures  int           `yaml:"breaker_max_failures"   env:"ANALYSIS_BREAKER_MAX_FAILURES"   env-default:"5"`
	BreakerResetTimeout time.Duration `yaml:"breaker_reset_timeout"  env:"ANALYSIS_BREAKER_RESET_TIMEOUT"  env-default:"30s"`
}

// CacheConfig holds the Redis analysis cache settings. An empty Addr
// disables the cache.
type CacheConfig struct {
	Addr     string        `yaml:"addr"     env:"CACHE_REDIS_ADDR"`
	Password string        `yaml:"password" env:"CACHE_REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"CACHE_REDIS_DB"       env-default:"0"`
	TTL      time.Duration `yaml:"ttl"      env:"CACHE_TTL"            env-default:"168h"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// ReaderConfig holds reading defaults applied to new texts and paging.
type ReaderConfig struct {
	DefaultVocabLevel    string        `yaml:"default_vocab_level"    env:"READER_DEFAULT_VOCAB_LEVEL"    env-default:"B1"`
	DefaultScaffoldLevel int           `yaml:"default_scaffold_level" env:"READER_DEFAULT_SCAFFOLD_LEVEL" env-default:"2"`
	DefaultReadingMode   string        `yaml:"default_reading_mode"   env:"READER_DEFAULT_READING_MODE"   env-default:"flow"`
	PageSize             int           `yaml:"page_size"              env:"READER_PAGE_SIZE"              env-default:"20"`
	MaxPageSize          int           `yaml:"max_page_size"          env:"READER_MAX_PAGE_SIZE"          env-default:"100"`
	ImportMaxBytes       int64         `yaml:"import_max_bytes"       env:"READER_IMPORT_MAX_BYTES"       env-default:"5242880"`
	ImportTimeout        time.Duration `yaml:"import_timeout"         env:"READER_IMPORT_TIMEOUT"         env-default:"20s"`
	PDFMaxBytes          int64         `yaml:"pdf_max_bytes"          env:"READER_PDF_MAX_BYTES"          env-default:"10485760"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MetricsConfig holds the Prometheus scrape endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// SplitList splits a comma-separated config value, dropping empty parts.
func SplitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
