package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// BackendConfig holds settings for the hosted commerce/CMS backend.
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"BACKEND_BASE_URL"        env-required:"true"`
	APIVersion     string        `yaml:"api_version"     env:"BACKEND_API_VERSION"     env-default:"v3"`
	ConsumerKey    string        `yaml:"consumer_key"    env:"BACKEND_CONSUMER_KEY"    env-required:"true"`
	ConsumerSecret string        `yaml:"consumer_secret" env:"BACKEND_CONSUMER_SECRET" env-required:"true"`
	Timeout        time.Duration `yaml:"timeout"         env:"BACKEND_TIMEOUT"         env-default:"10s"`
	RetryAttempts  int           `yaml:"retry_attempts"  env:"BACKEND_RETRY_ATTEMPTS"  env-default:"1"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"   env:"BACKEND_RETRY_BACKOFF"   env-default:"500ms"`

	// EventEndpointsRaw is the ordered probe list for event listings,
	// comma-separated paths relative to /wp-json/.
	EventEndpointsRaw string        `yaml:"event_endpoints"     env:"BACKEND_EVENT_ENDPOINTS"     env-default:"wp/v2/events,wp/v2/tribe_events,tribe/events/v1/events"`
	EventProbeTimeout time.Duration `yaml:"event_probe_timeout" env:"BACKEND_EVENT_PROBE_TIMEOUT" env-default:"3s"`

	// EventEndpoints is parsed from EventEndpointsRaw during validation.
	EventEndpoints []string `yaml:"-" env:"-"`
}

// CacheConfig holds remote content cache settings.
type CacheConfig struct {
	TTL             time.Duration `yaml:"ttl"               env:"CACHE_TTL"               env-default:"10m"`
	PrefetchTTL     time.Duration `yaml:"prefetch_ttl"      env:"CACHE_PREFETCH_TTL"      env-default:"15m"`
	PrefetchOnStart bool          `yaml:"prefetch_on_start" env:"CACHE_PREFETCH_ON_START" env-default:"true"`
}

// RateLimitConfig holds per-identity rate limit settings.
type RateLimitConfig struct {
	Tokens   int `yaml:"tokens"    env:"RATE_LIMIT_TOKENS"    env-default:"100"`
	WindowMS int `yaml:"window_ms" env:"RATE_LIMIT_WINDOW_MS" env-default:"60000"`
}

// Window returns the rate limit window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN keeps carts in memory.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool { return c.DSN != "" }

// StorageConfig holds object storage settings for downloadable product assets.
// An empty Endpoint disables presigning; stored asset URLs are returned as-is.
type StorageConfig struct {
	Endpoint        string        `yaml:"endpoint"          env:"STORAGE_ENDPOINT"`
	AccessKeyID     string        `yaml:"access_key_id"     env:"STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string        `yaml:"secret_access_key" env:"STORAGE_SECRET_ACCESS_KEY"`
	Bucket          string        `yaml:"bucket"            env:"STORAGE_BUCKET"            env-default:"product-assets"`
	Region          string        `yaml:"region"            env:"STORAGE_REGION"            env-default:"us-east-1"`
	UseSSL          bool          `yaml:"use_ssl"           env:"STORAGE_USE_SSL"           env-default:"true"`
	PresignTTL      time.Duration `yaml:"presign_ttl"       env:"STORAGE_PRESIGN_TTL"       env-default:"15m"`
}

// Enabled reports whether object storage is configured.
func (c StorageConfig) Enabled() bool { return c.Endpoint != "" }

// SessionConfig holds settings for the shopper session and cart cookies.
type SessionConfig struct {
	CookieName     string `yaml:"cookie_name"       env:"AUTH_COOKIE_NAME"   env-default:"storefront_token"`
	CartCookie     string `yaml:"cart_cookie"       env:"CART_COOKIE_NAME"   env-default:"cart_id"`
	CookieSecure   bool   `yaml:"cookie_secure"     env:"AUTH_COOKIE_SECURE" env-default:"true"`
	CartMaxAgeDays int    `yaml:"cart_max_age_days" env:"CART_MAX_AGE_DAYS"  env-default:"30"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
