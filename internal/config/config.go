// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Mail          MailConfig          `mapstructure:"mail"`
	Assets        AssetsConfig        `mapstructure:"assets"`
	Outbox        OutboxConfig        `mapstructure:"outbox"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	CookieDomain string        `mapstructure:"cookie_domain"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// DatabaseConfig holds MongoDB connection settings
type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Name       string `mapstructure:"name"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	AuthSource string `mapstructure:"auth_source"`
	ReplicaSet string `mapstructure:"replica_set"`
}

// MongoURI builds the MongoDB connection string.
func (c *DatabaseConfig) MongoURI() string {
	uri := "mongodb://"
	if c.User != "" {
		uri += fmt.Sprintf("%s:%s@", c.User, c.Password)
	}
	uri += fmt.Sprintf("%s:%d/%s", c.Host, c.Port, c.Name)

	params := []string{}
	if c.AuthSource != "" {
		params = append(params, "authSource="+c.AuthSource)
	}
	if c.ReplicaSet != "" {
		params = append(params, "replicaSet="+c.ReplicaSet)
	}
	if len(params) > 0 {
		uri += "?" + strings.Join(params, "&")
	}
	return uri
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the host:port address for the redis client.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig holds token settings. Activation tokens carry pending
// registrations and expire quickly; access/refresh form the session pair.
type JWTConfig struct {
	AccessSecret         string        `mapstructure:"access_secret"`
	RefreshSecret        string        `mapstructure:"refresh_secret"`
	ActivationSecret     string        `mapstructure:"activation_secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	ActivationDuration   time.Duration `mapstructure:"activation_duration"`
	Issuer               string        `mapstructure:"issuer"`
}

// CacheConfig holds lookaside cache TTLs. Zero disables expiry, but the
// defaults keep a TTL safety net so edits can never go stale forever.
type CacheConfig struct {
	CourseTTL  time.Duration `mapstructure:"course_ttl"`
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// MailConfig holds transactional mail settings
type MailConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	SenderName  string        `mapstructure:"sender_name"`
	SenderEmail string        `mapstructure:"sender_email"`
	TemplateDir string        `mapstructure:"template_dir"`
	HotReload   bool          `mapstructure:"hot_reload"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// AssetsConfig holds S3 asset store settings
type AssetsConfig struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// OutboxConfig holds deferred side-effect executor settings
type OutboxConfig struct {
	Concurrency     int           `mapstructure:"concurrency"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	MaxRetries      int           `mapstructure:"max_retries"`
	SweepSchedule   string        `mapstructure:"sweep_schedule"`
	StaleThreshold  time.Duration `mapstructure:"stale_threshold"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ObservabilityConfig holds metrics and tracing settings
type ObservabilityConfig struct {
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	TraceExporter  string `mapstructure:"trace_exporter"` // "otlp-http" or "stdout"
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
}

// RateLimitConfig holds auth-endpoint rate limiter settings
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/academy-cloud/")

	v.SetEnvPrefix("ACADEMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults can carry a dev setup
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" || c.JWT.ActivationSecret == "" {
		return fmt.Errorf("jwt secrets must be configured")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name must be configured")
	}
	if c.Outbox.Concurrency <= 0 {
		return fmt.Errorf("outbox concurrency must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "academy-cloud")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", true)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.cookie_secure", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 27017)
	v.SetDefault("database.name", "academy")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.access_secret", "dev-access-secret")
	v.SetDefault("jwt.refresh_secret", "dev-refresh-secret")
	v.SetDefault("jwt.activation_secret", "dev-activation-secret")
	v.SetDefault("jwt.access_token_duration", "5m")
	v.SetDefault("jwt.refresh_token_duration", "72h")
	v.SetDefault("jwt.activation_duration", "5m")
	v.SetDefault("jwt.issuer", "academy-cloud")

	v.SetDefault("cache.course_ttl", "10m")
	v.SetDefault("cache.catalog_ttl", "10m")
	v.SetDefault("cache.session_ttl", "72h")

	v.SetDefault("mail.base_url", "https://api.brevo.com")
	v.SetDefault("mail.sender_name", "Academy Cloud")
	v.SetDefault("mail.sender_email", "no-reply@academy-cloud.dev")
	v.SetDefault("mail.template_dir", "templates/email")
	v.SetDefault("mail.hot_reload", false)
	v.SetDefault("mail.timeout", "10s")

	v.SetDefault("assets.bucket", "academy-assets")
	v.SetDefault("assets.region", "us-east-1")

	v.SetDefault("outbox.concurrency", 4)
	v.SetDefault("outbox.poll_interval", "200ms")
	v.SetDefault("outbox.max_retries", 5)
	v.SetDefault("outbox.sweep_schedule", "@every 1m")
	v.SetDefault("outbox.stale_threshold", "10m")
	v.SetDefault("outbox.shutdown_timeout", "30s")

	v.SetDefault("observability.metrics_enabled", true)
	v.SetDefault("observability.tracing_enabled", false)
	v.SetDefault("observability.trace_exporter", "stdout")

	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
}
