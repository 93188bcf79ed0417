package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, TTLs, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Security SecurityConfig
	Store    StoreConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	DB        int           `envconfig:"REDIS_DB" default:"0"`
	CartTTL   time.Duration `envconfig:"CART_TTL" default:"168h"`
	LeaseTTL  time.Duration `envconfig:"CART_LEASE_TTL" default:"5s"`
	LeaseWait time.Duration `envconfig:"CART_LEASE_WAIT" default:"2s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-CSRF-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/London"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type SecurityConfig struct {
	TokenSecret     string        `envconfig:"TOKEN_SECRET" required:"true"`
	SessionDuration time.Duration `envconfig:"SESSION_DURATION" default:"168h"`
	CSRFDuration    time.Duration `envconfig:"CSRF_DURATION" default:"24h"`
	CookieDomain    string        `envconfig:"COOKIE_DOMAIN" default:""`
	CookieSecure    bool          `envconfig:"COOKIE_SECURE" default:"false"`
	CookieSameSite  string        `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

type StoreConfig struct {
	CheckoutURL      string `envconfig:"STORE_CHECKOUT_URL" default:"/checkout"`
	PlaceholderImage string `envconfig:"STORE_PLACEHOLDER_IMAGE" default:"https://via.placeholder.com/60x60/f3f4f6/9ca3af?text=No+Image"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr:      "localhost:16380",
			DB:        0,
			CartTTL:   time.Hour,
			LeaseTTL:  5 * time.Second,
			LeaseWait: 2 * time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/London",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Security: SecurityConfig{
			TokenSecret:     "test-secret-key",
			SessionDuration: time.Hour,
			CSRFDuration:    time.Hour,
			CookieSameSite:  "Lax",
		},
		Store: StoreConfig{
			CheckoutURL:      "/checkout",
			PlaceholderImage: "https://via.placeholder.com/60x60/f3f4f6/9ca3af?text=No+Image",
		},
	}
}
