package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	PageToken    PageTokenConfig
	Upstream     UpstreamConfig
	Cart         CartConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LAPZONE_APP_ENV" required:"true"`
	Port         string `envconfig:"LAPZONE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LAPZONE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LAPZONE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LAPZONE_DB_DSN"`
	Driver string `envconfig:"LAPZONE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LAPZONE_DB_HOST"`
	LegacyPort     int    `envconfig:"LAPZONE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LAPZONE_DB_USER"`
	LegacyPassword string `envconfig:"LAPZONE_DB_PASSWORD"`
	LegacyName     string `envconfig:"LAPZONE_DB_NAME"`
	LegacySSLMode  string `envconfig:"LAPZONE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LAPZONE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LAPZONE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LAPZONE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LAPZONE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"LAPZONE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LAPZONE_REDIS_ADDR"`
	Password     string        `envconfig:"LAPZONE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LAPZONE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LAPZONE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LAPZONE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LAPZONE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LAPZONE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LAPZONE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PageTokenConfig configures the JWT the render layer mints for each page view.
// The token carries the user id and the anti-forgery token the upstream expects.
type PageTokenConfig struct {
	Secret            string `envconfig:"LAPZONE_PAGE_TOKEN_SECRET" required:"true"`
	Issuer            string `envconfig:"LAPZONE_PAGE_TOKEN_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LAPZONE_PAGE_TOKEN_EXPIRATION_MINUTES" default:"60"`
}

// TTL returns the page token lifetime.
func (p PageTokenConfig) TTL() time.Duration {
	if p.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(p.ExpirationMinutes) * time.Minute
}

// UpstreamConfig points at the legacy storefront endpoints the service proxies.
type UpstreamConfig struct {
	BaseURL          string        `envconfig:"LAPZONE_UPSTREAM_BASE_URL" required:"true"`
	Timeout          time.Duration `envconfig:"LAPZONE_UPSTREAM_TIMEOUT" default:"10s"`
	AddPath          string        `envconfig:"LAPZONE_UPSTREAM_ADD_PATH" default:"/cart/add/"`
	UpdatePath       string        `envconfig:"LAPZONE_UPSTREAM_UPDATE_PATH" default:"/cart/update/"`
	RemovePath       string        `envconfig:"LAPZONE_UPSTREAM_REMOVE_PATH" default:"/cart/remove/"`
	LikePathTemplate string        `envconfig:"LAPZONE_UPSTREAM_LIKE_PATH_TEMPLATE" default:"/shop/products/%d/like/"`
}

type CartConfig struct {
	MinQuantity int           `envconfig:"LAPZONE_CART_MIN_QUANTITY" default:"1"`
	MaxQuantity int           `envconfig:"LAPZONE_CART_MAX_QUANTITY" default:"10"`
	SessionTTL  time.Duration `envconfig:"LAPZONE_CART_SESSION_TTL" default:"30m"`
}

type RateLimitConfig struct {
	Window  time.Duration `envconfig:"LAPZONE_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"LAPZONE_RATE_LIMIT_IP_LIMIT" default:"60"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LAPZONE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
