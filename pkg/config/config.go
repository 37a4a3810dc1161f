package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "LUMINA_APP_ENV"
	EnvPort      = "LUMINA_APP_PORT"
	EnvDBDSN     = "LUMINA_DB_DSN"
	EnvDBHost    = "LUMINA_DB_HOST"
	EnvDBUser    = "LUMINA_DB_USER"
	EnvDBName    = "LUMINA_DB_NAME"
	EnvRedisURL  = "LUMINA_REDIS_URL"
	EnvJWTSecret = "LUMINA_JWT_SECRET"
	EnvJWTIssuer = "LUMINA_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Reconcile    ReconcileConfig
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
	Env          string `envconfig:"LUMINA_APP_ENV" required:"true"`
	Port         string `envconfig:"LUMINA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUMINA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUMINA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUMINA_DB_DSN"`
	Driver string `envconfig:"LUMINA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUMINA_DB_HOST"`
	LegacyPort     int    `envconfig:"LUMINA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUMINA_DB_USER"`
	LegacyPassword string `envconfig:"LUMINA_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUMINA_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUMINA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUMINA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUMINA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUMINA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUMINA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUMINA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUMINA_REDIS_ADDR"`
	Password     string        `envconfig:"LUMINA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUMINA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUMINA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUMINA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUMINA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUMINA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUMINA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LUMINA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LUMINA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LUMINA_JWT_EXPIRATION_MINUTES" default:"720"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LUMINA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LUMINA_AUTO_MIGRATE" default:"false"`
}

// ReconcileConfig tunes the stock reconciliation worker.
type ReconcileConfig struct {
	Interval time.Duration `envconfig:"LUMINA_RECONCILE_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"LUMINA_RECONCILE_LOCK_TTL" default:"55m"`
	LockKey  string        `envconfig:"LUMINA_RECONCILE_LOCK_KEY" default:"lumina:lock:stock-sync"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
