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
	JWT          JWTConfig
	Password     PasswordConfig
	Wallet       WalletConfig
	Snapshot     SnapshotConfig
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
	Env          string `envconfig:"PAYSECURE_APP_ENV" required:"true"`
	Port         string `envconfig:"PAYSECURE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PAYSECURE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PAYSECURE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PAYSECURE_DB_DSN"`
	Driver string `envconfig:"PAYSECURE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PAYSECURE_DB_HOST"`
	LegacyPort     int    `envconfig:"PAYSECURE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PAYSECURE_DB_USER"`
	LegacyPassword string `envconfig:"PAYSECURE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PAYSECURE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PAYSECURE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PAYSECURE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PAYSECURE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PAYSECURE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PAYSECURE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// LockTimeout bounds row-lock waits so contended balance updates fail
	// fast instead of queueing behind each other.
	LockTimeout time.Duration `envconfig:"PAYSECURE_DB_LOCK_TIMEOUT" default:"3s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PAYSECURE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PAYSECURE_REDIS_ADDR"`
	Password     string        `envconfig:"PAYSECURE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PAYSECURE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PAYSECURE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PAYSECURE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PAYSECURE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PAYSECURE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PAYSECURE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PAYSECURE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PAYSECURE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PAYSECURE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PAYSECURE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PAYSECURE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PAYSECURE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PAYSECURE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PAYSECURE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PAYSECURE_ARGON_KEY_LEN" default:"32"`
}

// WalletConfig carries the funding amounts granted outside of normal money
// movement. Registration grants are the only way value enters the system in
// production; test funds are gated to non-prod environments.
type WalletConfig struct {
	GrantCoins     int64 `envconfig:"PAYSECURE_GRANT_COINS" default:"1000"`
	GrantCashCents int64 `envconfig:"PAYSECURE_GRANT_CASH_CENTS" default:"100000"`

	TestFundCoins     int64 `envconfig:"PAYSECURE_TEST_FUND_COINS" default:"500"`
	TestFundCashCents int64 `envconfig:"PAYSECURE_TEST_FUND_CASH_CENTS" default:"50000"`
}

type SnapshotConfig struct {
	Namespace string        `envconfig:"PAYSECURE_SNAPSHOT_NAMESPACE" default:"paysecure"`
	TTL       time.Duration `envconfig:"PAYSECURE_SNAPSHOT_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PAYSECURE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PAYSECURE_AUTO_MIGRATE" default:"false"`
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
