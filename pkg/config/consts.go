package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "PAYSECURE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "PAYSECURE_APP_ENV"
	EnvPort     = "PAYSECURE_APP_PORT"
	EnvDBDSN    = "PAYSECURE_DB_DSN"
	EnvDBHost   = "PAYSECURE_DB_HOST"
	EnvDBUser   = "PAYSECURE_DB_USER"
	EnvDBName   = "PAYSECURE_DB_NAME"
	EnvRedisURL = "PAYSECURE_REDIS_URL"

	EnvJWTSecret              = "PAYSECURE_JWT_SECRET"
	EnvJWTIssuer              = "PAYSECURE_JWT_ISSUER"
	EnvJWTExpMins             = "PAYSECURE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "PAYSECURE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
