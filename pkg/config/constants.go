package config

const (
	EnvPrefix = "LAPZONE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "LAPZONE_APP_ENV"
	EnvPort   = "LAPZONE_APP_PORT"

	EnvDBDSN  = "LAPZONE_DB_DSN"
	EnvDBHost = "LAPZONE_DB_HOST"
	EnvDBUser = "LAPZONE_DB_USER"
	EnvDBName = "LAPZONE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
