package config

const (
	EnvPrefix = "TAMBAK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	EnvDBDSN  = "TAMBAK_DB_DSN"
	EnvDBHost = "TAMBAK_DB_HOST"
	EnvDBUser = "TAMBAK_DB_USER"
	EnvDBName = "TAMBAK_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
