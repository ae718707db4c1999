// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "go_health_learning"
	AppVersion = "0.3.0"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultDatabaseDriver = DriverPostgres
	DefaultAuthEnabled    = true
)
