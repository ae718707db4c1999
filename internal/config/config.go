// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // "postgres" or "sqlite"
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type LearningConfig struct {
	// セッション日付の区切りに使うタイムゾーン (空ならサーバーのローカル時刻)
	Timezone string `mapstructure:"timezone"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Learning LearningConfig `mapstructure:"learning"`
}

var Cfg Config

// Location は learning.timezone を解決します。
func (c *Config) Location() (*time.Location, error) {
	if c.Learning.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Learning.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid learning.timezone %q: %w", c.Learning.Timezone, err)
	}
	return loc, nil
}

func LoadConfig(path string) error {
	// .env があれば先に読み込む (本番では環境変数を直接使う)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables.")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP") // 例: APP_DATABASE_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if c.Auth.Enabled && c.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is required when auth.enabled is true")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
