package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"gestic/internal/app/dsn"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string      `mapstructure:"service_host"`
	ServicePort int         `mapstructure:"service_port"`
	AutoMigrate bool        `mapstructure:"auto_migrate"`
	DB          DBConfig    `mapstructure:"db"`
	Log         LogConfig   `mapstructure:"log"`
	MinIO       MinIOConfig `mapstructure:"minio"`
	CORS        CORSConfig  `mapstructure:"cors"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MinIOConfig is optional: catalog export is disabled while Endpoint is empty.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Prefix    string `mapstructure:"prefix"`
}

func (m MinIOConfig) Enabled() bool { return m.Endpoint != "" }

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_host", "0.0.0.0")
	v.SetDefault("service_port", 8080)
	v.SetDefault("auto_migrate", true)

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("db.slow_threshold", 200*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "gestic-exports")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.prefix", "catalog")

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// NewConfig reads config/config.toml (or CONFIG_NAME) when present, then
// applies .env and environment overrides.
func NewConfig() (*Config, error) {
	return Load("config", ".")
}

// Load is NewConfig with explicit search paths for the config file.
// Environment variables use the key with dots replaced by underscores,
// for example MINIO_ENDPOINT or DB_MAX_OPEN_CONNS.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Info("no config file found, using defaults and environment")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if fromEnv := dsn.FromEnv(); fromEnv != "" {
		cfg.DB.DSN = fromEnv
	}

	log.Info("config parsed")

	return cfg, nil
}
