package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service. Values come from the
// environment (optionally seeded from .env) and fall back to the defaults
// set in Load.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	StorageEndpoint     string `mapstructure:"STORAGE_ENDPOINT"`
	StorageAccessKey    string `mapstructure:"STORAGE_ACCESS_KEY"`
	StorageSecretKey    string `mapstructure:"STORAGE_SECRET_KEY"`
	StorageBucket       string `mapstructure:"STORAGE_BUCKET"`
	StorageUseSSL       bool   `mapstructure:"STORAGE_USE_SSL"`
	StoragePublicURL    string `mapstructure:"STORAGE_PUBLIC_URL"`
	StoragePathPrefix   string `mapstructure:"STORAGE_PATH_PREFIX"`
	StorageCreateBucket bool   `mapstructure:"STORAGE_CREATE_BUCKET"`

	UploadMaxBodyBytes int64 `mapstructure:"UPLOAD_MAX_BODY_BYTES"`
	HomeMaxBodyBytes   int64 `mapstructure:"HOME_MAX_BODY_BYTES"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	NATSURL       string `mapstructure:"NATS_URL"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
}

// keys lists every setting so that viper.Unmarshal sees environment
// overrides for keys without a default.
var keys = []string{
	"SERVICE_NAME", "HTTP_PORT",
	"STORAGE_ENDPOINT", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY", "STORAGE_BUCKET",
	"STORAGE_USE_SSL", "STORAGE_PUBLIC_URL", "STORAGE_PATH_PREFIX", "STORAGE_CREATE_BUCKET",
	"UPLOAD_MAX_BODY_BYTES", "HOME_MAX_BODY_BYTES",
	"MONGO_URI", "MONGO_DATABASE", "REDIS_ADDRESS", "NATS_URL",
	"PROMETHEUS_METRICS_PORT", "OTEL_EXPORTER_OTLP_ENDPOINT", "LOG_LEVEL", "LOG_FORMAT",
}

// Load reads configuration. Missing storage settings are not an error here:
// the upload relay reports them on first use.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("SERVICE_NAME", "homes-service")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("STORAGE_USE_SSL", false)
	v.SetDefault("STORAGE_PATH_PREFIX", "homes")
	v.SetDefault("STORAGE_CREATE_BUCKET", false)
	v.SetDefault("UPLOAD_MAX_BODY_BYTES", 10*1024*1024)
	v.SetDefault("HOME_MAX_BODY_BYTES", 1<<20)
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "homes")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9094")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.StoragePathPrefix = strings.Trim(cfg.StoragePathPrefix, "/")
	return &cfg, nil
}

// MissingStorageSettings names the storage keys that are empty.
func (c *Config) MissingStorageSettings() []string {
	var missing []string
	if c.StorageEndpoint == "" {
		missing = append(missing, "STORAGE_ENDPOINT")
	}
	if c.StorageAccessKey == "" {
		missing = append(missing, "STORAGE_ACCESS_KEY")
	}
	if c.StorageSecretKey == "" {
		missing = append(missing, "STORAGE_SECRET_KEY")
	}
	if c.StorageBucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}
	return missing
}
