package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/contractpay-backend/internal/data/db"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/envutil"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr    string
	MetricsAddr string
	CORSOrigins []string

	DB          db.Config
	AutoMigrate bool
	// TxTimeout bounds one settlement or deposit transaction.
	TxTimeout time.Duration

	RedisAddr      string
	RedisPrefix    string
	ReportCacheTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	Otel observability.OtelConfig
}

// fileConfig is the CONFIG_FILE layout. Values seed the defaults that
// environment variables then override.
type fileConfig struct {
	HTTP struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"http"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Database struct {
		Driver      string        `yaml:"driver"`
		SQLitePath  string        `yaml:"sqlite_path"`
		AutoMigrate *bool         `yaml:"auto_migrate"`
		TxTimeout   time.Duration `yaml:"tx_timeout"`
		Postgres    struct {
			Host     string `yaml:"host"`
			Port     string `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Name     string `yaml:"name"`
			SSLMode  string `yaml:"sslmode"`
		} `yaml:"postgres"`
	} `yaml:"database"`
	Redis struct {
		Addr           string        `yaml:"addr"`
		Prefix         string        `yaml:"prefix"`
		ReportCacheTTL time.Duration `yaml:"report_cache_ttl"`
	} `yaml:"redis"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	Otel struct {
		Enabled     bool              `yaml:"enabled"`
		ServiceName string            `yaml:"service_name"`
		Environment string            `yaml:"environment"`
		Endpoint    string            `yaml:"endpoint"`
		Headers     map[string]string `yaml:"headers"`
		Insecure    bool              `yaml:"insecure"`
		SampleRatio float64           `yaml:"sample_ratio"`
	} `yaml:"otel"`
}

func defaultFileConfig() fileConfig {
	var fc fileConfig
	fc.HTTP.Addr = ":8080"
	fc.Database.Driver = "postgres"
	fc.Database.SQLitePath = "contractpay.db"
	fc.Database.TxTimeout = 5 * time.Second
	fc.Database.Postgres.Host = "localhost"
	fc.Database.Postgres.Port = "5432"
	fc.Database.Postgres.User = "postgres"
	fc.Database.Postgres.Name = "contractpay"
	fc.Database.Postgres.SSLMode = "disable"
	fc.Redis.Prefix = "contractpay"
	fc.Redis.ReportCacheTTL = 30 * time.Second
	fc.RateLimit.RPS = 20
	fc.RateLimit.Burst = 40
	fc.Otel.ServiceName = "contractpay"
	fc.Otel.Environment = "development"
	fc.Otel.SampleRatio = 1
	return fc
}

func readFileConfig(path string) (fileConfig, error) {
	fc := defaultFileConfig()
	path = strings.TrimSpace(path)
	if path == "" {
		return fc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func LoadConfig(log *logger.Logger) (Config, error) {
	fc, err := readFileConfig(envutil.String("CONFIG_FILE", "", log))
	if err != nil {
		return Config{}, err
	}

	autoMigrate := true
	if fc.Database.AutoMigrate != nil {
		autoMigrate = *fc.Database.AutoMigrate
	}

	headers := fc.Otel.Headers
	if raw := envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log); raw != "" {
		headers = observability.ParseHeaders(raw)
	}

	cors := fc.HTTP.CORSOrigins
	if raw := envutil.String("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		cors = splitList(raw)
	}

	return Config{
		HTTPAddr:    envutil.String("HTTP_ADDR", fc.HTTP.Addr, log),
		MetricsAddr: envutil.String("METRICS_ADDR", fc.Metrics.Addr, log),
		CORSOrigins: cors,
		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", fc.Database.Driver, log),
			SQLitePath: envutil.String("SQLITE_PATH", fc.Database.SQLitePath, log),
			Postgres: db.PostgresConfig{
				Host:     envutil.String("POSTGRES_HOST", fc.Database.Postgres.Host, log),
				Port:     envutil.String("POSTGRES_PORT", fc.Database.Postgres.Port, log),
				User:     envutil.String("POSTGRES_USER", fc.Database.Postgres.User, log),
				Password: envutil.String("POSTGRES_PASSWORD", fc.Database.Postgres.Password, log),
				Name:     envutil.String("POSTGRES_NAME", fc.Database.Postgres.Name, log),
				SSLMode:  envutil.String("POSTGRES_SSLMODE", fc.Database.Postgres.SSLMode, log),
			},
		},
		AutoMigrate:    envutil.Bool("DB_AUTO_MIGRATE", autoMigrate),
		TxTimeout:      envutil.Seconds("DB_TX_TIMEOUT", fc.Database.TxTimeout, log),
		RedisAddr:      envutil.String("REDIS_ADDR", fc.Redis.Addr, log),
		RedisPrefix:    envutil.String("REDIS_PREFIX", fc.Redis.Prefix, log),
		ReportCacheTTL: envutil.Seconds("REPORT_CACHE_TTL", fc.Redis.ReportCacheTTL, log),
		RateLimitRPS:   envutil.Float("RATE_LIMIT_RPS", fc.RateLimit.RPS, log),
		RateLimitBurst: envutil.Int("RATE_LIMIT_BURST", fc.RateLimit.Burst, log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", fc.Otel.Enabled),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", fc.Otel.ServiceName, log),
			Environment: envutil.String("APP_ENV", fc.Otel.Environment, log),
			Version:     envutil.String("APP_VERSION", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", fc.Otel.Endpoint, log),
			Headers:     headers,
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", fc.Otel.Insecure),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", fc.Otel.SampleRatio, log),
		},
	}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
