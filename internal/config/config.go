package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Загрузка конфигурации из config.yaml через cleanenv

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Providers  ProvidersConfig  `yaml:"providers"`
	Backfill   BackfillConfig   `yaml:"backfill"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logger     LoggerConfig     `yaml:"logger"`
}

type AppConfig struct {
	Name    string `yaml:"name" env-default:"currency-rate-service"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env-default:"25s"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL" env-default:"info"` // debug|info|warn|error
	Format string `yaml:"format" env-default:"text"`                 // text|json
}

type PostgresConfig struct {
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"postgres"`
	DBName          string        `yaml:"dbname" env:"POSTGRES_DB" env-default:"mycurrency"`
	SSLMode         string        `yaml:"sslmode" env-default:"disable"`
	Timeout         time.Duration `yaml:"timeout" env-default:"5s"`
	MaxConns        int32         `yaml:"max_conns" env-default:"10"`
	MinConns        int32         `yaml:"min_conns" env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"30m"`
}

type MigrationsConfig struct {
	Enabled bool   `yaml:"enabled" env:"MIGRATIONS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"MIGRATIONS_PATH" env-default:"file://migrations"`
}

// ProvidersConfig — транспортные настройки провайдеров.
// Какой провайдер активен и его ключ хранятся в таблице providers.
type ProvidersConfig struct {
	CurrencyBeacon CurrencyBeaconConfig `yaml:"currencybeacon"`
}

type CurrencyBeaconConfig struct {
	BaseURL   string        `yaml:"base_url" env:"CURRENCYBEACON_BASE_URL" env-default:"https://api.currencybeacon.com/v1"`
	Timeout   time.Duration `yaml:"timeout" env-default:"15s"`
	UserAgent string        `yaml:"user_agent" env-default:"currency-rate-service/1.0"`
}

type BackfillConfig struct {
	YearsPerChunk int           `yaml:"years_per_chunk" env-default:"5"`
	SubmitDelay   time.Duration `yaml:"submit_delay" env-default:"200ms"`
	Workers       int           `yaml:"workers" env-default:"4"`
}

type SchedulerConfig struct {
	Enabled      bool          `yaml:"enabled" env-default:"false"`
	Interval     time.Duration `yaml:"interval" env-default:"1h"`
	LookbackDays int           `yaml:"lookback_days" env-default:"7"`
	Sources      []string      `yaml:"sources" env-default:"EUR,USD"`
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env-default:"batch-process-events"`
}

type RateLimitConfig struct {
	Enabled bool   `yaml:"enabled" env-default:"true"`
	Rate    string `yaml:"rate" env-default:"100-M"` // формат ulule: <limit>-<S|M|H|D>
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env-default:"true"`
	Path    string `yaml:"path" env-default:"/metrics"`
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(fetchConfigPath())
}

// LoadConfigFrom читает конфиг из файла (если путь задан) и окружения.
func LoadConfigFrom(configPath string) (*Config, error) {
	cfg := &Config{}

	// Try to read from config file if specified
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// Read from environment variables
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func fetchConfigPath() string {
	var res string
	flag.StringVar(&res, "c", "", "config file path")
	flag.Parse()
	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
