package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/NastyaGoryachaya/termin-notifier/internal/consts"
	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
)

// Загрузка конфигурации: .env (godotenv) -> config.yaml (cleanenv) -> переменные окружения

type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Scheduler SchedulerConfig  `yaml:"scheduler"`
	Booking   BookingConfig    `yaml:"booking"`
	Telegram  TelegramConfig   `yaml:"telegram"`
	Storage   StorageConfig    `yaml:"storage"`
	Logger    LoggerConfig     `yaml:"logger"`
	Locations []LocationConfig `yaml:"locations"`
}

type ServerConfig struct {
	Enabled         bool          `yaml:"enabled" env:"HTTP_ENABLED" env-default:"true"`
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8088"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type SchedulerConfig struct {
	FetchIntervalMinutes          int           `yaml:"fetch_interval_minutes" env:"FETCH_INTERVAL_MINUTES" env-default:"5"`
	SessionRefreshIntervalMinutes int           `yaml:"session_refresh_interval_minutes" env:"SESSION_REFRESH_INTERVAL_MINUTES" env-default:"30"`
	ShutdownTimeout               time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// FetchInterval: интервал цикла опроса доступности
func (c SchedulerConfig) FetchInterval() time.Duration {
	return time.Duration(c.FetchIntervalMinutes) * time.Minute
}

// SessionRefreshInterval: интервал обновления сессии
func (c SchedulerConfig) SessionRefreshInterval() time.Duration {
	return time.Duration(c.SessionRefreshIntervalMinutes) * time.Minute
}

type BookingConfig struct {
	SessionURL      string        `yaml:"session_url" env:"BOOKING_SESSION_URL" env-default:"https://service.stuttgart.de/ssc-stuttgart/ws/sessions"`
	AvailabilityURL string        `yaml:"availability_url" env:"BOOKING_AVAILABILITY_URL" env-default:"https://service.stuttgart.de/ssc-stuttgart/ws/availabilities/dates"`
	Mandator        string        `yaml:"mandator" env-default:"32-42"`
	ServiceCode     int           `yaml:"service_code" env-default:"38"`
	UserAgent       string        `yaml:"user_agent" env-default:"Mozilla/5.0 (compatible; BuergerbueroMonitor/1.0)"`
	Timeout         time.Duration `yaml:"timeout" env-default:"10s"`
	SessionAttempts int           `yaml:"session_attempts" env-default:"5"`
	WindowDays      int           `yaml:"window_days" env-default:"30"`
	Timezone        string        `yaml:"timezone" env:"TZ_NAME" env-default:"Europe/Berlin"`
}

type TelegramConfig struct {
	Enabled         bool          `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"true"`
	Token           string        `yaml:"token" env:"TELEGRAM_TOKEN"`
	APIURL          string        `yaml:"api_url" env:"TELEGRAM_API_URL"` // пусто: api.telegram.org
	LongPollTimeout time.Duration `yaml:"long_poll_timeout" env-default:"5s"`
	SendTimeout     time.Duration `yaml:"send_timeout" env-default:"10s"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver" env:"STORAGE_DRIVER" env-default:"bolt"` // bolt|postgres|redis|memory
	Bolt     BoltConfig     `yaml:"bolt"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

type BoltConfig struct {
	Path    string        `yaml:"path" env:"BOLT_PATH" env-default:"subscribers.db"`
	Timeout time.Duration `yaml:"timeout" env-default:"1s"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"postgres"`
	DBName          string        `yaml:"dbname" env:"POSTGRES_DB" env-default:"termine"`
	SSLMode         string        `yaml:"sslmode" env-default:"disable"`
	Timeout         time.Duration `yaml:"timeout" env-default:"5s"`
	MaxConns        int32         `yaml:"max_conns" env-default:"10"`
	MinConns        int32         `yaml:"min_conns" env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"30m"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_URL" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
}

type LoggerConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`  // debug|info|warn|error
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"` // text|json
}

// LocationConfig: одна запись таблицы отслеживаемых офисов
type LocationConfig struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

func LoadConfig() (*Config, error) {
	// .env необязателен: в контейнере всё приходит из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", slog.String("err", err.Error()))
	}

	cfg := &Config{}

	configPath := fetchConfigPath()
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые cleanenv проверить не может
func (c *Config) Validate() error {
	if c.Scheduler.FetchIntervalMinutes <= 0 {
		return errors.New("fetch interval must be > 0")
	}
	if c.Scheduler.SessionRefreshIntervalMinutes <= 0 {
		return errors.New("session refresh interval must be > 0")
	}
	if c.Booking.SessionAttempts <= 0 {
		return errors.New("session attempts must be > 0")
	}
	if c.Booking.WindowDays <= 0 {
		return errors.New("window days must be > 0")
	}
	if c.Telegram.Enabled && strings.TrimSpace(c.Telegram.Token) == "" {
		return errors.New("telegram enabled but TELEGRAM_TOKEN is empty")
	}
	switch c.Storage.Driver {
	case "bolt", "postgres", "redis", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	seen := make(map[int]struct{}, len(c.Locations))
	for _, l := range c.Locations {
		if l.ID <= 0 {
			return fmt.Errorf("location id must be > 0, got %d", l.ID)
		}
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("location %d has empty name", l.ID)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("duplicate location id %d", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return nil
}

// TrackedLocations: локации в порядке конфигурации; без секции locations берётся таблица по умолчанию
func (c *Config) TrackedLocations() []domain.Location {
	if len(c.Locations) == 0 {
		out := make([]domain.Location, len(consts.DefaultLocations))
		copy(out, consts.DefaultLocations)
		return out
	}
	out := make([]domain.Location, 0, len(c.Locations))
	for _, l := range c.Locations {
		out = append(out, domain.Location{ID: l.ID, Name: l.Name})
	}
	return out
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
