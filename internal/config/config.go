// config реализует конфигурацию announcements-service: загрузка из YAML/ENV
// с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Metrics  MetricsConfig `yaml:"metrics"`
	DB       DBConfig      `yaml:"db"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"5s"`
}

// HTTPConfig — публичный REST-сервер объявлений.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50095"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// MetricsConfig — отдельный HTTP для health/metrics.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"50096"`
}

// Addr возвращает адрес в формате host:port.
func (m MetricsConfig) Addr() string {
	return net.JoinHostPort(m.Host, m.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// LimitsConfig — лимиты постраничной выдачи.
// limit=0 в запросе -> берём Default; верхняя граница — Max.
type LimitsConfig struct {
	Default int32 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	Max     int32 `yaml:"max"     env:"MAX_LIMIT"     env-default:"100"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}

	if c.Limits.Max < c.Limits.Default {
		return fmt.Errorf("limits.max must be >= limits.default")
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	return nil
}
