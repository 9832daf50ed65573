package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Booking         BookingConfig         `toml:"booking"`
	CustomerService CustomerServiceConfig `toml:"customer_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig политика вычисления слотов
// Дефолтные рабочие часы и буфер на дорогу - явная конфигурация,
// а не скрытые константы: тесты переопределяют их детерминированно
type BookingConfig struct {
	DefaultOpenTime     string `toml:"default_open_time"`  // "06:00"
	DefaultCloseTime    string `toml:"default_close_time"` // "21:00"
	TravelBufferMinutes int    `toml:"travel_buffer_minutes"`
}

// CustomerServiceConfig настройки клиента сервиса профилей клиентов
type CustomerServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Logs.File == "" {
		c.Logs.File = "detailing-service.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Booking.DefaultOpenTime == "" {
		c.Booking.DefaultOpenTime = domain.DefaultOpenTime
	}
	if c.Booking.DefaultCloseTime == "" {
		c.Booking.DefaultCloseTime = domain.DefaultCloseTime
	}
	if c.Booking.TravelBufferMinutes == 0 {
		c.Booking.TravelBufferMinutes = domain.DefaultTravelBufferMinutes
	}
}

func (c *Config) validate() error {
	openTime, err := types.NewTimeStringFromString(c.Booking.DefaultOpenTime)
	if err != nil {
		return fmt.Errorf("booking.default_open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Booking.DefaultCloseTime)
	if err != nil {
		return fmt.Errorf("booking.default_close_time: %w", err)
	}
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("booking: default_open_time %s must be before default_close_time %s",
			openTime, closeTime)
	}
	if c.Booking.TravelBufferMinutes < 0 {
		return fmt.Errorf("booking: travel_buffer_minutes must not be negative")
	}
	return nil
}
