package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера
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

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-настройки бронирования.
// OpenTime/CloseTime задают окно поиска слотов (границы рабочего дня
// бизнеса), а не рабочие часы отдельного консультанта.
type BookingConfig struct {
	OpenTime                string `toml:"open_time"`  // "08:00"
	CloseTime               string `toml:"close_time"` // "18:00"
	Timezone                string `toml:"timezone"`   // IANA, например "Europe/Berlin"
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
	DefaultStrategy         string `toml:"default_strategy"`
}

// Window возвращает провалидированное окно рабочего дня
func (b *BookingConfig) Window() (open, close types.TimeString, err error) {
	open, err = types.NewTimeStringFromString(b.OpenTime)
	if err != nil {
		return "", "", fmt.Errorf("config: invalid open_time %q: %w", b.OpenTime, err)
	}
	close, err = types.NewTimeStringFromString(b.CloseTime)
	if err != nil {
		return "", "", fmt.Errorf("config: invalid close_time %q: %w", b.CloseTime, err)
	}
	if !open.IsBefore(close) {
		return "", "", fmt.Errorf("config: open_time %s must be before close_time %s", open, close)
	}
	return open, close, nil
}

// Location возвращает таймзону бизнеса
func (b *BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", b.Timezone, err)
	}
	return loc, nil
}

// Load загружает конфигурацию из toml-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Booking.OpenTime == "" {
		cfg.Booking.OpenTime = "08:00"
	}
	if cfg.Booking.CloseTime == "" {
		cfg.Booking.CloseTime = "18:00"
	}
	if _, _, err := cfg.Booking.Window(); err != nil {
		return nil, err
	}
	if _, err := cfg.Booking.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
