package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server        Server        `toml:"server"`
	Database      Database      `toml:"database"`
	Logs          Logs          `toml:"logs"`
	Metrics       Metrics       `toml:"metrics"`
	Redis         Redis         `toml:"redis"`
	NotifyService NotifyService `toml:"notify_service"`
	Schedule      Schedule      `toml:"schedule"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// Database настройки подключения к PostgreSQL
type Database struct {
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
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Redis настройки очереди напоминаний
type Redis struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	Concurrency int    `toml:"concurrency"` // воркеры обработки задач
}

// NotifyService настройки клиента шлюза уведомлений
type NotifyService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Schedule рабочая сетка слотов
// Глобальная для всех мастеров; время в формате HH:MM
type Schedule struct {
	OpenTime            string `toml:"open_time"`
	CloseTime           string `toml:"close_time"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	ReminderHoursBefore int    `toml:"reminder_hours_before"`
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Schedule.OpenTime == "" {
		c.Schedule.OpenTime = domain.DefaultOpenTime.String()
	}
	if c.Schedule.CloseTime == "" {
		c.Schedule.CloseTime = domain.DefaultCloseTime.String()
	}
	if c.Schedule.SlotDurationMinutes == 0 {
		c.Schedule.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Schedule.ReminderHoursBefore == 0 {
		c.Schedule.ReminderHoursBefore = 24
	}
	if c.Redis.Concurrency == 0 {
		c.Redis.Concurrency = 10
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func (c *Config) validate() error {
	openTime, err := types.NewTimeStringFromString(c.Schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("config: invalid schedule.open_time: %w", err)
	}

	closeTime, err := types.NewTimeStringFromString(c.Schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("config: invalid schedule.close_time: %w", err)
	}

	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("config: schedule.open_time %s must be before schedule.close_time %s", openTime, closeTime)
	}

	if c.Schedule.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		c.Schedule.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("config: schedule.slot_duration_minutes must be between %d and %d",
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return nil
}
