package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host               string   `mapstructure:"host"`
	Port               int      `mapstructure:"port"`
	Mode               string   `mapstructure:"mode"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute"` // 0 disables
	RateLimitPerHour   int      `mapstructure:"rate_limit_per_hour"`   // 0 disables
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_seconds"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
func (s *ServerConfig) ShutdownTimeout() time.Duration {
	if s.ShutdownTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// IsDebug reports whether the server runs in debug mode.
func (s *ServerConfig) IsDebug() bool {
	return s.Mode == "debug"
}

type DatabaseConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Username          string `mapstructure:"username"`
	Password          string `mapstructure:"password"`
	Database          string `mapstructure:"database"`
	MaxIdleConns      int    `mapstructure:"max_idle_conns"`
	MaxOpenConns      int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`
	MigrationStrategy string `mapstructure:"migration_strategy"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ScheduleConfig holds resolver and cache tuning.
type ScheduleConfig struct {
	DailyTTLSeconds   int    `mapstructure:"daily_ttl_seconds"`
	RpmListTTLSeconds int    `mapstructure:"rpm_list_ttl_seconds"`
	KeyPrefix         string `mapstructure:"key_prefix"`
}

// DailyTTL is the lifetime of a cached daily schedule.
func (s ScheduleConfig) DailyTTL() time.Duration {
	if s.DailyTTLSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(s.DailyTTLSeconds) * time.Second
}

// RpmListTTL is the lifetime of a cached RPM list page.
func (s ScheduleConfig) RpmListTTL() time.Duration {
	if s.RpmListTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.RpmListTTLSeconds) * time.Second
}
