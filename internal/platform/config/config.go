package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MEDASSIST"

// Config agrupa toda la configuración del proceso.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	App           AppConfig           `mapstructure:"app"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // segundos
	WriteTimeout int `mapstructure:"write_timeout"` // segundos
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
}

type StorageConfig struct {
	Driver      string `mapstructure:"driver"` // memory | sqlite | badger | postgres
	SQLitePath  string `mapstructure:"sqlite_path"`
	BadgerPath  string `mapstructure:"badger_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type ScheduleConfig struct {
	MaxDosesPerDay   int `mapstructure:"max_doses_per_day"`
	MaxTreatmentDays int `mapstructure:"max_treatment_days"`
}

type NotificationsConfig struct {
	Channel        string `mapstructure:"channel"` // log | webhook | telegram
	WebhookURL     string `mapstructure:"webhook_url"`
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID int64  `mapstructure:"telegram_chat_id"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"

	ChannelLog      = "log"
	ChannelWebhook  = "webhook"
	ChannelTelegram = "telegram"
)

// Load lee defaults, luego el archivo (si configPath no está vacío) y por último
// variables de entorno MEDASSIST_* (p.ej. MEDASSIST_STORAGE_DRIVER).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		configPath = os.Getenv(envPrefix + "_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5)
	v.SetDefault("server.write_timeout", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("app.name", "medassist")
	v.SetDefault("app.timezone", "Local")

	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite_path", "./data/medassist.db")
	v.SetDefault("storage.badger_path", "./data/badger")
	v.SetDefault("storage.postgres_dsn", "")

	v.SetDefault("schedule.max_doses_per_day", 24)
	v.SetDefault("schedule.max_treatment_days", 365)

	v.SetDefault("notifications.channel", ChannelLog)
	v.SetDefault("notifications.webhook_url", "")
	v.SetDefault("notifications.telegram_token", "")
	v.SetDefault("notifications.telegram_chat_id", 0)
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}

	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("app.timezone: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverBadger:
	case DriverPostgres:
		if strings.TrimSpace(cfg.Storage.PostgresDSN) == "" {
			return fmt.Errorf("storage.postgres_dsn is required for driver %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}

	if cfg.Schedule.MaxDosesPerDay < 1 || cfg.Schedule.MaxDosesPerDay > 24*60 {
		return fmt.Errorf("schedule.max_doses_per_day out of range: %d", cfg.Schedule.MaxDosesPerDay)
	}
	if cfg.Schedule.MaxTreatmentDays < 1 {
		return fmt.Errorf("schedule.max_treatment_days must be >= 1")
	}

	cfg.Notifications.Channel = strings.ToLower(strings.TrimSpace(cfg.Notifications.Channel))
	switch cfg.Notifications.Channel {
	case ChannelLog:
	case ChannelWebhook:
		if strings.TrimSpace(cfg.Notifications.WebhookURL) == "" {
			return fmt.Errorf("notifications.webhook_url is required for channel %q", ChannelWebhook)
		}
	case ChannelTelegram:
		if cfg.Notifications.TelegramToken == "" || cfg.Notifications.TelegramChatID == 0 {
			return fmt.Errorf("notifications.telegram_token and telegram_chat_id are required for channel %q", ChannelTelegram)
		}
	default:
		return fmt.Errorf("unknown notifications.channel %q", cfg.Notifications.Channel)
	}

	return nil
}

// Location resuelve app.timezone ("Local", "UTC" o nombre IANA).
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.App.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeout) * time.Second
}
