// Package config loads the service configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dtgosha/est92-resort2/internal/catalog"
)

// AdminAccount is one authorized dashboard principal. PasswordHash is a
// bcrypt hash; plaintext credentials never appear in configuration.
type AdminAccount struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// SeriesConfig overrides one catalog series.
type SeriesConfig struct {
	Name      string   `yaml:"name"`
	UnitCents int64    `yaml:"unit_cents"`
	Rooms     []string `yaml:"rooms"`
}

type Config struct {
	API struct {
		Port int `yaml:"port"`
	} `yaml:"api"`

	Storage struct {
		Backend    string `yaml:"backend"` // memory, sqlite or redis
		Key        string `yaml:"key"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Pricing struct {
		ConferenceNightCents int64          `yaml:"conference_night_cents"`
		RestaurantCoverCents int64          `yaml:"restaurant_cover_cents"`
		Series               []SeriesConfig `yaml:"series"`
	} `yaml:"pricing"`

	Admins []AdminAccount `yaml:"admins"`

	Session struct {
		IdleMinutes int `yaml:"idle_minutes"`
	} `yaml:"session"`

	Notifications struct {
		Channel       string `yaml:"channel"` // mail, telegram or none
		Recipient     string `yaml:"recipient"`
		RecipientName string `yaml:"recipient_name"`

		Mail struct {
			BaseURL string `yaml:"base_url"`
			APIKey  string `yaml:"api_key"`
		} `yaml:"mail"`

		Telegram struct {
			BotToken string `yaml:"bot_token"`
			ChatID   int64  `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"notifications"`

	Snapshots struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"snapshots"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

// Load reads configuration from path, expanding ${ENV_VAR} placeholders.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.API.Port == 0 {
		cfg.API.Port = 8080
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "sqlite"
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = "est92_bookings"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/est92.db"
	}

	switch cfg.Storage.Backend {
	case "memory", "sqlite", "redis":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return &cfg, nil
}

// SessionIdle returns the admin session idle timeout.
func (c *Config) SessionIdle() time.Duration {
	if c.Session.IdleMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Session.IdleMinutes) * time.Minute
}

// SnapshotInterval returns how often the booking slot is snapshotted.
func (c *Config) SnapshotInterval() time.Duration {
	if c.Snapshots.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Snapshots.IntervalHours) * time.Hour
}

// Credentials returns the admin allow-list as a username -> hash map.
func (c *Config) Credentials() map[string]string {
	creds := make(map[string]string, len(c.Admins))
	for _, a := range c.Admins {
		creds[a.Username] = a.PasswordHash
	}
	return creds
}

// Catalog builds the room catalog, starting from the shipped defaults and
// applying any configured series overrides.
func (c *Config) Catalog() *catalog.Catalog {
	if len(c.Pricing.Series) == 0 {
		return catalog.Default()
	}

	prices := make(map[catalog.Series]int64)
	rooms := make(map[catalog.Series][]string)
	for _, s := range c.Pricing.Series {
		series := catalog.Series(s.Name)
		prices[series] = s.UnitCents
		rooms[series] = s.Rooms
	}
	return catalog.New(prices, rooms)
}
