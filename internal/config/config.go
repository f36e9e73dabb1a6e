package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	TelegramToken     string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminTelegramID   int64   `envconfig:"ADMIN_TELEGRAM_ID" required:"true"`
	DatabasePath      string  `envconfig:"DATABASE_PATH" default:"bot_database.db"`
	LogLevel          string  `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr          string  `envconfig:"HTTP_ADDR" default:":8080"`
	JWTSecret         string  `envconfig:"JWT_SECRET" default:""`
	DashboardPassword string  `envconfig:"DASHBOARD_PASSWORD" default:""`
	NotifyRate        float64 `envconfig:"NOTIFY_RATE" default:"1"`
	NotifyBurst       int     `envconfig:"NOTIFY_BURST" default:"5"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DashboardEnabled reports whether the HTTP dashboard can be served.
// Both the signing secret and the admin password must be configured.
func (c *Config) DashboardEnabled() bool {
	return c.JWTSecret != "" && c.DashboardPassword != ""
}
