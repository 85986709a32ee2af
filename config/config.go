// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the captcha service. Defaults match a
// 400×200 canvas with a 120-second challenge lifetime.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":9000"`
	APIPrefix  string `env:"API_PREFIX" envDefault:"/api"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	ImagesDir string `env:"IMAGES_DIR" envDefault:"static/images"`
	FontsDir  string `env:"FONTS_DIR" envDefault:"static/fonts"`
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`

	CaptchaWidth      int           `env:"CAPTCHA_WIDTH" envDefault:"400"`
	CaptchaHeight     int           `env:"CAPTCHA_HEIGHT" envDefault:"200"`
	CaptchaExpiration time.Duration `env:"CAPTCHA_EXPIRATION" envDefault:"120s"`
	MinFontSize       int           `env:"MIN_FONT_SIZE" envDefault:"30"`
	MaxFontSize       int           `env:"MAX_FONT_SIZE" envDefault:"45"`
	MaxRotationAngle  int           `env:"MAX_ROTATION_ANGLE" envDefault:"30"`
	ClickTolerance    int           `env:"CLICK_TOLERANCE" envDefault:"30"`
	BaseFontSize      int           `env:"BASE_FONT_SIZE" envDefault:"36"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
