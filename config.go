package almaclient

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the client configuration. Values come from a YAML file with
// environment variable overrides; the API key is a secret and must come from
// the environment only (yaml:"-").
type Config struct {
	// BaseURL is the regional Alma API gateway.
	BaseURL string `yaml:"base_url" env:"ALMA_BASE_URL" env-default:"https://api-na.hosted.exlibrisgroup.com/almaws/v1"`

	// APIKey authorizes every request. Secret - not in YAML.
	APIKey string `yaml:"-" env:"ALMA_API_KEY"`

	// Timeout bounds each HTTP round trip.
	Timeout time.Duration `yaml:"timeout" env:"ALMA_TIMEOUT" env-default:"30s"`
}

// LoadConfig reads configuration from the given YAML file with environment
// variable overrides. A missing file is not an error; the environment alone
// can configure the client.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	err := cleanenv.ReadConfig(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if cfg.APIKey == "" {
		return nil, errors.New("ALMA_API_KEY is not set")
	}
	return cfg, nil
}
