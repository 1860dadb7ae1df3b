package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret       string `yaml:"jwt_secret"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
		AdminPassword   string `yaml:"admin_password"`
	} `yaml:"auth"`
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads configuration from the specified YAML file. Database URL
// and JWT secret can be overridden through the environment so they stay out
// of the config file in deployments.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if url := os.Getenv("BLOGAPI_DATABASE_URL"); url != "" {
		config.Database.URL = url
	}
	if secret := os.Getenv("BLOGAPI_JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}

	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}
	if config.Auth.TokenTTLMinutes <= 0 {
		config.Auth.TokenTTLMinutes = 30
	}

	return config, nil
}
