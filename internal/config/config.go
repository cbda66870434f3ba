package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds server settings
type Config struct {
	ListenAddr  string `yaml:"listen_addr" json:"listen_addr"`   // HTTP listen address
	DatabaseURL string `yaml:"database_url" json:"database_url"` // postgres:// URL or path to a SQLite file

	// LLM settings
	AnthropicAPIKey string `yaml:"anthropic_api_key" json:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model" json:"anthropic_model"`

	// Repository host settings
	GitHubToken string `yaml:"github_token" json:"github_token"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	dbPath := "cockpit.db"
	if home != "" {
		logPath = filepath.Join(home, ".vibecockpit", "logs", "cockpit.log")
		dbPath = filepath.Join(home, ".vibecockpit", "cockpit.db")
	}

	return &Config{
		ListenAddr:      getEnv("COCKPIT_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", dbPath),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("COCKPIT_ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		GitHubToken:     getEnv("GITHUB_TOKEN", ""),
		LogLevel:        getEnv("COCKPIT_LOG_LEVEL", "INFO"),
		LogFile:         getEnv("COCKPIT_LOG_FILE", logPath),
		LogConsole:      getEnv("COCKPIT_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.vibecockpit/config.yaml
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".vibecockpit", "config.yaml")

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.vibecockpit/config.yaml
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".vibecockpit")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
