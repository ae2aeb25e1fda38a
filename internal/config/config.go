// Package config handles reading and writing ~/.querybox/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	Server    ServerConfig    `yaml:"server"`
	Interview InterviewConfig `yaml:"interview"`
	Export    ExportConfig    `yaml:"export"`
	History   HistoryConfig   `yaml:"history"`
}

// ServerConfig points the client at the question/scoring engine.
type ServerConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// InterviewConfig holds the defaults offered on the setup screen.
type InterviewConfig struct {
	Role      string `yaml:"role"`
	Mode      string `yaml:"mode"` // "technical" | "behavioral" | "system-design"
	Questions int    `yaml:"questions"`
	PacingMs  int    `yaml:"pacing_ms"` // delay before revealing the next question
}

// ExportConfig controls where summary artifacts are written.
type ExportConfig struct {
	Dir string `yaml:"dir"` // empty means the current working directory
}

// HistoryConfig controls the completed-session store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"` // empty means <config dir>/history.db
}

const configDir = ".querybox"
const configFile = "config.yaml"

// Dir returns the querybox config directory under the user's home directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ReadConfig reads <dir>/.querybox/config.yaml.
// dir is the parent of the config directory (normally the home directory).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to <dir>/.querybox/config.yaml.
// Creates the config directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			URL:            "http://127.0.0.1:5001",
			TimeoutSeconds: 30,
		},
		Interview: InterviewConfig{
			Role:      "Software Engineer",
			Mode:      "technical",
			Questions: 5,
			PacingMs:  1500,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}
