// Package config loads voicefirst settings from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no configuration is present.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

// Config holds the application settings.
type Config struct {
	// APIBaseURL is the backend base URL including any path prefix.
	APIBaseURL string `yaml:"api_base_url"`

	// VoiceID overrides the backend's default synthesis voice.
	VoiceID string `yaml:"voice_id,omitempty"`

	// DraftPath is where the in-progress proposal draft is saved.
	DraftPath string `yaml:"draft_path,omitempty"`
}

// configPaths returns candidate config file locations in priority
// order: the working directory, then the user config directory.
func configPaths() []string {
	paths := []string{"voicefirst.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "voicefirst", "config.yml"))
	}
	return paths
}

// Load reads the first config file found, applies defaults, and then
// environment overrides (VOICEFIRST_API_BASE_URL, VOICEFIRST_VOICE_ID).
// A missing file is not an error; defaults are returned.
func Load() (*Config, error) {
	cfg := &Config{}

	for _, path := range configPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		break
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultBaseURL
	}
	if c.DraftPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.DraftPath = filepath.Join(home, ".config", "voicefirst", "draft.yml")
		} else {
			c.DraftPath = "draft.yml"
		}
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VOICEFIRST_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("VOICEFIRST_VOICE_ID"); v != "" {
		c.VoiceID = v
	}
}
