package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserPath is where Save writes: FileName inside ConfigDir.
func UserPath() string {
	return filepath.Join(ConfigDir(), FileName)
}

// Marshal encodes the config as YAML, the format Load reads.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(UserPath())
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
