package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// document is the serialized layout. Durations are written as strings.
type document struct {
	API struct {
		BaseURL           string  `yaml:"base_url" json:"base_url"`
		Timeout           string  `yaml:"timeout" json:"timeout"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		SkipVersionCheck  bool    `yaml:"skip_version_check" json:"skip_version_check"`
	} `yaml:"api" json:"api"`
	Cache struct {
		Enabled  bool   `yaml:"enabled" json:"enabled"`
		TTL      string `yaml:"ttl" json:"ttl"`
		Coalesce bool   `yaml:"coalesce" json:"coalesce"`
	} `yaml:"cache" json:"cache"`
	Dashboard struct {
		ProfileID       int    `yaml:"profile_id" json:"profile_id"`
		RefreshInterval string `yaml:"refresh_interval" json:"refresh_interval"`
	} `yaml:"dashboard" json:"dashboard"`
	Logging struct {
		Level  string `yaml:"level" json:"level"`
		Format string `yaml:"format" json:"format"`
		File   string `yaml:"file,omitempty" json:"file,omitempty"`
	} `yaml:"logging" json:"logging"`
}

func (c *Config) toDocument() document {
	var d document
	d.API.BaseURL = c.API.BaseURL
	d.API.Timeout = c.API.Timeout.String()
	d.API.RequestsPerSecond = c.API.RequestsPerSecond
	d.API.SkipVersionCheck = c.API.SkipVersionCheck
	d.Cache.Enabled = c.Cache.Enabled
	d.Cache.TTL = c.Cache.TTL.String()
	d.Cache.Coalesce = c.Cache.Coalesce
	d.Dashboard.ProfileID = c.Dashboard.ProfileID
	d.Dashboard.RefreshInterval = c.Dashboard.RefreshInterval.String()
	d.Logging.Level = c.Logging.Level
	d.Logging.Format = c.Logging.Format
	d.Logging.File = c.Logging.File
	return d
}

// MarshalJSON renders the configuration with durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toDocument())
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c.toDocument())
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, creating parent directories.
// The write goes through a temp file and rename.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(path), 0750); mkErr != nil {
		return fmt.Errorf("creating config directory: %w", mkErr)
	}

	tempPath := path + ".tmp"
	if writeErr := os.WriteFile(tempPath, data, 0600); writeErr != nil {
		return fmt.Errorf("writing config file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, path); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming config file: %w", renameErr)
	}
	return nil
}
