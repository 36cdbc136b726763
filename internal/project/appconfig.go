// Package project persists application settings and saved layouts.
package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/quilting/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.quilting/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".quilting")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path, as YAML when the
// extension is .yaml or .yml and as JSON otherwise.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := marshal(path, config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := unmarshal(path, data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentLayouts is never nil
	if config.RecentLayouts == nil {
		config.RecentLayouts = []string{}
	}
	return config, nil
}
