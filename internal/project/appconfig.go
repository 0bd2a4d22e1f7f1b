package project

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/SheetLink/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.sheetlink/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".sheetlink")
}

// ConfigPathEnv overrides the default config file location.
const ConfigPathEnv = "SHEETLINK_CONFIG"

// DefaultConfigPath returns the path for the application config file, taken
// from SHEETLINK_CONFIG when set.
func DefaultConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// SaveAppConfig persists an AppConfig to the given path as TOML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Keys missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if _, err := toml.Decode(string(data), &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentSheetSets is never nil
	if config.RecentSheetSets == nil {
		config.RecentSheetSets = []string{}
	}
	return config, nil
}
