package model

// AppConfig holds application-wide preferences and the default cutline calibration.
type AppConfig struct {
	Cutline CutlineSettings `json:"cutline" toml:"cutline"`

	// Application preferences
	LogLevel        string   `json:"log_level" toml:"log_level"` // "debug", "info", "warn", "error"
	BackupEnabled   bool     `json:"backup_enabled" toml:"backup_enabled"`
	RecentSheetSets []string `json:"recent_sheet_sets" toml:"recent_sheet_sets"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultCutlineSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Cutline:         DefaultCutlineSettings(),
		LogLevel:        "info",
		BackupEnabled:   true,
		RecentSheetSets: []string{},
	}
}

// maxRecentSheetSets bounds the recent list kept in the config file.
const maxRecentSheetSets = 10

// AddRecent moves path to the front of the recent sheet set list.
func (c *AppConfig) AddRecent(path string) {
	recent := []string{path}
	for _, p := range c.RecentSheetSets {
		if p != path && len(recent) < maxRecentSheetSets {
			recent = append(recent, p)
		}
	}
	c.RecentSheetSets = recent
}
