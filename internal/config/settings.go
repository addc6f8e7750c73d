package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Settings represents the structure of ~/.gitdeck/settings.json. Pointer
// fields distinguish "unset, use default" from an explicit false/zero.
type Settings struct {
	Debug          *bool  `json:"debug,omitempty"`
	HistoryLimit   *int   `json:"history_limit,omitempty"`
	MaxLogFiles    *int   `json:"max_log_files,omitempty"`
	NetworkTimeout *int   `json:"network_timeout_seconds,omitempty"`
	QueueSize      *int   `json:"queue_size,omitempty"`
	RegistryPath   string `json:"registry_path,omitempty"`
	WatchEnabled   *bool  `json:"watch_enabled,omitempty"`
}

// LoadSettings loads settings from $GITDECK_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.RegistryPath != "" {
		settings.RegistryPath = ExpandPath(settings.RegistryPath)
	}

	return &settings, nil
}

// SaveSettings saves settings to $GITDECK_HOME/settings.json
func SaveSettings(settings *Settings) error {
	if err := os.MkdirAll(GetGitdeckHome(), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(GetSettingsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// DebugEnabled resolves the debug flag with CLI override precedence
func (s *Settings) DebugEnabled(cliFlag bool) bool {
	if cliFlag {
		return true
	}
	return s.Debug != nil && *s.Debug
}

// ResolvedHistoryLimit returns the configured history limit or fallback
func (s *Settings) ResolvedHistoryLimit(fallback int) int {
	if s.HistoryLimit != nil && *s.HistoryLimit > 0 {
		return *s.HistoryLimit
	}
	return fallback
}

// ResolvedQueueSize returns the configured queue size or fallback
func (s *Settings) ResolvedQueueSize(fallback int) int {
	if s.QueueSize != nil && *s.QueueSize > 0 {
		return *s.QueueSize
	}
	return fallback
}

// ResolvedNetworkTimeout returns the configured transfer timeout or fallback
func (s *Settings) ResolvedNetworkTimeout(fallback time.Duration) time.Duration {
	if s.NetworkTimeout != nil && *s.NetworkTimeout > 0 {
		return time.Duration(*s.NetworkTimeout) * time.Second
	}
	return fallback
}

// ResolvedRegistryPath returns the configured registry DB path or the
// default under $GITDECK_HOME.
func (s *Settings) ResolvedRegistryPath() string {
	if s.RegistryPath != "" {
		return s.RegistryPath
	}
	return GetDBPath()
}

// WatchingEnabled defaults to true unless explicitly disabled
func (s *Settings) WatchingEnabled() bool {
	return s.WatchEnabled == nil || *s.WatchEnabled
}
