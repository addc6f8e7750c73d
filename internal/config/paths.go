package config

import (
	"os"
	"path/filepath"
)

// GetGitdeckHome returns GITDECK_HOME or ~/.gitdeck default
func GetGitdeckHome() string {
	home := os.Getenv("GITDECK_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".gitdeck"
		}
		return filepath.Join(homeDir, ".gitdeck")
	}
	return ExpandPath(home)
}

// GetDBPath returns $GITDECK_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetGitdeckHome(), "state.db")
}

// GetSettingsPath returns $GITDECK_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetGitdeckHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
