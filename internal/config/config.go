package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ivlev/beat2frame/internal/export"
	"github.com/ivlev/beat2frame/internal/frames"
)

// SettingsEnv overrides the settings file location.
const SettingsEnv = "BEAT2FRAME_SETTINGS"

type Config struct {
	SettingsPath string
	OutputDir    string
	ScriptName   string
	RowCount     int
	Format       string
	Workers      int
	ShowStats    bool
	BuildVersion string
}

// Default returns the configuration used before flags are applied.
func Default() *Config {
	return &Config{
		SettingsPath: SettingsPath(),
		OutputDir:    "output",
		ScriptName:   export.DefaultName,
		RowCount:     frames.DefaultRowCount,
		Format:       "text",
		Workers:      runtime.NumCPU(),
		BuildVersion: "dev",
	}
}

// SettingsPath returns $BEAT2FRAME_SETTINGS, or settings.json under the
// user config directory, or ./.beat2frame.json when there is none.
func SettingsPath() string {
	if v := os.Getenv(SettingsEnv); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".beat2frame.json"
	}
	return filepath.Join(dir, "beat2frame", "settings.json")
}
