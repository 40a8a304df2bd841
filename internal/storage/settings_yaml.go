package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"runwalk/internal/ui/settings"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	RunSeconds  int    `yaml:"run_seconds"`
	WalkSeconds int    `yaml:"walk_seconds"`
	Cycles      int    `yaml:"cycles"`
	CadenceSPM  int    `yaml:"cadence_steps_per_minute"`
	BeatSound   string `yaml:"beat_sound"`
	Muted       bool   `yaml:"muted"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
// Out-of-range values are clamped, never rejected.
func LoadSettings(appName string) (settings.Settings, error) {
	loaded := settings.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return loaded, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loaded, nil
		}
		return loaded, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return loaded, fmt.Errorf("parse settings yaml: %w", err)
	}

	return applyYamlSettings(loaded, fileData), nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, saved settings.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		RunSeconds:  saved.RunSeconds,
		WalkSeconds: saved.WalkSeconds,
		Cycles:      saved.Cycles,
		CadenceSPM:  saved.CadenceSPM,
		BeatSound:   saved.BeatSound,
		Muted:       saved.Muted,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(loaded settings.Settings, fileData yamlSettings) settings.Settings {
	if fileData.RunSeconds > 0 {
		loaded.RunSeconds = fileData.RunSeconds
	}
	if fileData.WalkSeconds > 0 {
		loaded.WalkSeconds = fileData.WalkSeconds
	}
	if fileData.Cycles > 0 {
		loaded.Cycles = fileData.Cycles
	}
	if fileData.CadenceSPM > 0 {
		loaded.CadenceSPM = fileData.CadenceSPM
	}
	if fileData.BeatSound != "" {
		loaded.BeatSound = fileData.BeatSound
	}
	loaded.Muted = fileData.Muted
	return loaded.Normalize()
}
