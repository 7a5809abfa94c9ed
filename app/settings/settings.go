// Package settings persists user-tunable configuration as a yaml file next
// to the user's other configuration. Unknown or ill-typed keys are ignored;
// reading always succeeds by falling back to defaults.
package settings

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yml"

// GetEffectiveSettings returns the effective settings (defaults overlaid
// with file overrides if any). If anything goes wrong, it returns defaults.
func GetEffectiveSettings() Settings {
	settings := defaultSettings
	path, err := settingsFilePath()
	if err != nil {
		return settings
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	return overlay(settings, b)
}

// LoadFrom returns the defaults overlaid with the yaml file at path. Unlike
// GetEffectiveSettings, a missing or unreadable file is reported: an
// explicitly named settings file is expected to exist.
func LoadFrom(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return defaultSettings, err
	}
	return overlay(defaultSettings, b), nil
}

// overlay applies yaml overrides from b onto base, key by key, skipping
// anything of the wrong type.
func overlay(base Settings, b []byte) Settings {
	settings := base

	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return settings
	}
	if v, ok := m["output_dir"]; ok {
		if vs, oks := v.(string); oks && vs != "" {
			settings.OutputDir = vs
		}
	}
	if v, ok := m["ollama_url"]; ok {
		if vs, oks := v.(string); oks && vs != "" {
			settings.OllamaURL = vs
		}
	}
	if v, ok := m["ollama_model"]; ok {
		if vs, oks := v.(string); oks && vs != "" {
			settings.OllamaModel = vs
		}
	}
	if v, ok := m["advisory_enabled"]; ok {
		if vb, okb := v.(bool); okb {
			settings.AdvisoryEnabled = vb
		}
	}
	if v, ok := m["advisory_timeout_seconds"]; ok {
		if vi, oki := v.(int); oki && vi > 0 {
			settings.AdvisoryTimeoutSeconds = vi
		}
	}
	if v, ok := m["cache_max_entries"]; ok {
		if vi, oki := v.(int); oki && vi > 0 {
			settings.CacheMaxEntries = vi
		}
	}
	if v, ok := m["instance_id"]; ok {
		if vs, oks := v.(string); oks {
			settings.InstanceID = vs
		}
	}
	return settings
}

// Save writes the settings to the settings file, assigning an instance ID
// on first save.
func Save(settings Settings) error {
	if settings.InstanceID == "" {
		settings.InstanceID = uuid.New().String()
	}
	path, err := settingsFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func settingsFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dxfgen", settingsFileName), nil
}
