// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Content ContentConfig `toml:"content"`
	Drill   DrillConfig   `toml:"drill"`
	Audio   AudioConfig   `toml:"audio"`
	Log     LogConfig     `toml:"log"`
}

// ContentConfig locates the reference texts and vocabulary.
type ContentConfig struct {
	Dir *string `toml:"dir"`
}

// DrillConfig maps vocabulary drill defaults.
type DrillConfig struct {
	Chapter     *string `toml:"chapter"`
	Direction   *string `toml:"direction"`
	Shuffle     *bool   `toml:"shuffle"`
	ReviewFirst *bool   `toml:"review-first"`
	Target      *string `toml:"target"`
}

// AudioConfig maps playback settings.
type AudioConfig struct {
	Player *string `toml:"player"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
	File   *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written by `seefunk config` when no config exists yet.
const Template = `# seefunk configuration

[content]
# dir = "~/.local/share/seefunk/content"

[drill]
# chapter = "Alle"
# direction = "de2en"   # or "en2de"
# shuffle = true
# review-first = false
# target = "20"         # or "all"

[audio]
# player = "mpv --no-video --really-quiet"

[log]
# level = "info"
# format = "text"       # or "json"
# file = "~/.local/share/seefunk/seefunk.log"
`

// EnsureFile creates path with the template if it does not exist yet.
func EnsureFile(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
