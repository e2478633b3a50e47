package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	appDirName        = "verse-tui"
	configFileName    = "config.toml"
	DefaultIndexWidth = 28
	MinIndexWidth     = 12
	DefaultThemeName  = "catppuccin-mocha"
)

var ErrUnknownFormat = errors.New("unknown config format")

type Config struct {
	Corpus       string `toml:"corpus" yaml:"corpus"`
	Theme        string `toml:"theme" yaml:"theme"`
	IndexWidth   int    `toml:"index_width" yaml:"index_width"`
	VerseNumbers *bool  `toml:"verse_numbers" yaml:"verse_numbers"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	show := true
	return Config{
		Theme:        DefaultThemeName,
		IndexWidth:   DefaultIndexWidth,
		VerseNumbers: &show,
	}
}

// ShowVerseNumbers reports whether the reader prefixes lines with the verse number.
func (c Config) ShowVerseNumbers() bool {
	return c.VerseNumbers == nil || *c.VerseNumbers
}

// DefaultPath returns $XDG_CONFIG_HOME/verse-tui/config.toml, falling back
// to the platform config directory and then ~/.config.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, configFileName), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appDirName, configFileName), nil
}

// Load reads the config at path. An empty path means the default location,
// where a missing file is not an error. The format follows the extension:
// .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	normalize(&cfg, filepath.Dir(path))
	return cfg, nil
}

// ClampIndexWidth maps 0 to the default width and raises anything below
// MinIndexWidth to it.
func ClampIndexWidth(w int) int {
	if w == 0 {
		return DefaultIndexWidth
	}
	return max(w, MinIndexWidth)
}

func normalize(cfg *Config, baseDir string) {
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if cfg.Theme == "" {
		cfg.Theme = DefaultThemeName
	}
	cfg.IndexWidth = ClampIndexWidth(cfg.IndexWidth)

	cfg.Corpus = expandPath(strings.TrimSpace(cfg.Corpus))
	if cfg.Corpus != "" && !filepath.IsAbs(cfg.Corpus) {
		cfg.Corpus = filepath.Join(baseDir, cfg.Corpus)
	}
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
