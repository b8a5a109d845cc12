package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI   UIConfig   `mapstructure:"ui" toml:"ui"`
	Keys KeysConfig `mapstructure:"keys" toml:"keys"`
	Log  LogConfig  `mapstructure:"log" toml:"log"`
}

// UIConfig holds terminal program settings.
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen" toml:"alt_screen"`
	Mouse     bool `mapstructure:"mouse" toml:"mouse"`
}

// KeysConfig holds the hotkeys bound to each button.
type KeysConfig struct {
	Toggle []string `mapstructure:"toggle" toml:"toggle"`
	Banana []string `mapstructure:"banana" toml:"banana"`
}

// LogConfig holds logging settings. An empty File discards log output,
// since the TUI owns the terminal.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

var levels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UI:   UIConfig{AltScreen: true, Mouse: true},
		Keys: KeysConfig{Toggle: []string{"t"}, Banana: []string{"b"}},
		Log:  LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/toggler/config.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "toggler", "config.toml"), nil
}

// Load reads configuration from path and env. Env var overrides use prefix
// TOGGLER_. An empty path looks for config.toml in the default config dir
// and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("ui.alt_screen", def.UI.AltScreen)
	v.SetDefault("ui.mouse", def.UI.Mouse)
	v.SetDefault("keys.toggle", def.Keys.Toggle)
	v.SetDefault("keys.banana", def.Keys.Banana)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "toggler"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TOGGLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate rejects unknown log levels and unusable key bindings.
func (c Config) Validate() error {
	if !levels[strings.ToLower(strings.TrimSpace(c.Log.Level))] {
		return fmt.Errorf("log.level %q: want one of trace, debug, info, warn, error", c.Log.Level)
	}
	toggle := cleanKeys(c.Keys.Toggle)
	banana := cleanKeys(c.Keys.Banana)
	if len(toggle) == 0 {
		return fmt.Errorf("keys.toggle: at least one key is required")
	}
	if len(banana) == 0 {
		return fmt.Errorf("keys.banana: at least one key is required")
	}
	seen := make(map[string]bool, len(toggle))
	for _, k := range toggle {
		seen[k] = true
	}
	for _, k := range banana {
		if seen[k] {
			return fmt.Errorf("keys: %q is bound to both toggle and banana", k)
		}
	}
	return nil
}

// WriteDefault writes the built-in configuration to path, creating the
// parent directory. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("# toggler configuration\n\n"); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(Default()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// NormalizeKey maps a configured key name to the form bubbletea reports.
// A lone " " is the space bar. Single letters keep their case so "T" stays
// distinct from "t".
func NormalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	k = strings.TrimSpace(k)
	if len(k) == 1 {
		return k
	}
	return strings.ReplaceAll(strings.ToLower(k), " ", "")
}

func cleanKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = NormalizeKey(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
