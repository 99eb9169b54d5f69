// Package config loads the tool configuration. Everything has a
// compiled-in default matching stock Sway + PipeWire paths; a TOML
// file under ~/.config/pwrate/ overrides selectively.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Source   Source   `toml:"source"`
	Pipewire Pipewire `toml:"pipewire"`
	Restart  Restart  `toml:"restart"`
	Notify   Notify   `toml:"notify"`
}

// Source locates the allowed-rate block in the window manager config.
type Source struct {
	Config      string `toml:"config"`
	StartMarker string `toml:"start_marker"`
	EndMarker   string `toml:"end_marker"`
	OptPrefix   string `toml:"options_prefix"`
}

type Pipewire struct {
	Conf string `toml:"conf"`
}

// Restart is the service-restart policy: one primary restart of Units,
// then Fallback steps in order. A failed optional step does not fail
// the plan.
type Restart struct {
	Units      []string `toml:"units"`
	Fallback   []Step   `toml:"fallback"`
	TimeoutSec int      `toml:"timeout_sec"`
}

type Step struct {
	Verb     string   `toml:"verb"`
	Units    []string `toml:"units"`
	Required bool     `toml:"required"`
}

type Notify struct {
	Enabled bool `toml:"enabled"`
	OkMs    int  `toml:"ok_ms"`
	ErrMs   int  `toml:"err_ms"`
}

func Default() Config {
	return Config{
		Source: Source{
			Config:      "~/.config/sway/config",
			StartMarker: "Pipewire Sample Rate Options Start",
			EndMarker:   "Pipewire Sample Rate Options End",
			OptPrefix:   "# Sample Rate Options =",
		},
		Pipewire: Pipewire{
			Conf: "~/.config/pipewire/pipewire.conf.d/99-samplerate.conf",
		},
		Restart: Restart{
			Units: []string{"pipewire.service", "pipewire-pulse.service", "wireplumber.service"},
			Fallback: []Step{
				{Verb: "stop", Units: []string{"pipewire.socket"}},
				{Verb: "start", Units: []string{"pipewire.service"}, Required: true},
				{Verb: "start", Units: []string{"pipewire.socket"}},
				{Verb: "restart", Units: []string{"wireplumber.service"}, Required: true},
			},
			TimeoutSec: 15,
		},
		Notify: Notify{
			Enabled: true,
			OkMs:    6000,
			ErrMs:   8000,
		},
	}
}

// ResolvePath picks the config file location: -conf flag, then
// PWRATE_CONFIG, then the default under ~/.config. explicit reports
// whether the user named the path, in which case it must exist.
func ResolvePath(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv("PWRATE_CONFIG"); env != "" {
		return env, true
	}
	return Expand("~/.config/pwrate/config.toml"), false
}

// Load reads the TOML file at path over the defaults. A missing file
// is not an error unless explicit is set (the user named the path).
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Timeout() time.Duration {
	if c.Restart.TimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Restart.TimeoutSec) * time.Second
}

// Expand replaces a leading ~ or $HOME with the home directory.
func Expand(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	if strings.HasPrefix(path, "$HOME/") {
		return filepath.Join(home, path[6:])
	}
	return path
}
