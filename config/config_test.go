package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultRestartPlan(t *testing.T) {
	cfg := Default()
	if len(cfg.Restart.Units) != 3 {
		t.Fatalf("expected 3 primary units, got %v", cfg.Restart.Units)
	}
	if len(cfg.Restart.Fallback) != 4 {
		t.Fatalf("expected 4 fallback steps, got %d", len(cfg.Restart.Fallback))
	}
	// The two required fallback steps carry the plan's success.
	required := 0
	for _, s := range cfg.Restart.Fallback {
		if s.Required {
			required++
		}
	}
	if required != 2 {
		t.Errorf("expected 2 required fallback steps, got %d", required)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source.StartMarker != Default().Source.StartMarker {
		t.Errorf("got %q", cfg.Source.StartMarker)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml"), true); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadOverridesSelectively(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[source]
config = "/etc/sway/config"

[restart]
timeout_sec = 5

[[restart.fallback]]
verb = "restart"
units = ["pipewire.service"]
required = true
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source.Config != "/etc/sway/config" {
		t.Errorf("source.config = %q", cfg.Source.Config)
	}
	// Untouched sections keep defaults
	if cfg.Source.StartMarker != Default().Source.StartMarker {
		t.Errorf("start_marker = %q", cfg.Source.StartMarker)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
	if len(cfg.Restart.Fallback) != 1 || cfg.Restart.Fallback[0].Verb != "restart" {
		t.Errorf("fallback = %+v", cfg.Restart.Fallback)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[source\nbroken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, true); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolvePathFlagWins(t *testing.T) {
	t.Setenv("PWRATE_CONFIG", "/tmp/env.toml")
	got, explicit := ResolvePath("/tmp/flag.toml")
	if got != "/tmp/flag.toml" || !explicit {
		t.Errorf("got %q, explicit=%v", got, explicit)
	}
}

func TestResolvePathEnvIsExplicit(t *testing.T) {
	t.Setenv("PWRATE_CONFIG", "/tmp/env.toml")
	got, explicit := ResolvePath("")
	if got != "/tmp/env.toml" || !explicit {
		t.Errorf("got %q, explicit=%v", got, explicit)
	}
}

func TestResolvePathDefaultNotExplicit(t *testing.T) {
	t.Setenv("PWRATE_CONFIG", "")
	got, explicit := ResolvePath("")
	if got == "" || explicit {
		t.Errorf("got %q, explicit=%v", got, explicit)
	}
}

func TestEnvNamedMissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	t.Setenv("PWRATE_CONFIG", missing)
	path, explicit := ResolvePath("")
	if _, err := Load(path, explicit); err == nil {
		t.Fatal("expected error for missing PWRATE_CONFIG file")
	}
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := Expand("~/.config/sway/config"); got != filepath.Join(home, ".config/sway/config") {
		t.Errorf("got %q", got)
	}
	if got := Expand("$HOME/x"); got != filepath.Join(home, "x") {
		t.Errorf("got %q", got)
	}
	if got := Expand("/abs/path"); got != "/abs/path" {
		t.Errorf("got %q", got)
	}
}
