package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"WHISPERS_MODE", "WHISPERS_ENDPOINT", "WHISPERS_THEME", "WHISPERS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if got := cfg.ViewerTiming().Dwell; got != viewer.ProductionDwell {
		t.Errorf("default dwell = %v, want %v", got, viewer.ProductionDwell)
	}
}

func TestLoadFromReaderTOML(t *testing.T) {
	clearEnv(t)
	doc := `
[general]
mode = "development"
log_level = "debug"

[viewer]
transition = "250ms"

[feed]
endpoint = "https://whispers.example.com/api/posts"
poll_interval = "30s"

[theme]
name = "nord"
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	vt := cfg.ViewerTiming()
	if vt.Dwell != viewer.DevelopmentDwell {
		t.Errorf("Dwell = %v, want %v", vt.Dwell, viewer.DevelopmentDwell)
	}
	if vt.Transition != 250*time.Millisecond {
		t.Errorf("Transition = %v, want 250ms", vt.Transition)
	}
	if vt.Tick != viewer.DefaultTick {
		t.Errorf("Tick = %v, want default %v", vt.Tick, viewer.DefaultTick)
	}
	if cfg.Feed.PollInterval.Duration != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.Feed.PollInterval.Duration)
	}
	if cfg.Theme.Name != "nord" {
		t.Errorf("Theme.Name = %q, want nord", cfg.Theme.Name)
	}
	if cfg.Level().String() != "DEBUG" {
		t.Errorf("Level = %v, want DEBUG", cfg.Level())
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	doc := `
general:
  mode: production
viewer:
  dwell: 12s
feed:
  file: /tmp/whispers.yaml
`
	cfg, err := LoadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if got := cfg.ViewerTiming().Dwell; got != 12*time.Second {
		t.Errorf("Dwell override = %v, want 12s", got)
	}
	if cfg.Feed.File != "/tmp/whispers.yaml" {
		t.Errorf("Feed.File = %q", cfg.Feed.File)
	}
	// Defaults survive for keys the document omits.
	if cfg.Feed.Timeout.Duration != 10*time.Second {
		t.Errorf("Feed.Timeout = %v, want default 10s", cfg.Feed.Timeout.Duration)
	}
}

func TestLoadFromFilePicksDecoderByExtension(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(tomlPath, []byte("[theme]\nname = \"dracula\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(yamlPath, []byte("theme:\n  name: gruvbox\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFile(toml): %v", err)
	}
	if cfg.Theme.Name != "dracula" {
		t.Errorf("toml theme = %q, want dracula", cfg.Theme.Name)
	}

	cfg, err = LoadFromFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFromFile(yaml): %v", err)
	}
	if cfg.Theme.Name != "gruvbox" {
		t.Errorf("yaml theme = %q, want gruvbox", cfg.Theme.Name)
	}
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile(missing): %v", err)
	}
	if cfg.General.Mode != "production" {
		t.Errorf("Mode = %q, want production", cfg.General.Mode)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WHISPERS_MODE", "development")
	t.Setenv("WHISPERS_ENDPOINT", "http://example.test/posts")
	t.Setenv("WHISPERS_THEME", "light")

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.Mode != "development" {
		t.Errorf("Mode = %q", cfg.General.Mode)
	}
	if cfg.Feed.Endpoint != "http://example.test/posts" {
		t.Errorf("Endpoint = %q", cfg.Feed.Endpoint)
	}
	if cfg.Theme.Name != "light" {
		t.Errorf("Theme = %q", cfg.Theme.Name)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Mode = "staging"
	cfg.General.LogLevel = "loud"
	cfg.Feed.Endpoint = "not a url"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"staging", "log_level", "feed.endpoint"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestInvalidDurationRejected(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFromReader(strings.NewReader("[viewer]\ntick = \"soon\"\n")); err == nil {
		t.Error("expected error for unparseable duration")
	}
	if _, err := LoadFromReader(strings.NewReader("[viewer]\ntick = \"-1s\"\n")); err == nil {
		t.Error("expected error for negative duration")
	}
}
