package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadOrInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("LoadOrInit error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg=%+v want defaults", cfg)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	s := string(b)
	for _, want := range []string{"min_interval_ms: 1000", "mode: structured", "max_items: 50"} {
		if !strings.Contains(s, want) {
			t.Fatalf("config file missing %q:\n%s", want, s)
		}
	}
}

func TestLoadOrInit_FileValuesAndMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "gemini:\n  model: gemini-1.5-pro\n  max_retries: 0\ngeneration:\n  mode: text\nhistory:\n  auto_save: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("LoadOrInit error: %v", err)
	}
	if cfg.Gemini.Model != "gemini-1.5-pro" || cfg.Gemini.MaxRetries != 0 {
		t.Fatalf("gemini=%+v", cfg.Gemini)
	}
	if cfg.Generation.Mode != "text" || cfg.History.AutoSave {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Gemini.TimeoutMs != 30000 || cfg.History.MaxItems != 50 {
		t.Fatalf("missing keys should keep defaults: %+v", cfg)
	}
	if cfg.Gemini.Timeout() != 30*time.Second || cfg.Gemini.MinInterval() != time.Second {
		t.Fatalf("duration helpers wrong: %v %v", cfg.Gemini.Timeout(), cfg.Gemini.MinInterval())
	}
}

func TestLoadOrInit_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("SODEEP_GEMINI_MODEL", "gemini-env")
	t.Setenv("SODEEP_GEMINI_BACKEND", "sdk")
	cfg, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("LoadOrInit error: %v", err)
	}
	if cfg.Gemini.Model != "gemini-env" || cfg.Gemini.Backend != "sdk" {
		t.Fatalf("env override ignored: %+v", cfg.Gemini)
	}
}

func TestLoadOrInit_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("generation:\n  mode: poem\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrInit(path); err == nil || !strings.Contains(err.Error(), "cấu hình không hợp lệ") {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := os.WriteFile(path, []byte("gemini: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrInit(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := ResolvePath("")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".sodeep", "config.yaml"); got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
	if got, _ := ResolvePath("/tmp/x.yaml"); got != "/tmp/x.yaml" {
		t.Fatalf("explicit path not kept: %q", got)
	}
}
