package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAPIKeyForRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := loadAPIKeyForRun()
	if err == nil || !strings.Contains(err.Error(), "sodeep set key") {
		t.Fatalf("unexpected err: %v", err)
	}

	envPath := filepath.Join(home, ".sodeep", ".env")
	if err := os.MkdirAll(filepath.Dir(envPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envPath, []byte("GEMINI_API_KEY=abc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	key, err := loadAPIKeyForRun()
	if err != nil {
		t.Fatalf("load key error: %v", err)
	}
	if key != "abc" {
		t.Fatalf("key=%q", key)
	}

	t.Setenv("GEMINI_API_KEY", "from-env")
	key, _ = loadAPIKeyForRun()
	if key != "from-env" {
		t.Fatalf("env should win, key=%q", key)
	}
}
