package util

import (
	"path/filepath"
	"testing"
)

func TestDefaultAppDirAndPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	appDir, err := DefaultAppDir()
	if err != nil {
		t.Fatalf("DefaultAppDir error: %v", err)
	}
	wantApp := filepath.Join(home, ".sodeep")
	if appDir != wantApp {
		t.Fatalf("appDir=%q want=%q", appDir, wantApp)
	}

	envPath, err := DefaultEnvPath()
	if err != nil {
		t.Fatalf("DefaultEnvPath error: %v", err)
	}
	if want := filepath.Join(wantApp, ".env"); envPath != want {
		t.Fatalf("envPath=%q want=%q", envPath, want)
	}

	cfgPath, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath error: %v", err)
	}
	if want := filepath.Join(wantApp, "config.yaml"); cfgPath != want {
		t.Fatalf("cfgPath=%q want=%q", cfgPath, want)
	}
}
