package store

import "path/filepath"

const (
	usageFile   = "usage.json"
	historyFile = "history.json"
)

// UsagePath and HistoryPath place the stores in the app directory that
// holds config.yaml.
func UsagePath(appDir string) string   { return filepath.Join(appDir, usageFile) }
func HistoryPath(appDir string) string { return filepath.Join(appDir, historyFile) }
