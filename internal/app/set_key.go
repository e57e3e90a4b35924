package app

import (
	"context"
	"strings"

	"sodeep/internal/config"
	"sodeep/internal/quote"
)

// RunSetKey stores key in ~/.sodeep/.env after the same shape check
// generation applies.
func RunSetKey(_ context.Context, key, configPath string) error {
	key = strings.TrimSpace(key)
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrInit(path)
	if err != nil {
		return err
	}
	if err := quote.CheckCredential(key, cfg.Quote.KeyPrefix); err != nil {
		return err
	}
	return config.SaveAPIKey(key)
}
