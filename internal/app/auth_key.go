package app

import (
	"errors"
	"fmt"

	"sodeep/internal/config"
)

func loadAPIKeyForRun() (string, error) {
	key, err := config.LoadAPIKey()
	if err != nil {
		if errors.Is(err, config.ErrAPIKeyNotConfigured) {
			return "", fmt.Errorf("chưa cấu hình API key, hãy chạy\nsodeep set key <GEMINI_API_KEY>")
		}
		return "", err
	}
	return key, nil
}
