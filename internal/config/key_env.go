package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"

	"sodeep/internal/util"
)

const apiKeyEnvName = "GEMINI_API_KEY"

var ErrAPIKeyNotConfigured = errors.New("gemini_api_key_not_configured")

// LoadAPIKey prefers the GEMINI_API_KEY environment variable over the key
// stored in ~/.sodeep/.env.
func LoadAPIKey() (string, error) {
	if v := strings.TrimSpace(os.Getenv(apiKeyEnvName)); v != "" {
		return v, nil
	}
	env, err := readEnvFile()
	if err != nil {
		return "", err
	}
	if v := strings.TrimSpace(env[apiKeyEnvName]); v != "" {
		return v, nil
	}
	return "", ErrAPIKeyNotConfigured
}

// SaveAPIKey sets GEMINI_API_KEY in ~/.sodeep/.env and keeps the other
// variables. The file is rewritten sorted by name with mode 0600.
func SaveAPIKey(key string) error {
	p, err := util.DefaultEnvPath()
	if err != nil {
		return err
	}
	env, err := readEnvFile()
	if err != nil {
		return err
	}
	if env == nil {
		env = gotenv.Env{}
	}
	env[apiKeyEnvName] = key
	content, err := gotenv.Marshal(env)
	if err != nil {
		return fmt.Errorf("tạo nội dung .env thất bại: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("tạo thư mục cấu hình thất bại: %w", err)
	}
	if err := os.WriteFile(p, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("ghi .env thất bại: %w", err)
	}
	return os.Chmod(p, 0o600)
}

// readEnvFile returns nil, nil when the file does not exist yet.
func readEnvFile() (gotenv.Env, error) {
	p, err := util.DefaultEnvPath()
	if err != nil {
		return nil, err
	}
	env, err := gotenv.Read(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("đọc .env thất bại: %w", err)
	}
	return env, nil
}
