package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"sodeep/internal/gemini"
	"sodeep/internal/quote"
	"sodeep/internal/util"
)

const envPrefix = "SODEEP"

type Config struct {
	Gemini     GeminiConfig     `yaml:"gemini" mapstructure:"gemini"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Quote      QuoteConfig      `yaml:"quote" mapstructure:"quote"`
	History    HistoryConfig    `yaml:"history" mapstructure:"history"`
}

type GeminiConfig struct {
	Backend       string `yaml:"backend" mapstructure:"backend" validate:"oneof=rest sdk"`
	BaseURL       string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	APIVersion    string `yaml:"api_version" mapstructure:"api_version" validate:"required"`
	Model         string `yaml:"model" mapstructure:"model" validate:"required"`
	TimeoutMs     int    `yaml:"timeout_ms" mapstructure:"timeout_ms" validate:"gt=0"`
	MaxRetries    int    `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelayMs  int    `yaml:"retry_delay_ms" mapstructure:"retry_delay_ms" validate:"gte=0"`
	MinIntervalMs int    `yaml:"min_interval_ms" mapstructure:"min_interval_ms" validate:"gte=0"`
}

type GenerationConfig struct {
	Mode            string  `yaml:"mode" mapstructure:"mode" validate:"oneof=structured text"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopK            int     `yaml:"top_k" mapstructure:"top_k" validate:"gt=0"`
	TopP            float64 `yaml:"top_p" mapstructure:"top_p" validate:"gt=0,lte=1"`
	MaxOutputTokens int     `yaml:"max_output_tokens" mapstructure:"max_output_tokens" validate:"gt=0"`
	SafetyThreshold string  `yaml:"safety_threshold" mapstructure:"safety_threshold" validate:"required"`
}

type QuoteConfig struct {
	Author    string `yaml:"author" mapstructure:"author" validate:"required"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

type HistoryConfig struct {
	MaxItems int  `yaml:"max_items" mapstructure:"max_items" validate:"gt=0"`
	AutoSave bool `yaml:"auto_save" mapstructure:"auto_save"`
}

func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutMs) * time.Millisecond
}

func (g GeminiConfig) RetryDelay() time.Duration {
	return time.Duration(g.RetryDelayMs) * time.Millisecond
}

func (g GeminiConfig) MinInterval() time.Duration {
	return time.Duration(g.MinIntervalMs) * time.Millisecond
}

func Default() Config {
	return Config{
		Gemini: GeminiConfig{
			Backend:       "rest",
			BaseURL:       gemini.DefaultBaseURL,
			APIVersion:    gemini.DefaultAPIVersion,
			Model:         gemini.DefaultModel,
			TimeoutMs:     30000,
			MaxRetries:    3,
			RetryDelayMs:  1000,
			MinIntervalMs: 1000,
		},
		Generation: GenerationConfig{
			Mode:            "structured",
			Temperature:     gemini.DefaultTemperature,
			TopK:            gemini.DefaultTopK,
			TopP:            gemini.DefaultTopP,
			MaxOutputTokens: gemini.DefaultMaxOutputTokens,
			SafetyThreshold: gemini.DefaultSafetyThreshold,
		},
		Quote: QuoteConfig{
			Author:    quote.DefaultAuthor,
			KeyPrefix: quote.DefaultKeyPrefix,
		},
		History: HistoryConfig{MaxItems: 50, AutoSave: true},
	}
}

func ResolvePath(input string) (string, error) {
	if input != "" {
		return input, nil
	}
	return util.DefaultConfigPath()
}

// LoadOrInit writes the default config on first use, then reads it back
// through viper so SODEEP_* environment variables override file values.
func LoadOrInit(path string) (Config, error) {
	def := Default()
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("đọc cấu hình thất bại: %w", err)
		}
		if err := Save(path, def); err != nil {
			return Config{}, err
		}
	}
	cfg, err := load(path, def)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func load(path string, def Config) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, def)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("phân tích cấu hình thất bại: %w", err)
	}
	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("phân tích cấu hình thất bại: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, def Config) {
	v.SetDefault("gemini.backend", def.Gemini.Backend)
	v.SetDefault("gemini.base_url", def.Gemini.BaseURL)
	v.SetDefault("gemini.api_version", def.Gemini.APIVersion)
	v.SetDefault("gemini.model", def.Gemini.Model)
	v.SetDefault("gemini.timeout_ms", def.Gemini.TimeoutMs)
	v.SetDefault("gemini.max_retries", def.Gemini.MaxRetries)
	v.SetDefault("gemini.retry_delay_ms", def.Gemini.RetryDelayMs)
	v.SetDefault("gemini.min_interval_ms", def.Gemini.MinIntervalMs)

	v.SetDefault("generation.mode", def.Generation.Mode)
	v.SetDefault("generation.temperature", def.Generation.Temperature)
	v.SetDefault("generation.top_k", def.Generation.TopK)
	v.SetDefault("generation.top_p", def.Generation.TopP)
	v.SetDefault("generation.max_output_tokens", def.Generation.MaxOutputTokens)
	v.SetDefault("generation.safety_threshold", def.Generation.SafetyThreshold)

	v.SetDefault("quote.author", def.Quote.Author)
	v.SetDefault("quote.key_prefix", def.Quote.KeyPrefix)

	v.SetDefault("history.max_items", def.History.MaxItems)
	v.SetDefault("history.auto_save", def.History.AutoSave)
}

func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("cấu hình không hợp lệ: %w", err)
	}
	return nil
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tạo thư mục cấu hình thất bại: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("tuần tự hóa cấu hình thất bại: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("ghi cấu hình thất bại: %w", err)
	}
	return nil
}
