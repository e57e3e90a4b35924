package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sodeep/internal/config"
	"sodeep/internal/gemini"
	"sodeep/internal/quote"
)

func TestDefaultConfigMatchesPackageDefaults(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, gemini.DefaultSettings(), settingsFromConfig(cfg))

	def := quote.DefaultConfig()
	assert.Equal(t, def.Mode, quote.Mode(cfg.Generation.Mode))
	assert.Equal(t, def.KeyPrefix, cfg.Quote.KeyPrefix)
	assert.Equal(t, def.Author, cfg.Quote.Author)
	assert.Equal(t, def.MinInterval, cfg.Gemini.MinInterval())
	assert.Equal(t, def.Timeout, cfg.Gemini.Timeout())
	assert.Equal(t, def.RetryDelay, cfg.Gemini.RetryDelay())
	assert.Equal(t, def.MaxRetries, cfg.Gemini.MaxRetries)
}
