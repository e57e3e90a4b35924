package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"sodeep/internal/config"
	"sodeep/internal/gemini"
	"sodeep/internal/quote"
	"sodeep/internal/store"
)

// Options are shared by every command.
type Options struct {
	Verbose    bool
	LogFile    string
	ConfigPath string
}

type runtime struct {
	cfg     config.Config
	log     *Logger
	verbose bool
	usage   *store.Usage
	history *store.History
}

// openRuntime loads config, opens the logger and the stores kept next to
// the config file.
func openRuntime(opts Options) (*runtime, error) {
	path, err := config.ResolvePath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrInit(path)
	if err != nil {
		return nil, err
	}
	log, err := NewLogger(opts.Verbose, opts.LogFile)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	usage := store.NewUsage(store.UsagePath(dir))
	usage.SetLogger(log.Zap())
	return &runtime{
		cfg:     cfg,
		log:     log,
		verbose: opts.Verbose,
		usage:   usage,
		history: store.NewHistory(store.HistoryPath(dir), cfg.History.MaxItems),
	}, nil
}

func (rt *runtime) close() {
	_ = rt.log.Close()
}

func settingsFromConfig(cfg config.Config) gemini.Settings {
	return gemini.Settings{
		BaseURL:         cfg.Gemini.BaseURL,
		APIVersion:      cfg.Gemini.APIVersion,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Generation.Temperature,
		TopK:            cfg.Generation.TopK,
		TopP:            cfg.Generation.TopP,
		MaxOutputTokens: cfg.Generation.MaxOutputTokens,
		SafetyThreshold: cfg.Generation.SafetyThreshold,
	}
}

type traceable interface {
	quote.Transport
	SetTrace(func(gemini.TraceEvent))
}

func (rt *runtime) transport(backend string) (quote.Transport, error) {
	if strings.TrimSpace(backend) == "" {
		backend = rt.cfg.Gemini.Backend
	}
	var t traceable
	switch backend {
	case "rest":
		t = gemini.New(settingsFromConfig(rt.cfg))
	case "sdk":
		t = gemini.NewSDK(settingsFromConfig(rt.cfg))
	default:
		return nil, fmt.Errorf("backend không hỗ trợ: %s (rest|sdk)", backend)
	}
	t.SetTrace(func(ev gemini.TraceEvent) {
		if !rt.verbose {
			return
		}
		rt.log.Event("gemini_http_"+ev.Stage, map[string]any{
			"method":      ev.Method,
			"url":         ev.URL,
			"status_code": ev.StatusCode,
			"duration_ms": ev.DurationMs,
			"request":     ev.Request,
			"response":    ev.Response,
			"error":       ev.Error,
		})
	})
	return t, nil
}

// pipeline builds a Pipeline over backend ("" uses the configured one).
// mode overrides generation.mode when set.
func (rt *runtime) pipeline(backend, mode string) (*quote.Pipeline, error) {
	t, err := rt.transport(backend)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(mode) == "" {
		mode = rt.cfg.Generation.Mode
	}
	switch quote.Mode(mode) {
	case quote.ModeStructured, quote.ModeText:
	default:
		return nil, fmt.Errorf("mode không hỗ trợ: %s (structured|text)", mode)
	}
	p := quote.New(t, quote.Config{
		Mode:        quote.Mode(mode),
		KeyPrefix:   rt.cfg.Quote.KeyPrefix,
		MinInterval: rt.cfg.Gemini.MinInterval(),
		Timeout:     rt.cfg.Gemini.Timeout(),
		RetryDelay:  rt.cfg.Gemini.RetryDelay(),
		MaxRetries:  rt.cfg.Gemini.MaxRetries,
		Author:      rt.cfg.Quote.Author,
	})
	p.SetRecorder(rt.usage)
	p.SetLogger(rt.log.Zap())
	return p, nil
}
