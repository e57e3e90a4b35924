package app

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger prints plain progress lines, or NDJSON events when verbose. Every
// event also goes to the log file when one is configured.
type Logger struct {
	verbose bool
	file    *os.File
	z       *zap.Logger
	mu      sync.Mutex
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stdoutSyncer resolves os.Stdout on every write so redirected stdout is
// honoured.
type stdoutSyncer struct{}

func (stdoutSyncer) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdoutSyncer) Sync() error                 { return nil }

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "event",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

func NewLogger(verbose bool, logFile string) (*Logger, error) {
	l := &Logger{verbose: verbose}
	var cores []zapcore.Core
	enc := zapcore.NewJSONEncoder(encoderConfig())
	if verbose {
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(stdoutSyncer{}), zapcore.DebugLevel))
	}
	if strings.TrimSpace(logFile) != "" {
		dir := filepath.Dir(logFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.Lock(f), zapcore.DebugLevel))
	}
	if len(cores) == 0 {
		l.z = zap.NewNop()
	} else {
		l.z = zap.New(zapcore.NewTee(cores...))
	}
	return l, nil
}

// Zap exposes the underlying logger for library packages.
func (l *Logger) Zap() *zap.Logger { return l.z }

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.z.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.z = zap.NewNop()
	return err
}

func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ansiEscape.ReplaceAllString(msg, "")
	if !l.verbose {
		fmt.Println(msg)
	}
	l.z.Info("info", zap.String("message", plain))
}

func (l *Logger) Event(event string, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	l.z.Info(event, zf...)
}
