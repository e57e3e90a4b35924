package store

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Stats struct {
	RequestCount int    `json:"gemini_request_count"`
	ErrorCount   int    `json:"gemini_error_count"`
	LastRequest  string `json:"gemini_last_request,omitempty"`
}

// Usage keeps request counters in a JSON file. Record satisfies
// quote.UsageRecorder.
type Usage struct {
	path string
	now  func() time.Time
	log  *zap.Logger

	mu sync.Mutex
}

func NewUsage(path string) *Usage {
	return &Usage{path: path, now: time.Now, log: zap.NewNop()}
}

func (u *Usage) SetLogger(l *zap.Logger) {
	if l != nil {
		u.log = l
	}
}

func (u *Usage) Stats() (Stats, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var s Stats
	err := readJSON(u.path, &s)
	return s, err
}

// Record counts one request, and one error when success is false. Storage
// failures are logged, never returned.
func (u *Usage) Record(success bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var s Stats
	if err := readJSON(u.path, &s); err != nil {
		u.log.Warn("usage stats unreadable, starting over", zap.String("path", u.path), zap.Error(err))
		s = Stats{}
	}
	s.RequestCount++
	if !success {
		s.ErrorCount++
	}
	s.LastRequest = u.now().UTC().Format(time.RFC3339Nano)
	if err := writeJSON(u.path, s); err != nil {
		u.log.Warn("usage stats not saved", zap.String("path", u.path), zap.Error(err))
	}
}

func (u *Usage) Reset() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return removeFile(u.path)
}
