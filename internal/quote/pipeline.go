package quote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sodeep/internal/gemini"
)

// Transport performs a single generation call. See gemini.API and gemini.SDK.
type Transport interface {
	GenerateContent(ctx context.Context, apiKey, prompt string) (string, error)
}

// UsageRecorder is told about every Generate call exactly once.
type UsageRecorder interface {
	Record(success bool)
}

const (
	DefaultAuthor    = "Thái Bình Dương"
	DefaultKeyPrefix = "AIza"
	timestampLayout  = "2006-01-02T15:04:05.000Z07:00"
)

type Config struct {
	Mode        Mode
	KeyPrefix   string
	MinInterval time.Duration
	Timeout     time.Duration
	RetryDelay  time.Duration
	MaxRetries  int
	Author      string
}

func DefaultConfig() Config {
	return Config{
		Mode:        ModeStructured,
		KeyPrefix:   DefaultKeyPrefix,
		MinInterval: time.Second,
		Timeout:     30 * time.Second,
		RetryDelay:  time.Second,
		MaxRetries:  3,
		Author:      DefaultAuthor,
	}
}

// Pipeline turns a credential and a Request into a Result. It is safe for
// concurrent use; dispatches from all callers share one Gate.
type Pipeline struct {
	transport Transport
	cfg       Config
	gate      *Gate
	clock     Clock
	recorder  UsageRecorder
	log       *zap.Logger
}

func New(transport Transport, cfg Config) *Pipeline {
	if cfg.Mode == "" {
		cfg.Mode = ModeStructured
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Author == "" {
		cfg.Author = DefaultAuthor
	}
	clock := Clock(systemClock{})
	return &Pipeline{
		transport: transport,
		cfg:       cfg,
		gate:      NewGate(cfg.MinInterval, clock),
		clock:     clock,
		log:       zap.NewNop(),
	}
}

func (p *Pipeline) SetRecorder(r UsageRecorder) { p.recorder = r }

func (p *Pipeline) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	p.log = l
}

// SetClock replaces the clock used for spacing, backoff and timestamps.
func (p *Pipeline) SetClock(c Clock) {
	p.clock = c
	p.gate = NewGate(p.cfg.MinInterval, c)
}

func (p *Pipeline) Mode() Mode { return p.cfg.Mode }

func (p *Pipeline) Generate(ctx context.Context, credential string, req Request) (res Result, err error) {
	defer func() {
		if p.recorder != nil {
			p.recorder.Record(err == nil)
		}
	}()

	credential = strings.TrimSpace(credential)
	if verr := checkCredential(credential, p.cfg.KeyPrefix); verr != nil {
		return Result{}, verr
	}
	req = req.trimmed()
	if verr := req.validate(); verr != nil {
		return Result{}, verr
	}

	prompt := BuildPrompt(p.cfg.Mode, req)
	var raw string
	for attempt := 0; ; attempt++ {
		raw, err = p.dispatch(ctx, credential, prompt, attempt)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		kind := KindOf(err)
		if !kind.Retryable() || attempt >= p.cfg.MaxRetries {
			p.log.Warn("quote generation failed", zap.String("kind", string(kind)), zap.Int("attempts", attempt+1), zap.Error(err))
			return Result{}, err
		}
		delay := p.cfg.RetryDelay * time.Duration(attempt+1)
		p.log.Info("quote retry scheduled",
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", p.cfg.MaxRetries),
			zap.Duration("delay", delay))
		select {
		case <-p.clock.After(delay):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	var ex extracted
	if p.cfg.Mode == ModeText {
		ex, err = extractText(raw)
	} else {
		ex, err = extractStructured(raw)
	}
	if err != nil {
		p.log.Warn("quote extraction failed", zap.String("kind", string(KindOf(err))), zap.Int("raw_len", len(raw)))
		return Result{}, err
	}
	if ex.fallback {
		p.log.Info("quote recovered by fallback extraction")
	}
	return Result{
		ID:         uuid.NewString(),
		Vietnamese: ex.vietnamese,
		English:    ex.english,
		Chinese:    ex.chinese,
		Text:       ex.text,
		Author:     p.cfg.Author,
		Style:      req.Style,
		Topic:      req.Topic,
		Prompt:     req.Prompt,
		Timestamp:  p.clock.Now().UTC().Format(timestampLayout),
		Fallback:   ex.fallback,
	}, nil
}

// dispatch runs one gated attempt under its own timeout.
func (p *Pipeline) dispatch(ctx context.Context, key, prompt string, attempt int) (string, error) {
	slot, err := p.gate.Wait(ctx)
	if err != nil {
		return "", err
	}
	p.log.Debug("quote dispatch", zap.Int("attempt", attempt+1), zap.Time("slot", slot))

	actx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()
	text, err := p.transport.GenerateContent(actx, key, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(actx.Err(), context.DeadlineExceeded) {
			return "", newError(KindTimeout, err)
		}
		return "", classify(err)
	}
	if strings.TrimSpace(text) == "" {
		return "", newError(KindEmptyResponse, nil)
	}
	return text, nil
}

func classify(err error) error {
	var qe *Error
	if errors.As(err, &qe) {
		return qe
	}
	var se *gemini.StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode == 401:
			return newError(KindInvalidCredential, err)
		case se.StatusCode == 403:
			return newError(KindForbidden, err)
		case se.StatusCode == 429:
			return newError(KindRateLimited, err)
		case se.StatusCode >= 500 && se.StatusCode <= 599:
			return newError(KindUpstreamUnavailable, err)
		default:
			return &Error{
				Kind:       KindRequestFailed,
				Message:    messages[KindRequestFailed] + ": " + statusLine(se),
				StatusCode: se.StatusCode,
				Status:     se.StatusText,
				Err:        err,
			}
		}
	}
	if errors.Is(err, gemini.ErrNoContent) {
		return newError(KindEmptyResponse, err)
	}
	if errors.Is(err, gemini.ErrMalformedPayload) {
		return newError(KindMalformedResponse, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return newError(KindTimeout, err)
	}
	return newError(KindNetworkFailure, err)
}

func statusLine(se *gemini.StatusError) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s", se.StatusCode, se.StatusText))
}
