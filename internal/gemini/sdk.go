package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

// SDK is the transport backed by the google.golang.org/genai client. It
// reports failures with the same error contract as API.
type SDK struct {
	settings Settings
	http     *http.Client

	mu      sync.Mutex
	clients map[string]*genai.Client
}

func NewSDK(settings Settings) *SDK {
	return &SDK{
		settings: settings,
		http:     newHTTPClient(),
		clients:  make(map[string]*genai.Client),
	}
}

// SetTrace installs fn on the HTTP transport the SDK clients share. Call it
// before the first GenerateContent.
func (s *SDK) SetTrace(fn func(TraceEvent)) {
	next := s.http.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	s.http.Transport = &traceRoundTripper{next: next, emit: fn}
}

// one genai client per API key; keys are supplied per call.
func (s *SDK) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[apiKey]; ok {
		return c, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: s.http,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimRight(s.settings.BaseURL, "/") + "/",
			APIVersion: s.settings.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create genai client: %w", err)
	}
	s.clients[apiKey] = c
	return c, nil
}

func (s *SDK) contentConfig() *genai.GenerateContentConfig {
	safety := make([]*genai.SafetySetting, 0, len(SafetyCategories))
	for _, c := range SafetyCategories {
		safety = append(safety, &genai.SafetySetting{
			Category:  genai.HarmCategory(c),
			Threshold: genai.HarmBlockThreshold(s.settings.SafetyThreshold),
		})
	}
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(s.settings.Temperature)),
		TopK:            genai.Ptr(float32(s.settings.TopK)),
		TopP:            genai.Ptr(float32(s.settings.TopP)),
		MaxOutputTokens: int32(s.settings.MaxOutputTokens),
		SafetySettings:  safety,
	}
}

func (s *SDK) GenerateContent(ctx context.Context, apiKey, prompt string) (string, error) {
	c, err := s.client(ctx, apiKey)
	if err != nil {
		return "", err
	}
	resp, err := c.Models.GenerateContent(ctx, s.settings.Model, genai.Text(prompt), s.contentConfig())
	if err != nil {
		return "", fromSDKError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", ErrNoContent, resp.PromptFeedback.BlockReason)
		}
		return "", ErrNoContent
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", ErrNoContent
	}
	if text := cand.Content.Parts[0].Text; text != "" {
		return text, nil
	}
	return "", fmt.Errorf("%w: finish reason %q", ErrNoContent, cand.FinishReason)
}

// fromSDKError maps genai failures onto the REST error contract. Transport
// and context errors pass through; anything else the SDK reports after a
// 2xx is a body it could not decode.
func fromSDKError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{StatusCode: apiErr.Code, StatusText: statusText(apiErr.Code, ""), Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &StatusError{StatusCode: apiErrPtr.Code, StatusText: statusText(apiErrPtr.Code, ""), Message: apiErrPtr.Message}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
}

type traceRoundTripper struct {
	next http.RoundTripper
	emit func(TraceEvent)
}

func (t *traceRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBody := readReqBody(req)
	t.emit(TraceEvent{Stage: "request", Method: req.Method, URL: req.URL.String(), Request: reqBody})
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.emit(TraceEvent{
			Stage:      "error",
			Method:     req.Method,
			URL:        req.URL.String(),
			DurationMs: time.Since(start).Milliseconds(),
			Request:    reqBody,
			Error:      err.Error(),
		})
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	t.emit(TraceEvent{
		Stage:      "response",
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		DurationMs: time.Since(start).Milliseconds(),
		Request:    reqBody,
		Response:   traceBody(body),
	})
	return resp, nil
}
