package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sdkServer(t *testing.T, status int, body string, seen func(*http.Request, []byte)) *SDK {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if seen != nil {
			seen(r, b)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	s := DefaultSettings()
	s.BaseURL = srv.URL
	return NewSDK(s)
}

func TestSDKGenerateContent(t *testing.T) {
	var mu sync.Mutex
	var path, key string
	var payload map[string]any
	sdk := sdkServer(t, 200, okBody("lời hay"), func(r *http.Request, b []byte) {
		mu.Lock()
		defer mu.Unlock()
		path = r.URL.Path
		key = r.Header.Get(apiKeyHeader)
		_ = json.Unmarshal(b, &payload)
	})

	text, err := sdk.GenerateContent(context.Background(), "AIzaTESTKEY0000000000000", "viết đi")
	require.NoError(t, err)
	assert.Equal(t, "lời hay", text)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.HasSuffix(path, "models/gemini-2.0-flash:generateContent"), path)
	assert.Equal(t, "AIzaTESTKEY0000000000000", key)
	gc, ok := payload["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.8, gc["temperature"], 1e-6)
	assert.InDelta(t, 40, gc["topK"], 1e-6)
	assert.EqualValues(t, 1024, gc["maxOutputTokens"])
	safety, ok := payload["safetySettings"].([]any)
	require.True(t, ok)
	assert.Len(t, safety, 4)
}

func TestSDKStatusErrorMapping(t *testing.T) {
	sdk := sdkServer(t, 429, `{"error":{"code":429,"message":"slow down","status":"RESOURCE_EXHAUSTED"}}`, nil)
	_, err := sdk.GenerateContent(context.Background(), "k", "p")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 429, se.StatusCode)
	assert.Equal(t, "Too Many Requests", se.StatusText)
	assert.Equal(t, "slow down", se.Message)
}

func TestSDKNoCandidates(t *testing.T) {
	sdk := sdkServer(t, 200, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`, nil)
	_, err := sdk.GenerateContent(context.Background(), "k", "p")
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestSDKUndecodableBody(t *testing.T) {
	sdk := sdkServer(t, 200, "not json at all", nil)
	_, err := sdk.GenerateContent(context.Background(), "k", "p")
	assert.ErrorIs(t, err, ErrMalformedPayload)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestSDKTransportErrorsPassThrough(t *testing.T) {
	s := DefaultSettings()
	s.BaseURL = "http://127.0.0.1:1"
	_, err := NewSDK(s).GenerateContent(context.Background(), "k", "p")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedPayload)
	var ue *url.Error
	assert.ErrorAs(t, err, &ue)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sdk := sdkServer(t, 200, okBody("x"), nil)
	_, err = sdk.GenerateContent(ctx, "k", "p")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrMalformedPayload)
}

func TestSDKClientCachedPerKey(t *testing.T) {
	sdk := sdkServer(t, 200, okBody("x"), nil)
	a, err := sdk.client(context.Background(), "key-a")
	require.NoError(t, err)
	b, err := sdk.client(context.Background(), "key-a")
	require.NoError(t, err)
	c, err := sdk.client(context.Background(), "key-b")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestSDKTrace(t *testing.T) {
	sdk := sdkServer(t, 200, okBody("x"), nil)
	var stages []string
	sdk.SetTrace(func(ev TraceEvent) { stages = append(stages, ev.Stage) })
	_, err := sdk.GenerateContent(context.Background(), "k", "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"request", "response"}, stages)
}
