package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
)

const testAPIKey = "AIzaSyTESTKEY1234567890abcdef"

type fakeGemini struct {
	srv   *httptest.Server
	calls atomic.Int32
}

// startFakeGemini points the config at a local server answering every
// generateContent call with reply, and returns the app dir.
func startFakeGemini(t *testing.T, status int, reply string) (*fakeGemini, string) {
	t.Helper()
	fg := &fakeGemini{}
	fg.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fg.calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(fg.srv.Close)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEMINI_API_KEY", testAPIKey)
	t.Setenv("SODEEP_GEMINI_BASE_URL", fg.srv.URL)
	t.Setenv("SODEEP_GEMINI_MIN_INTERVAL_MS", "0")
	t.Setenv("SODEEP_GEMINI_RETRY_DELAY_MS", "0")
	return fg, filepath.Join(home, ".sodeep")
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

const triLingual = `{"vietnamese":"Sống chậm lại để thấy đời đẹp","english":"Slow down to see life's beauty","chinese":"慢下来，看见生活的美"}`
