package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrNoContent means a 2xx response carried no generated text.
	ErrNoContent = errors.New("gemini: no generated content")
	// ErrMalformedPayload means a 2xx response body could not be decoded.
	ErrMalformedPayload = errors.New("gemini: malformed response payload")
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	StatusCode int
	StatusText string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini: %d %s", e.StatusCode, e.StatusText)
	}
	return fmt.Sprintf("gemini: %d %s: %s", e.StatusCode, e.StatusText, e.Message)
}

func newStatusError(resp *http.Response, body []byte) *StatusError {
	return &StatusError{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp.StatusCode, resp.Status),
		Message:    errorMessage(body),
	}
}

// statusText strips the numeric prefix from "429 Too Many Requests".
func statusText(code int, status string) string {
	txt := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if txt == "" {
		txt = http.StatusText(code)
	}
	return txt
}

func errorMessage(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return shortText(strings.TrimSpace(string(body)), 300)
}

func shortText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
