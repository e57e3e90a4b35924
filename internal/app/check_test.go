package app

import (
	"context"
	"strings"
	"testing"
)

func TestRunCheck(t *testing.T) {
	fg, _ := startFakeGemini(t, 200, candidateBody(triLingual))
	out := captureStdout(t, func() {
		if err := RunCheck(context.Background(), CheckOptions{}); err != nil {
			t.Errorf("check: %v", err)
		}
	})
	if !strings.Contains(out, "Kết nối thành công (gemini-2.0-flash") {
		t.Fatalf("output:\n%s", out)
	}
	if fg.calls.Load() != 1 {
		t.Fatalf("calls=%d", fg.calls.Load())
	}
}

func TestRunCheck_InvalidKey(t *testing.T) {
	fg, _ := startFakeGemini(t, 401, `{"error":{"code":401,"message":"API key not valid"}}`)
	err := RunCheck(context.Background(), CheckOptions{})
	if err == nil || !strings.Contains(err.Error(), "API key không hợp lệ") {
		t.Fatalf("err=%v", err)
	}
	if fg.calls.Load() != 1 {
		t.Fatalf("401 must not be retried, calls=%d", fg.calls.Load())
	}
}
