package app

import (
	"context"
	"strings"
	"testing"
)

func TestRunStats(t *testing.T) {
	_, _ = startFakeGemini(t, 500, `{"error":{"message":"boom"}}`)

	out := captureStdout(t, func() {
		if err := RunStats(StatsOptions{}); err != nil {
			t.Errorf("stats: %v", err)
		}
	})
	if !strings.Contains(out, "Số yêu cầu: 0") || !strings.Contains(out, "chưa có") {
		t.Fatalf("empty stats output:\n%s", out)
	}

	_ = captureStdout(t, func() {
		_ = RunGen(context.Background(), GenOptions{Prompt: "mưa"})
	})
	out = captureStdout(t, func() {
		if err := RunStats(StatsOptions{}); err != nil {
			t.Errorf("stats: %v", err)
		}
	})
	if !strings.Contains(out, "Số yêu cầu: 1") || !strings.Contains(out, "Số lỗi: 1") || !strings.Contains(out, "Vừa xong") {
		t.Fatalf("stats output:\n%s", out)
	}

	out = captureStdout(t, func() {
		if err := RunStats(StatsOptions{Reset: true}); err != nil {
			t.Errorf("reset: %v", err)
		}
		if err := RunStats(StatsOptions{}); err != nil {
			t.Errorf("stats: %v", err)
		}
	})
	if !strings.Contains(out, "Số yêu cầu: 0") {
		t.Fatalf("reset output:\n%s", out)
	}
}
