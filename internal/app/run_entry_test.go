package app

import (
	"context"
	"strings"
	"testing"
)

func TestRunGenAndCheck_MissingKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	err := RunGen(context.Background(), GenOptions{Style: "a", Topic: "b"})
	if err == nil || !strings.Contains(err.Error(), "chưa cấu hình API key") {
		t.Fatalf("RunGen err=%v", err)
	}

	err = RunCheck(context.Background(), CheckOptions{})
	if err == nil || !strings.Contains(err.Error(), "chưa cấu hình API key") {
		t.Fatalf("RunCheck err=%v", err)
	}
}
