package app

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sodeep/internal/render"
)

type HistoryOptions struct {
	Options
	Limit int
	Path  string
}

func RunHistoryList(opts HistoryOptions) error {
	rt, err := openRuntime(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()
	items, err := rt.history.Load()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		rt.log.Info("Lịch sử trống. Hãy tạo câu nói đầu tiên của bạn!")
		return nil
	}
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	now := time.Now()
	for i, it := range items {
		when := render.RelativeTimeString(it.CreatedAt, now)
		rt.log.Info(fmt.Sprintf("%d. [%s] %s", i+1, when, html.UnescapeString(it.Primary())))
		if it.English != "" {
			rt.log.Info(fmt.Sprintf("   EN: %s", html.UnescapeString(it.English)))
		}
		rt.log.Info(fmt.Sprintf("   (%s)", it.Subject()))
	}
	return nil
}

func RunHistoryExport(opts HistoryOptions) error {
	rt, err := openRuntime(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = fmt.Sprintf("sodeep-history-%s.json", time.Now().Format("2006-01-02"))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rt.history.Export(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	rt.log.Info(fmt.Sprintf("Đã xuất lịch sử: %s", mustAbsPath(path)))
	return nil
}

func RunHistoryImport(opts HistoryOptions) error {
	rt, err := openRuntime(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()
	f, err := os.Open(opts.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := rt.history.Import(f)
	if err != nil {
		return fmt.Errorf("không thể nhập file: %w", err)
	}
	rt.log.Info(fmt.Sprintf("Đã nhập %d mục vào lịch sử", n))
	return nil
}

func RunHistoryClear(opts HistoryOptions) error {
	rt, err := openRuntime(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()
	if err := rt.history.Clear(); err != nil {
		return err
	}
	rt.log.Info("Đã xóa lịch sử")
	return nil
}
