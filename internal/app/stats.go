package app

import (
	"fmt"
	"time"

	"sodeep/internal/render"
)

type StatsOptions struct {
	Options
	Reset bool
}

func RunStats(opts StatsOptions) error {
	rt, err := openRuntime(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()
	if opts.Reset {
		if err := rt.usage.Reset(); err != nil {
			return err
		}
		rt.log.Info("Đã đặt lại thống kê")
		return nil
	}
	s, err := rt.usage.Stats()
	if err != nil {
		return err
	}
	last := "chưa có"
	if s.LastRequest != "" {
		last = fmt.Sprintf("%s (%s)", s.LastRequest, render.RelativeTimeString(s.LastRequest, time.Now()))
	}
	rt.log.Info(fmt.Sprintf("Số yêu cầu: %d", s.RequestCount))
	rt.log.Info(fmt.Sprintf("Số lỗi: %d", s.ErrorCount))
	rt.log.Info(fmt.Sprintf("Yêu cầu gần nhất: %s", last))
	rt.log.Event("usage_stats", map[string]any{
		"request_count": s.RequestCount,
		"error_count":   s.ErrorCount,
		"last_request":  s.LastRequest,
	})
	return nil
}
