package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"sodeep/internal/input"
	"sodeep/internal/output"
	"sodeep/internal/quote"
	"sodeep/internal/render"
)

const maxConcurrentTasks = 8

type GenOptions struct {
	Options
	OutputDir   string
	HTML        bool
	Share       bool
	JSON        bool
	Num         int
	Concurrency int
	Style       string
	Topic       string
	Prompt      string
	Inputs      []string
	Backend     string
	Mode        string
}

type generateTask struct {
	req   quote.Request
	index int
	label string
}

func RunGen(ctx context.Context, opts GenOptions) error {
	if opts.Num <= 0 {
		opts.Num = 1
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Concurrency > maxConcurrentTasks {
		opts.Concurrency = maxConcurrentTasks
	}
	key, err := loadAPIKeyForRun()
	if err != nil {
		return err
	}
	tasks, err := buildGenerateTasks(opts)
	if err != nil {
		return err
	}
	rt, err := openRuntime(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()
	pipeline, err := rt.pipeline(opts.Backend, opts.Mode)
	if err != nil {
		return err
	}
	startAll := time.Now()

	var successCount atomic.Int64
	var failedCount atomic.Int64
	sem := semaphore.NewWeighted(int64(opts.Concurrency))
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				failedCount.Add(1)
				return err
			}
			defer sem.Release(1)
			ok, err := runGenerateTask(gctx, rt, pipeline, key, opts, task, startAll)
			if ok {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil && isContextCanceledErr(err) && ctx.Err() != nil {
		rt.log.Info("Đã hủy")
		return ctx.Err()
	}

	success := int(successCount.Load())
	failed := int(failedCount.Load())
	rt.log.Info(fmt.Sprintf("Hoàn thành: thành công %d, thất bại %d, tổng thời gian %s", success, failed, humanDurationShort(time.Since(startAll))))
	if failed > 0 {
		return fmt.Errorf("có %d yêu cầu thất bại", failed)
	}
	return nil
}

func buildGenerateTasks(opts GenOptions) ([]generateTask, error) {
	var reqs []quote.Request
	var labels []string
	if len(opts.Inputs) > 0 {
		entries, err := input.Discover(opts.Inputs)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			reqs = append(reqs, quote.Request{Style: e.Style, Topic: e.Topic, Prompt: e.Prompt})
			labels = append(labels, fmt.Sprintf("%s:%d", filepath.Base(e.Path), e.Line))
		}
	} else {
		reqs = append(reqs, quote.Request{Style: opts.Style, Topic: opts.Topic, Prompt: opts.Prompt})
		labels = append(labels, "")
	}
	tasks := make([]generateTask, 0, len(reqs)*opts.Num)
	for i, req := range reqs {
		for n := 1; n <= opts.Num; n++ {
			tasks = append(tasks, generateTask{
				req:   req,
				index: n,
				label: taskDisplayLabel(len(reqs), opts.Num, labels[i], n),
			})
		}
	}
	return tasks, nil
}

func taskDisplayLabel(reqCount, num int, base string, index int) string {
	switch {
	case reqCount > 1 && num > 1:
		return fmt.Sprintf("%s#%d", base, index)
	case reqCount > 1:
		return base
	case num > 1:
		return fmt.Sprintf("#%d", index)
	default:
		return ""
	}
}

func taskPrefix(elapsed time.Duration, label string) string {
	p := tracePrefix(elapsed)
	if strings.TrimSpace(label) == "" {
		return p
	}
	return fmt.Sprintf("%s [%s]", p, strings.TrimSpace(label))
}

// runGenerateTask returns a non-nil error only when the run was cancelled.
func runGenerateTask(
	ctx context.Context,
	rt *runtime,
	pipeline *quote.Pipeline,
	key string,
	opts GenOptions,
	task generateTask,
	startAll time.Time,
) (bool, error) {
	start := time.Now()
	res, err := pipeline.Generate(ctx, key, task.req)
	prefix := taskPrefix(time.Since(startAll), task.label)
	if err != nil {
		if isContextCanceledErr(err) && ctx.Err() != nil {
			return false, err
		}
		rt.log.Info(fmt.Sprintf("%s Thất bại: %s", prefix, describeError(err)))
		rt.log.Event("quote_failed", map[string]any{
			"label":       task.label,
			"kind":        string(quote.KindOf(err)),
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return false, nil
	}
	rt.log.Event("quote_generated", map[string]any{
		"label":       task.label,
		"id":          res.ID,
		"fallback":    res.Fallback,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if opts.JSON {
		b, _ := json.MarshalIndent(res, "", "  ")
		rt.log.Info(string(b))
	} else {
		rt.log.Info(fmt.Sprintf("%s %s", prefix, colorLabel("Sodeep", !opts.Verbose)))
		rt.log.Info(strings.TrimRight(render.Plain(res, opts.Share), "\n"))
	}

	if rt.cfg.History.AutoSave {
		if err := rt.history.Add(res); err != nil {
			rt.log.Info(fmt.Sprintf("%s Không lưu được lịch sử: %v", prefix, err))
		}
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return true, nil
	}
	paths, err := output.UniquePaths(opts.OutputDir)
	if err != nil {
		rt.log.Info(fmt.Sprintf("%s Ghi file thất bại: %v", prefix, err))
		return false, nil
	}
	md := render.Markdown(res, opts.Share)
	var page string
	if opts.HTML {
		page, err = render.HTML(md, "Sodeep - "+res.Subject())
		if err != nil {
			rt.log.Info(fmt.Sprintf("%s Tạo HTML thất bại: %v", prefix, err))
			return false, nil
		}
	}
	if err := output.Write(paths, md, page); err != nil {
		rt.log.Info(fmt.Sprintf("%s Ghi file thất bại: %v", prefix, err))
		return false, nil
	}
	rt.log.Info(fmt.Sprintf("%s Đã ghi: %s", prefix, mustAbsPath(paths.Markdown)))
	if opts.HTML {
		rt.log.Info(fmt.Sprintf("%s Đã ghi: %s", prefix, mustAbsPath(paths.HTML)))
	}
	return true, nil
}

func describeError(err error) string {
	var qe *quote.Error
	if errors.As(err, &qe) {
		return qe.Message
	}
	return err.Error()
}

func isContextCanceledErr(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func tracePrefix(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	totalSec := int64(elapsed / time.Second)
	hh := totalSec / 3600
	mm := (totalSec % 3600) / 60
	ss := totalSec % 60
	if hh > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}

func colorLabel(label string, enabled bool) string {
	if !enabled {
		return label
	}
	if strings.TrimSpace(label) == "" {
		return label
	}
	return "\x1b[92m" + label + "\x1b[0m"
}

func humanDurationShort(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	sec := int64(d.Round(time.Second) / time.Second)
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func mustAbsPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
