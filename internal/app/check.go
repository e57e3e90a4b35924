package app

import (
	"context"
	"fmt"

	"sodeep/internal/quote"
)

type CheckOptions struct {
	Options
	Backend string
}

// RunCheck makes one structured generation to confirm the key and endpoint
// work.
func RunCheck(ctx context.Context, opts CheckOptions) error {
	key, err := loadAPIKeyForRun()
	if err != nil {
		return err
	}
	rt, err := openRuntime(opts.Options)
	if err != nil {
		return err
	}
	defer rt.close()
	pipeline, err := rt.pipeline(opts.Backend, string(quote.ModeStructured))
	if err != nil {
		return err
	}
	res, err := pipeline.Generate(ctx, key, quote.Request{Style: "triết lý", Topic: "cuộc sống"})
	if err != nil {
		return fmt.Errorf("kiểm tra kết nối thất bại: %s", describeError(err))
	}
	rt.log.Info(fmt.Sprintf("Kết nối thành công (%s, %s)", rt.cfg.Gemini.Model, res.ID))
	return nil
}
