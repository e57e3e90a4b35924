package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"sodeep/internal/app"
)

var (
	verbose     bool
	logFile     string
	cfgPath     string
	outDir      string
	num         int
	concurrency int
	style       string
	topic       string
	fromInputs  []string
	backend     string
	mode        string
	html        bool
	share       bool
	jsonOut     bool
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "sodeep [prompt ...]",
	Short: "Tạo câu nói hay bằng Gemini",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd.OutOrStdout())
			return nil
		}
		if len(args) == 0 && style == "" && topic == "" && len(fromInputs) == 0 {
			return cmd.Help()
		}
		return app.RunGen(cmd.Context(), genOptions(args))
	},
}

func commonOptions() app.Options {
	return app.Options{Verbose: verbose, LogFile: logFile, ConfigPath: cfgPath}
}

func genOptions(args []string) app.GenOptions {
	return app.GenOptions{
		Options:     commonOptions(),
		OutputDir:   outDir,
		HTML:        html,
		Share:       share,
		JSON:        jsonOut,
		Num:         num,
		Concurrency: concurrency,
		Style:       style,
		Topic:       topic,
		Prompt:      strings.Join(args, " "),
		Inputs:      fromInputs,
		Backend:     backend,
		Mode:        mode,
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&verbose, "verbose", false, "in log NDJSON chi tiết")
	pf.StringVar(&logFile, "log-file", "", "đường dẫn file log")
	pf.StringVar(&cfgPath, "config", "", "đường dẫn config.yaml (mặc định ~/.sodeep/config.yaml)")
	pf.StringVarP(&outDir, "out", "o", "", "thư mục ghi file quote_<id>.md")
	pf.IntVarP(&num, "num", "n", 1, "số câu tạo cho mỗi yêu cầu")
	pf.IntVarP(&concurrency, "concurrency", "c", 1, "số yêu cầu chạy song song (tối đa 8)")
	pf.StringVarP(&style, "style", "s", "", "văn phong")
	pf.StringVarP(&topic, "topic", "t", "", "chủ đề")
	pf.StringSliceVarP(&fromInputs, "from", "f", nil, "file hoặc thư mục chứa yêu cầu (mỗi dòng \"văn phong | chủ đề\" hoặc một prompt)")
	pf.StringVar(&backend, "backend", "", "rest hoặc sdk (mặc định theo cấu hình)")
	pf.StringVar(&mode, "mode", "", "structured hoặc text (mặc định theo cấu hình)")
	pf.BoolVar(&html, "html", false, "ghi thêm file HTML khi có --out")
	pf.BoolVar(&share, "share", false, "thêm dòng \"- Tạo bởi Sodeep\"")
	pf.BoolVar(&jsonOut, "json", false, "in kết quả dạng JSON")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "hiển thị phiên bản")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
}
