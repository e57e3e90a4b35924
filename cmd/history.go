package cmd

import (
	"github.com/spf13/cobra"

	"sodeep/internal/app"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Quản lý lịch sử câu nói",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Liệt kê lịch sử (mới nhất trước)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunHistoryList(app.HistoryOptions{Options: commonOptions(), Limit: historyLimit})
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Xuất lịch sử ra file JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.HistoryOptions{Options: commonOptions()}
		if len(args) == 1 {
			opts.Path = args[0]
		}
		return app.RunHistoryExport(opts)
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Nhập lịch sử từ file JSON đã xuất",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunHistoryImport(app.HistoryOptions{Options: commonOptions(), Path: args[0]})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Xóa toàn bộ lịch sử",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunHistoryClear(app.HistoryOptions{Options: commonOptions()})
	},
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 0, "số mục tối đa")
	historyCmd.AddCommand(historyListCmd, historyExportCmd, historyImportCmd, historyClearCmd)
}
