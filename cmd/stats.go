package cmd

import (
	"github.com/spf13/cobra"

	"sodeep/internal/app"
)

var statsReset bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Thống kê số lần gọi API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunStats(app.StatsOptions{Options: commonOptions(), Reset: statsReset})
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsReset, "reset", false, "đặt lại bộ đếm")
}
