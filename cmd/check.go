package cmd

import (
	"github.com/spf13/cobra"

	"sodeep/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Kiểm tra kết nối tới Gemini",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunCheck(cmd.Context(), app.CheckOptions{Options: commonOptions(), Backend: backend})
	},
}
