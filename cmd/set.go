package cmd

import (
	"github.com/spf13/cobra"

	"sodeep/internal/app"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Thiết lập cấu hình",
}

var setKeyCmd = &cobra.Command{
	Use:   "key <gemini_api_key>",
	Short: "Lưu GEMINI_API_KEY vào ~/.sodeep/.env",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.RunSetKey(cmd.Context(), args[0], cfgPath); err != nil {
			return err
		}
		cmd.Println("Đã lưu API key")
		return nil
	},
}

func init() {
	setCmd.AddCommand(setKeyCmd)
}
