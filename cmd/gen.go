package cmd

import (
	"github.com/spf13/cobra"

	"sodeep/internal/app"
)

var genCmd = &cobra.Command{
	Use:   "gen [prompt ...]",
	Short: "Tạo câu nói",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunGen(cmd.Context(), genOptions(args))
	},
}
