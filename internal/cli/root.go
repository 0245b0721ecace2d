package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"celebrai-backend/pkg/logger"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contractctl",
		Short: "Render Celebrai service contracts offline",
		Long: `contractctl lays out and renders service contracts with the same
engine the API uses, reading contract data from JSON or YAML files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			mode, _ := cmd.Flags().GetString("log-mode")
			return logger.Init(mode)
		},
	}
	cmd.PersistentFlags().String("log-mode", "release", "logger mode (release for JSON, debug for console)")

	cmd.AddCommand(newRenderCmd())

	return cmd
}
