package cmd

import (
	"os"

	"venuedesk/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "venuedesk",
	Short: "Event dashboard backend over the venue booking API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
