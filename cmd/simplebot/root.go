package main

import (
	"os"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "simplebot",
	Short: "SimpleBot - a Discord prefix-command bot",
	Long: `SimpleBot connects to Discord and answers prefix commands such as !help.
Settings are read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE:         runBot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging (overrides LOG_DEBUG)")
}
