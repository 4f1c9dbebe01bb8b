package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/keshon/simplebot/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(c *cobra.Command, _ []string) {
		out := c.OutOrStdout()
		fmt.Fprintf(out, "Version:    %s\n", version.Version)
		fmt.Fprintf(out, "Built:      %s\n", version.BuildDate)
		fmt.Fprintf(out, "simplebot:  %s\n", version.Framework())
		fmt.Fprintf(out, "discordgo:  %s\n", discordgo.VERSION)
		fmt.Fprintf(out, "Go:         %s\n", version.GoVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
