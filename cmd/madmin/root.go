package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "madmin",
	Short: "Metadata-driven admin panel",
	Long:  `madmin serves a server-rendered admin panel and a generic REST API over any set of registered models.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
