package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// selectionCmd represents the selection command
var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Manage the dashboard model selection",
	Long:  `Manage the persisted list of models shown on the dashboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'selection' requires a subcommand (list, sync)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(selectionCmd)
}
