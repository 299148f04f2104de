package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// principalCmd represents the principal command
var principalCmd = &cobra.Command{
	Use:   "principal",
	Short: "Manage principals and their permissions",
	Long:  `Manage the principals that may use the panel and the permissions they hold.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'principal' requires a subcommand (create, grant, revoke)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(principalCmd)
}
