package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modeladmin/madmin/pkg/db"
	storegorm "github.com/modeladmin/madmin/pkg/server/store/gorm"
)

// principalRevokeCmd represents the principal revoke command
var principalRevokeCmd = &cobra.Command{
	Use:   "revoke <id> <permission>",
	Short: "Revoke a permission from a principal",
	Long: `Revoke a permission from a principal.

Example:
  madmin principal revoke admin notes.delete_note`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := revokePermission(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to revoke permission: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	principalCmd.AddCommand(principalRevokeCmd)
}

func revokePermission(principalID, permission string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	if err := storegorm.NewPermissionStore(database).Revoke(principalID, permission); err != nil {
		return err
	}
	fmt.Printf("Revoked %s from %q\n", permission, principalID)
	return nil
}
