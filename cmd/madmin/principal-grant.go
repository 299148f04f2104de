package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modeladmin/madmin/pkg/db"
	storegorm "github.com/modeladmin/madmin/pkg/server/store/gorm"
)

// principalGrantCmd represents the principal grant command
var principalGrantCmd = &cobra.Command{
	Use:   "grant <id> <permission>",
	Short: "Grant a permission to a principal",
	Long: `Grant a permission to a principal. Granting twice is a no-op.

Permissions take the form "<namespace>.<action>_<model>", plus
"panel.access_panel" which gates the whole panel.

Example:
  madmin principal grant admin panel.access_panel
  madmin principal grant admin notes.add_note`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := grantPermission(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to grant permission: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	principalCmd.AddCommand(principalGrantCmd)
}

func grantPermission(principalID, permission string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	if err := storegorm.NewPermissionStore(database).Grant(principalID, permission); err != nil {
		return err
	}
	fmt.Printf("Granted %s to %q\n", permission, principalID)
	return nil
}
