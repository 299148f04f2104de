package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm/clause"

	"github.com/modeladmin/madmin/pkg/db"
	"github.com/modeladmin/madmin/pkg/model"
)

// principalCreateCmd represents the principal create command
var principalCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Create a principal",
	Long: `Create a principal. Creating an existing principal is a no-op.

Example:
  madmin principal create admin
  madmin principal create admin --name "Site admin"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")

		if err := createPrincipal(args[0], name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create principal: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	principalCmd.AddCommand(principalCreateCmd)
	principalCreateCmd.Flags().String("name", "", "Display name")
}

func createPrincipal(id, name string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	result := database.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Principal{ID: id, Name: name})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		fmt.Printf("Principal %q already exists\n", id)
		return nil
	}
	fmt.Printf("Created principal %q\n", id)
	return nil
}
