package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modeladmin/madmin/pkg/db"
	storegorm "github.com/modeladmin/madmin/pkg/server/store/gorm"
)

// selectionListCmd represents the selection list command
var selectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the models currently on the dashboard",
	Long: `Show the persisted dashboard selection in order.

Identifiers that no longer resolve against the registered models are
marked stale; they keep their place in the selection until removed.

Example:
  madmin selection list`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listSelection(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list selection: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	selectionCmd.AddCommand(selectionListCmd)
}

func listSelection() error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	selection, err := storegorm.NewSelectionStore(database).Load()
	if err != nil {
		return err
	}

	if len(selection) == 0 {
		fmt.Println("No models selected")
		return nil
	}

	reg := buildRegistry()
	for _, id := range selection {
		if _, err := reg.Get(id); err != nil {
			fmt.Printf("%s (stale)\n", id)
			continue
		}
		fmt.Println(id)
	}
	return nil
}
