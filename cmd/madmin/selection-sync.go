package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/modeladmin/madmin/pkg/db"
	storegorm "github.com/modeladmin/madmin/pkg/server/store/gorm"
)

// selectionSyncCmd represents the selection sync command
var selectionSyncCmd = &cobra.Command{
	Use:   "sync <file>",
	Short: "Watch a file and replace the dashboard selection when it changes",
	Long: `Watch a file and replace the dashboard selection when it changes.

The file holds one model identifier per line; blank lines and lines
starting with # are ignored. Identifiers that do not resolve against
the registered models are still stored, with a warning, so a selection
can be staged ahead of the models being registered.

Example:
  madmin selection sync /run/madmin/selection`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := syncSelection(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sync selection: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	selectionCmd.AddCommand(selectionSyncCmd)
}

func syncSelection(filename string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for selection changes\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] File modified, replacing selection...\n", time.Now().Format(time.RFC3339))

				if err := loadSelectionFromFile(database, filename); err != nil {
					fmt.Fprintf(os.Stderr, "Error replacing selection: %v\n", err)
				} else {
					fmt.Println("Selection replaced")
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func loadSelectionFromFile(database *gorm.DB, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	reg := buildRegistry()
	var identifiers []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := reg.Get(line); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %q does not resolve to a registered model\n", line)
		}
		identifiers = append(identifiers, line)
	}

	return storegorm.NewSelectionStore(database).Save(identifiers)
}
