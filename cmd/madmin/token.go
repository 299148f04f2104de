package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/modeladmin/madmin/pkg/config"
	"github.com/modeladmin/madmin/pkg/server/middleware"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token <principal>",
	Short: "Issue an access token for a principal",
	Long: `Issue a signed access token for a principal.

Requires the MADMIN_TOKEN_KEY environment variable. The token lifetime
defaults to the configured token_ttl; override it with --ttl.

Example:
  madmin token admin
  madmin token admin --ttl 1h`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ttl, _ := cmd.Flags().GetDuration("ttl")

		if err := issueToken(args[0], ttl); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default: configured token_ttl)")
}

func issueToken(principalID string, ttl time.Duration) error {
	auth, err := middleware.NewAuthenticatorFromEnv()
	if err != nil {
		return err
	}

	if ttl == 0 {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		ttl = cfg.TokenLifetime()
	}

	token, err := auth.IssueToken(principalID, ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
