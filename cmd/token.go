package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an API token for a user",
	Long:  "Sign a bearer token with QUIZDECK_AUTH_SECRET. The API treats the user id as an opaque owner key.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if ttl, _ := cmd.Flags().GetDuration("ttl"); ttl > 0 {
			cfg.TokenTTL = ttl
		}
		if cfg.UsesDevSecret() {
			fmt.Fprintln(os.Stderr, "warning: signing with the development secret")
		}

		token, err := auth.NewService(cfg.AuthSecret, cfg.TokenTTL).Issue(args[0])
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to QUIZDECK_TOKEN_TTL)")
}
